package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var _ IAction = (*ReplaceUserData)(nil)

// ReplaceUserData swaps every transaction, the category catalog and the
// settings of a user for the contents of an imported document.
type ReplaceUserData struct {
	UserID       uuid.UUID
	Transactions []ledger.Transaction
	Categories   ledger.Catalog
	Settings     ledger.Settings

	Imported int
}

func (r *ReplaceUserData) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Transactions.DeleteAll(ctx, r.UserID); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(r.Transactions))
	for i, t := range r.Transactions {
		// Ids that are not UUIDs, or repeat, get a fresh one.
		id, err := uuid.FromString(t.ID)
		if err != nil {
			id = uuid.Nil
		}
		if _, dup := seen[id]; dup {
			id = uuid.Nil
		}

		inserted, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
			ID:        id,
			UserID:    r.UserID,
			Type:      t.Type,
			Amount:    t.Amount,
			Category:  t.Category,
			Date:      t.Date,
			Note:      t.Note,
			CreatedAt: t.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("import transaction %d: %w", i, err)
		}
		seen[inserted] = struct{}{}
	}

	if err := writer.Categories.Replace(ctx, r.UserID, r.Categories); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateSettings(ctx, r.UserID, r.Settings); err != nil {
		return err
	}

	r.Imported = len(r.Transactions)
	return nil
}
