package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var _ IAction = (*CreateTransaction)(nil)

// CreateTransaction records a new transaction for an existing account.
// ID is set on success.
type CreateTransaction struct {
	UserID   uuid.UUID
	Type     ledger.TransactionType
	Amount   ledger.Amount
	Category string
	Date     ledger.Date
	Note     string

	ID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Accounts.FindByID(ctx, t.UserID); err != nil {
		return err
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:   t.UserID,
		Type:     t.Type,
		Amount:   t.Amount,
		Category: t.Category,
		Date:     t.Date,
		Note:     t.Note,
	})
	if err != nil {
		return err
	}

	t.ID = id
	return nil
}
