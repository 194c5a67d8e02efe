package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var _ IAction = (*UpdateTransaction)(nil)

// UpdateTransaction replaces every mutable field of an existing transaction.
type UpdateTransaction struct {
	UserID   uuid.UUID
	ID       uuid.UUID
	Type     ledger.TransactionType
	Amount   ledger.Amount
	Category string
	Date     ledger.Date
	Note     string
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Update(ctx, u.UserID, u.ID, &transaction.TransactionUpdate{
		Type:     u.Type,
		Amount:   u.Amount,
		Category: u.Category,
		Date:     u.Date,
		Note:     u.Note,
	})
}
