package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
)

var _ IAction = (*RegisterAccount)(nil)

// RegisterAccount creates a user account. ID is set on success.
type RegisterAccount struct {
	Username     string
	PasswordHash string

	ID uuid.UUID
}

func (r *RegisterAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Settings:     ledger.DefaultSettings(),
	})
	if err != nil {
		return err
	}

	r.ID = id
	return nil
}
