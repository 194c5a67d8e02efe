package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

var _ IAction = (*UpdateSettings)(nil)

type UpdateSettings struct {
	UserID   uuid.UUID
	Settings ledger.Settings
}

func (u *UpdateSettings) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Accounts.UpdateSettings(ctx, u.UserID, u.Settings)
}
