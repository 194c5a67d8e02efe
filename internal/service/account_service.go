package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
)

// Profile is the public view of an account.
type Profile struct {
	ID        uuid.UUID
	Username  string
	Settings  ledger.Settings
	CreatedAt time.Time
}

// AccountService handles account lookups.
type AccountService struct {
	storage *storage.Storage
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// Profile returns the account behind scope.
func (s *AccountService) Profile(ctx context.Context, scope auth.Identity) (*Profile, Result) {
	row, err := s.storage.Accounts.FindByID(ctx, scope.UserID)
	if errors.Is(err, account.ErrNotFound) {
		return nil, failed(NotFound, "account not found")
	}
	if err != nil {
		logrus.WithError(err).WithField("userID", scope.UserID).Error("Service.Account.FindByID")
		return nil, failed(StoreUnavailable, "the store is unavailable, please try again later")
	}
	return &Profile{
		ID:        row.ID,
		Username:  row.Username,
		Settings:  row.Settings.Normalize(),
		CreatedAt: row.CreatedAt,
	}, Result{Outcome: Success}
}
