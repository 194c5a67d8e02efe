package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
)

// SettingsService reads and stores display preferences.
type SettingsService struct {
	storage   *storage.Storage
	processor Processor
}

func NewSettingsService(store *storage.Storage, processor Processor) *SettingsService {
	return &SettingsService{storage: store, processor: processor}
}

// Get returns the user's settings, or the defaults if they cannot be read.
func (s *SettingsService) Get(ctx context.Context, scope auth.Identity) ledger.Settings {
	acc, err := s.storage.Accounts.FindByID(ctx, scope.UserID)
	if err != nil {
		logrus.WithError(err).WithField("userID", scope.UserID).Warn("Service.Settings.FindByID")
		return ledger.DefaultSettings()
	}
	return acc.Settings.Normalize()
}

// Update stores settings after filling empty fields with defaults.
func (s *SettingsService) Update(ctx context.Context, scope auth.Identity, settings ledger.Settings) (ledger.Settings, Result) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return ledger.Settings{}, failed(ValidationFailed, err.Error())
	}

	action := &actions.UpdateSettings{UserID: scope.UserID, Settings: settings}
	if err := s.processor.Process(ctx, action); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ledger.Settings{}, failed(NotFound, "account not found")
		}
		logrus.WithError(err).WithField("userID", scope.UserID).Error("Service.Settings.Update")
		return ledger.Settings{}, failed(StoreUnavailable, "the store is unavailable, please try again later")
	}
	return settings, Result{Outcome: Success, Message: "settings saved"}
}
