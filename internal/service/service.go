package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/events"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// Processor runs a mutating action inside a store transaction.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Session     *SessionService
	Category    *CategoryService
	Settings    *SettingsService
	Data        *DataService
	Account     *AccountService
}

// NewService creates a new Service over the given storage. Mutations go
// through processor and are announced on publisher.
func NewService(store *storage.Storage, processor Processor, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	categories := NewCategoryService(store)
	return &Service{
		Transaction: NewTransactionService(store, processor, publisher, categories),
		Session:     NewSessionService(store, categories, time.Now),
		Category:    categories,
		Settings:    NewSettingsService(store, processor),
		Data:        NewDataService(store, processor, publisher, categories, time.Now),
		Account:     NewAccountService(store),
	}
}

// announce publishes a change event. Failures are logged and otherwise ignored.
func announce(ctx context.Context, publisher events.Publisher, userID, transactionID uuid.UUID, action events.Action) {
	txID := ""
	if transactionID != uuid.Nil {
		txID = transactionID.String()
	}
	event := events.NewChangeEvent(userID.String(), txID, action)
	if err := publisher.Publish(ctx, event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"userID": userID,
			"action": action,
		}).Warn("Service.Publish")
	}
}

func toLedger(rows []*transaction.Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, len(rows))
	for i, row := range rows {
		out[i] = row.ToLedger()
	}
	return out
}
