package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/events"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// DataService exports and imports a user's complete data set.
type DataService struct {
	storage    *storage.Storage
	processor  Processor
	publisher  events.Publisher
	categories *CategoryService
	now        func() time.Time
}

func NewDataService(store *storage.Storage, processor Processor, publisher events.Publisher, categories *CategoryService, now func() time.Time) *DataService {
	return &DataService{
		storage:    store,
		processor:  processor,
		publisher:  publisher,
		categories: categories,
		now:        now,
	}
}

// WithClock overrides the clock used for export dates.
func (s *DataService) WithClock(now func() time.Time) *DataService {
	s.now = now
	return s
}

// Export snapshots the user's transactions, effective catalog and settings.
func (s *DataService) Export(ctx context.Context, scope auth.Identity) (ledger.Document, Result) {
	acc, err := s.storage.Accounts.FindByID(ctx, scope.UserID)
	if err != nil {
		return ledger.Document{}, storeFailure("Export", scope, uuid.Nil, err)
	}
	rows, err := s.storage.Transactions.List(ctx, scope.UserID)
	if err != nil {
		return ledger.Document{}, storeFailure("Export", scope, uuid.Nil, err)
	}

	doc := ledger.Document{
		Username:   acc.Username,
		Expenses:   toLedger(rows),
		Categories: s.categories.Catalog(ctx, scope.UserID),
		Settings:   acc.Settings.Normalize(),
		ExportDate: s.now().UTC(),
	}
	return doc, Result{Outcome: Success, Message: fmt.Sprintf("exported %d transactions", len(doc.Expenses))}
}

// Import validates doc and then replaces all of the user's data with it in
// one store transaction. Nothing is written if validation fails.
func (s *DataService) Import(ctx context.Context, scope auth.Identity, doc ledger.Document) Result {
	if err := doc.Validate(); err != nil {
		return failed(ValidationFailed, err.Error())
	}
	settings := doc.Settings.Normalize()
	if err := settings.Validate(); err != nil {
		return failed(ValidationFailed, err.Error())
	}
	if auth.NormalizeUsername(doc.Username) != scope.Username {
		logrus.WithFields(logrus.Fields{
			"userID":   scope.UserID,
			"username": doc.Username,
		}).Info("Service.Data.Import.ForeignDocument")
	}

	action := &actions.ReplaceUserData{
		UserID:       scope.UserID,
		Transactions: doc.Expenses,
		Categories:   doc.Categories,
		Settings:     settings,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return storeFailure("Import", scope, uuid.Nil, err)
	}

	announce(ctx, s.publisher, scope.UserID, uuid.Nil, events.ActionImported)
	return Result{Outcome: Success, Message: fmt.Sprintf("imported %d transactions", action.Imported)}
}
