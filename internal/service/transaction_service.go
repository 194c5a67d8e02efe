package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/events"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

const maxNoteLength = 200

// TransactionService validates and applies transaction mutations for one user.
type TransactionService struct {
	storage    *storage.Storage
	processor  Processor
	publisher  events.Publisher
	categories *CategoryService
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor Processor, publisher events.Publisher, categories *CategoryService) *TransactionService {
	return &TransactionService{
		storage:    store,
		processor:  processor,
		publisher:  publisher,
		categories: categories,
	}
}

type validPayload struct {
	Type     ledger.TransactionType
	Amount   ledger.Amount
	Category string
	Date     ledger.Date
	Note     string
}

// validate checks the payload against the user's catalog.
func (s *TransactionService) validate(ctx context.Context, userID uuid.UUID, p Payload) (validPayload, error) {
	t, err := ledger.ParseTransactionType(p.Type)
	if err != nil {
		return validPayload{}, err
	}
	category := strings.TrimSpace(p.Category)
	if category == "" {
		return validPayload{}, ledger.NewValidationError("category", "please select a category")
	}
	amount, err := ledger.ParseUserAmount(p.Amount)
	if err != nil {
		return validPayload{}, err
	}
	date, err := ledger.ParseDate(strings.TrimSpace(p.Date))
	if err != nil {
		return validPayload{}, err
	}
	note := strings.TrimSpace(p.Note)
	if utf8.RuneCountInString(note) > maxNoteLength {
		return validPayload{}, ledger.NewValidationError("note", fmt.Sprintf("note must be at most %d characters", maxNoteLength))
	}
	if _, ok := s.categories.Catalog(ctx, userID).Lookup(t, category); !ok {
		return validPayload{}, ledger.NewValidationError("category", fmt.Sprintf("unknown %s category %q", t, category))
	}

	return validPayload{
		Type:     t,
		Amount:   ledger.NewAmount(amount),
		Category: category,
		Date:     date,
		Note:     note,
	}, nil
}

// Add records a new transaction for scope.
func (s *TransactionService) Add(ctx context.Context, scope auth.Identity, payload Payload) Result {
	valid, err := s.validate(ctx, scope.UserID, payload)
	if err != nil {
		return failed(ValidationFailed, err.Error())
	}

	action := &actions.CreateTransaction{
		UserID:   scope.UserID,
		Type:     valid.Type,
		Amount:   valid.Amount,
		Category: valid.Category,
		Date:     valid.Date,
		Note:     valid.Note,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return storeFailure("Add", scope, uuid.Nil, err)
	}

	announce(ctx, s.publisher, scope.UserID, action.ID, events.ActionCreated)
	return Result{Outcome: Success, Message: "transaction added", ID: action.ID}
}

// Update replaces every field of transaction id.
func (s *TransactionService) Update(ctx context.Context, scope auth.Identity, id string, payload Payload) Result {
	txID, err := uuid.FromString(id)
	if err != nil {
		return failed(NotFound, "transaction not found")
	}
	valid, err := s.validate(ctx, scope.UserID, payload)
	if err != nil {
		return failed(ValidationFailed, err.Error())
	}

	action := &actions.UpdateTransaction{
		UserID:   scope.UserID,
		ID:       txID,
		Type:     valid.Type,
		Amount:   valid.Amount,
		Category: valid.Category,
		Date:     valid.Date,
		Note:     valid.Note,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return storeFailure("Update", scope, txID, err)
	}

	announce(ctx, s.publisher, scope.UserID, txID, events.ActionUpdated)
	return Result{Outcome: Success, Message: "transaction updated", ID: txID}
}

// Delete removes transaction id.
func (s *TransactionService) Delete(ctx context.Context, scope auth.Identity, id string) Result {
	txID, err := uuid.FromString(id)
	if err != nil {
		return failed(NotFound, "transaction not found")
	}

	action := &actions.DeleteTransaction{UserID: scope.UserID, ID: txID}
	if err := s.processor.Process(ctx, action); err != nil {
		return storeFailure("Delete", scope, txID, err)
	}

	announce(ctx, s.publisher, scope.UserID, txID, events.ActionDeleted)
	return Result{Outcome: Success, Message: "transaction deleted", ID: txID}
}

// storeFailure maps a store error to an outcome. Only not-found errors keep
// their meaning; the rest are logged and reported as unavailable.
func storeFailure(op string, scope auth.Identity, id uuid.UUID, err error) Result {
	if errors.Is(err, transaction.ErrNotFound) {
		return failed(NotFound, "transaction not found")
	}
	if errors.Is(err, account.ErrNotFound) {
		return failed(NotFound, "account not found")
	}
	logrus.WithError(err).WithFields(logrus.Fields{
		"userID":        scope.UserID,
		"transactionID": id,
	}).Error("Service.Transaction." + op)
	return failed(StoreUnavailable, "the store is unavailable, please try again later")
}
