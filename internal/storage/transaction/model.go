package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/ledger"
)

// ErrNotFound is returned when no transaction with the given id exists for the user.
var ErrNotFound = errors.New("transaction not found")

// Transaction represents a transaction record.
type Transaction struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"userId"`
	Type      ledger.TransactionType `json:"type"`
	Amount    ledger.Amount          `json:"amount"`
	Category  string                 `json:"category"`
	Date      ledger.Date            `json:"date"`
	Note      string                 `json:"note,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	// ID is generated when Nil. Imports carry their original ids.
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      ledger.TransactionType
	Amount    ledger.Amount
	Category  string
	Date      ledger.Date
	Note      string
	CreatedAt time.Time // defaults to now if zero
}

// TransactionUpdate replaces every mutable field of a transaction.
type TransactionUpdate struct {
	Type     ledger.TransactionType
	Amount   ledger.Amount
	Category string
	Date     ledger.Date
	Note     string
}

// ITransactionTable defines the interface for transaction storage operations.
// Every operation is scoped to one user.
//
//go:generate mockery --name ITransactionTable --output ../mocks
type ITransactionTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// List returns the user's transactions ordered by date then creation time, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}

// ToLedger converts the record to its domain form.
func (t *Transaction) ToLedger() ledger.Transaction {
	return ledger.Transaction{
		ID:        t.ID.String(),
		Type:      t.Type,
		Amount:    t.Amount,
		Category:  t.Category,
		Date:      t.Date,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
	}
}
