package ledger

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// Valid reports whether t is one of the two transaction directions.
func (t TransactionType) Valid() bool {
	return t == Expense || t == Income
}

// ParseTransactionType parses "expense" or "income" (case insensitive).
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", NewValidationError("type", fmt.Sprintf("unknown transaction type %q", s))
	}
	return t, nil
}

// Transaction is a single recorded income or expense event.
type Transaction struct {
	ID        string          `json:"id" yaml:"id"`
	Type      TransactionType `json:"type" yaml:"type"`
	Amount    Amount          `json:"amount" yaml:"amount"`
	Category  string          `json:"category" yaml:"category"`
	Date      Date            `json:"date" yaml:"date"`
	Note      string          `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt" yaml:"createdAt"`
}

// ValidationError reports bad input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
