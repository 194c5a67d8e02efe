package transaction

import (
	"context"
	"time"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string          `json:"id" doc:"Transaction UUID"`
	Type         string          `json:"type" doc:"expense or income"`
	Amount       *string         `json:"amount" doc:"Decimal amount with two places, null when the stored value is unparsable"`
	Category     string          `json:"category" doc:"Category id"`
	CategoryInfo ledger.Category `json:"categoryInfo" doc:"Resolved category, a placeholder for unknown ids"`
	Date         string          `json:"date" doc:"YYYY-MM-DD"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    string          `json:"createdAt" doc:"RFC3339 creation time"`
}

// TransactionBody is the request body for creating or replacing a transaction.
// Fields are checked by the service so that every problem is a 400.
type TransactionBody struct {
	Type     string `json:"type,omitempty" doc:"expense or income"`
	Amount   string `json:"amount,omitempty" doc:"Positive decimal, comma or dot as separator"`
	Category string `json:"category,omitempty" doc:"Category id of the chosen type"`
	Date     string `json:"date,omitempty" doc:"YYYY-MM-DD"`
	Note     string `json:"note,omitempty" doc:"Optional note, at most 200 characters"`
}

// MutationResponse is returned by create, update and delete.
type MutationResponse struct {
	ID      string `json:"id" doc:"Affected transaction UUID"`
	Message string `json:"message"`
}

// transactionWriter is the interface for mutating transactions.
type transactionWriter interface {
	Add(ctx context.Context, scope auth.Identity, payload service.Payload) service.Result
	Update(ctx context.Context, scope auth.Identity, id string, payload service.Payload) service.Result
	Delete(ctx context.Context, scope auth.Identity, id string) service.Result
}

// sessionOpener is the interface for read sessions.
type sessionOpener interface {
	Open(ctx context.Context, scope auth.Identity) *service.Session
}

func (b TransactionBody) payload() service.Payload {
	return service.Payload{
		Type:     b.Type,
		Amount:   b.Amount,
		Category: b.Category,
		Date:     b.Date,
		Note:     b.Note,
	}
}

func fromLedger(t ledger.Transaction, catalog ledger.Catalog) Transaction {
	out := Transaction{
		ID:           t.ID,
		Type:         string(t.Type),
		Category:     t.Category,
		CategoryInfo: catalog.Resolve(t.Type, t.Category),
		Date:         t.Date.String(),
		Note:         t.Note,
	}
	if t.Amount.Valid {
		amount := t.Amount.Decimal.StringFixed(2)
		out.Amount = &amount
	}
	if !t.CreatedAt.IsZero() {
		out.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func fromLedgerList(list []ledger.Transaction, catalog ledger.Catalog) []Transaction {
	out := make([]Transaction, len(list))
	for i, t := range list {
		out[i] = fromLedger(t, catalog)
	}
	return out
}
