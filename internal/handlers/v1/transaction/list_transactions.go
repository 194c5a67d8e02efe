package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

// ListTransactionsBody is the filter criteria for listing transactions.
type ListTransactionsBody struct {
	Type     string `json:"type,omitempty" doc:"all, expense or income; empty means all"`
	Category string `json:"category,omitempty" doc:"Category id or all; empty means all"`
	Month    string `json:"month,omitempty" doc:"YYYY-MM; empty means every month"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	Body          ListTransactionsBody `required:"false"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Matching transactions, newest first"`
	Count        int           `json:"count"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	Auth     guard.Authenticator
	Sessions sessionOpener
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(a guard.Authenticator, sessions sessionOpener) *ListTransactionsHandler {
	return &ListTransactionsHandler{Auth: a, Sessions: sessions}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns the transactions matching the type, category and month criteria, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	criteria := ledger.Criteria{
		Type:     input.Body.Type,
		Category: input.Body.Category,
		Month:    input.Body.Month,
	}
	if err := criteria.Validate(); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("loadSessionMs")
	session := h.Sessions.Open(ctx, identity)
	stopTimer()

	filtered, err := session.Filter(criteria)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	logData.AddData("count", len(filtered))

	return &ListTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: fromLedgerList(filtered, session.Catalog()),
		Count:        len(filtered),
	}}, nil
}
