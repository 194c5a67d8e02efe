package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
)

type RecentTransactionsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	Limit         int    `query:"limit" default:"5" minimum:"1" maximum:"100" doc:"How many transactions to return"`
}

type RecentTransactionsOutput struct {
	Body struct {
		Transactions []Transaction `json:"transactions"`
	}
}

// RecentTransactionsHandler handles GET /v1/transaction/recent.
type RecentTransactionsHandler struct {
	Auth     guard.Authenticator
	Sessions sessionOpener
}

func NewRecentTransactionsHandler(a guard.Authenticator, sessions sessionOpener) *RecentTransactionsHandler {
	return &RecentTransactionsHandler{Auth: a, Sessions: sessions}
}

func (h *RecentTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "recent-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/recent",
		Summary:     "Recent transactions",
		Description: "Returns the most recent transactions by date.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *RecentTransactionsHandler) handle(ctx context.Context, input *RecentTransactionsInput) (*RecentTransactionsOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	session := h.Sessions.Open(ctx, identity)
	out := &RecentTransactionsOutput{}
	out.Body.Transactions = fromLedgerList(session.Recent(input.Limit), session.Catalog())
	return out, nil
}
