package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

type UpdateTransactionInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	ID            string `path:"id" doc:"Transaction UUID"`
	Body          TransactionBody
}

type UpdateTransactionOutput struct {
	Body MutationResponse
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Auth               guard.Authenticator
	TransactionService transactionWriter
}

func NewUpdateTransactionHandler(a guard.Authenticator, svc transactionWriter) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Auth: a, TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces every field of an existing transaction.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("transactionID", input.ID)

	res := h.TransactionService.Update(ctx, identity, input.ID, input.Body.payload())
	if err := guard.OutcomeError(res); err != nil {
		return nil, err
	}
	return &UpdateTransactionOutput{Body: MutationResponse{ID: res.ID.String(), Message: res.Message}}, nil
}
