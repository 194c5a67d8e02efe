package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

type DeleteTransactionInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	ID            string `path:"id" doc:"Transaction UUID"`
}

type DeleteTransactionOutput struct {
	Body MutationResponse
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	Auth               guard.Authenticator
	TransactionService transactionWriter
}

func NewDeleteTransactionHandler(a guard.Authenticator, svc transactionWriter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Auth: a, TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("transactionID", input.ID)

	res := h.TransactionService.Delete(ctx, identity, input.ID)
	if err := guard.OutcomeError(res); err != nil {
		return nil, err
	}
	return &DeleteTransactionOutput{Body: MutationResponse{ID: res.ID.String(), Message: res.Message}}, nil
}
