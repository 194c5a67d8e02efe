package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	Body          TransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   MutationResponse
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Auth               guard.Authenticator
	TransactionService transactionWriter
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(a guard.Authenticator, svc transactionWriter) *CreateTransactionHandler {
	return &CreateTransactionHandler{Auth: a, TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records an income or expense for the signed-in user.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("createTransactionMs")
	res := h.TransactionService.Add(ctx, identity, input.Body.payload())
	stopTimer()
	if err := guard.OutcomeError(res); err != nil {
		return nil, err
	}

	logData.AddData("transactionID", res.ID.String())
	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   MutationResponse{ID: res.ID.String(), Message: res.Message},
	}, nil
}
