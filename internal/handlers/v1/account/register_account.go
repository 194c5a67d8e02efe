package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/logging"
)

// RegisterAccountInput is the Huma input for registering an account.
type RegisterAccountInput struct {
	Body RegisterAccountBody
}

// RegisterAccountBody is the request body fields for registering an account.
type RegisterAccountBody struct {
	Username        string `json:"username" doc:"3 to 20 letters, digits or underscores"`
	Password        string `json:"password" doc:"At least 6 characters"`
	ConfirmPassword string `json:"confirmPassword" doc:"Must equal password"`
}

// RegisterAccountOutput is the response for registering an account.
type RegisterAccountOutput struct {
	Status int
	Body   MessageBody
}

// RegisterAccountHandler handles POST /v1/auth/register.
type RegisterAccountHandler struct {
	Gateway gateway
}

func NewRegisterAccountHandler(g gateway) *RegisterAccountHandler {
	return &RegisterAccountHandler{Gateway: g}
}

// Register registers the endpoint with the Huma API.
func (h *RegisterAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register-account",
		Method:      http.MethodPost,
		Path:        "/v1/auth/register",
		Summary:     "Register an account",
		Description: "Creates an account. Usernames are case insensitive.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RegisterAccountHandler) handle(ctx context.Context, input *RegisterAccountInput) (*RegisterAccountOutput, error) {
	logData := logging.GetLogData(ctx)
	logData.AddData("username", input.Body.Username)

	stopTimer := logData.AddTiming("registerMs")
	res := h.Gateway.Register(ctx, input.Body.Username, input.Body.Password, input.Body.ConfirmPassword)
	stopTimer()
	if err := authError(res); err != nil {
		logData.AddData("outcome", string(res.Outcome))
		return nil, err
	}

	return &RegisterAccountOutput{
		Status: http.StatusCreated,
		Body:   MessageBody{Message: res.Message},
	}, nil
}
