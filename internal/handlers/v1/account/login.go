package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

type LoginInput struct {
	Body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
}

type LoginResponse struct {
	Token     string `json:"token" doc:"Bearer token for the Authorization header"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expiresAt" doc:"RFC3339 expiry of the token"`
}

type LoginOutput struct {
	Body LoginResponse
}

// LoginHandler handles POST /v1/auth/login.
type LoginHandler struct {
	Gateway gateway
}

func NewLoginHandler(g gateway) *LoginHandler {
	return &LoginHandler{Gateway: g}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	session, res := h.Gateway.Login(ctx, input.Body.Username, input.Body.Password)
	if err := authError(res); err != nil {
		logging.GetLogData(ctx).AddData("outcome", string(res.Outcome))
		return nil, err
	}
	logging.GetLogData(ctx).AddData("userID", session.Identity.UserID.String())

	return &LoginOutput{Body: LoginResponse{
		Token:     session.Token,
		Username:  session.Identity.Username,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	}}, nil
}

type LogoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
}

type LogoutOutput struct {
	Body MessageBody
}

// LogoutHandler handles POST /v1/auth/logout.
type LogoutHandler struct {
	Gateway gateway
}

func NewLogoutHandler(g gateway) *LogoutHandler {
	return &LogoutHandler{Gateway: g}
}

func (h *LogoutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/v1/auth/logout",
		Summary:     "Log out",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LogoutHandler) handle(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	res := h.Gateway.Logout(ctx, guard.Token(input.Authorization))
	if err := authError(res); err != nil {
		return nil, err
	}
	return &LogoutOutput{Body: MessageBody{Message: res.Message}}, nil
}
