package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
)

// Profile is the API response model for the signed-in account.
type Profile struct {
	ID        string `json:"id" doc:"Account UUID"`
	Username  string `json:"username" doc:"Lower-cased username"`
	Theme     string `json:"theme" doc:"Display theme, light or dark"`
	Currency  string `json:"currency" doc:"Currency symbol"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 registration time"`
}

// MessageBody is returned by operations that only report an outcome.
type MessageBody struct {
	Message string `json:"message" doc:"Human readable outcome"`
}

// gateway is the subset of auth.Gateway the handlers use.
type gateway interface {
	Register(ctx context.Context, username, password, confirm string) auth.Result
	Login(ctx context.Context, username, password string) (auth.Session, auth.Result)
	Logout(ctx context.Context, token string) auth.Result
	CurrentUser(ctx context.Context, token string) (auth.Identity, bool)
}

func authError(res auth.Result) error {
	switch res.Outcome {
	case auth.Success:
		return nil
	case auth.ValidationFailed:
		return huma.Error400BadRequest(res.Message)
	case auth.UsernameTaken:
		return huma.Error409Conflict(res.Message)
	case auth.InvalidCredentials:
		return huma.Error401Unauthorized(res.Message)
	default:
		return huma.NewError(http.StatusServiceUnavailable, res.Message)
	}
}
