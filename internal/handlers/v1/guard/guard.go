// Package guard resolves bearer tokens and maps service outcomes onto HTTP errors.
package guard

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

const bearerPrefix = "bearer "

// Authenticator resolves a session token to its user.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (auth.Identity, bool)
}

// Token extracts the token from an Authorization header value. A bare token
// without the Bearer scheme is accepted too.
func Token(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return header
}

// Identify returns the caller behind header or a 401.
func Identify(ctx context.Context, a Authenticator, header string) (auth.Identity, error) {
	identity, ok := a.CurrentUser(ctx, Token(header))
	if !ok {
		return auth.Identity{}, huma.Error401Unauthorized("missing or expired session token")
	}
	logging.GetLogData(ctx).AddData("userID", identity.UserID.String())
	return identity, nil
}

// OutcomeError converts a failed service result into an HTTP error. It
// returns nil for success.
func OutcomeError(res service.Result) error {
	switch res.Outcome {
	case service.Success:
		return nil
	case service.ValidationFailed:
		return huma.Error400BadRequest(res.Message)
	case service.NotFound:
		return huma.Error404NotFound(res.Message)
	default:
		return huma.Error503ServiceUnavailable(res.Message)
	}
}
