package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type profileReader interface {
	Profile(ctx context.Context, scope auth.Identity) (*service.Profile, service.Result)
}

type MeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
}

type MeOutput struct {
	Body Profile
}

// MeHandler handles GET /v1/auth/me.
type MeHandler struct {
	Gateway        gateway
	AccountService profileReader
}

func NewMeHandler(g gateway, svc profileReader) *MeHandler {
	return &MeHandler{Gateway: g, AccountService: svc}
}

func (h *MeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "current-user",
		Method:      http.MethodGet,
		Path:        "/v1/auth/me",
		Summary:     "Current user",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *MeHandler) handle(ctx context.Context, input *MeInput) (*MeOutput, error) {
	identity, err := guard.Identify(ctx, h.Gateway, input.Authorization)
	if err != nil {
		return nil, err
	}

	profile, res := h.AccountService.Profile(ctx, identity)
	if err := guard.OutcomeError(res); err != nil {
		return nil, err
	}

	return &MeOutput{Body: Profile{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		Theme:     string(profile.Settings.Theme),
		Currency:  profile.Settings.Currency,
		CreatedAt: profile.CreatedAt.UTC().Format(time.RFC3339),
	}}, nil
}
