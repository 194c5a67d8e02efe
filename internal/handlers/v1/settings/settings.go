package settings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type settingsStore interface {
	Get(ctx context.Context, scope auth.Identity) ledger.Settings
	Update(ctx context.Context, scope auth.Identity, settings ledger.Settings) (ledger.Settings, service.Result)
}

type catalogReader interface {
	Catalog(ctx context.Context, userID uuid.UUID) ledger.Catalog
}

type SettingsBody struct {
	Theme    string `json:"theme,omitempty" doc:"light or dark"`
	Currency string `json:"currency,omitempty" doc:"Currency symbol, at most 8 characters"`
}

type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
}

type UpdateSettingsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	Body          SettingsBody
}

type SettingsOutput struct {
	Body SettingsBody
}

type CategoriesOutput struct {
	Body ledger.Catalog
}

// Handler serves GET and PUT /v1/settings and GET /v1/categories.
type Handler struct {
	Auth       guard.Authenticator
	Settings   settingsStore
	Categories catalogReader
}

func NewHandler(a guard.Authenticator, settings settingsStore, categories catalogReader) *Handler {
	return &Handler{Auth: a, Settings: settings, Categories: categories}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/v1/settings",
		Summary:     "Get settings",
		Tags:        []string{"Settings"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "update-settings",
		Method:      http.MethodPut,
		Path:        "/v1/settings",
		Summary:     "Update settings",
		Description: "Stores the theme and currency. Empty fields fall back to the defaults.",
		Tags:        []string{"Settings"},
	}, h.update)
	huma.Register(api, huma.Operation{
		OperationID: "get-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "Get categories",
		Description: "Returns the user's expense and income categories, or the built-in ones.",
		Tags:        []string{"Settings"},
	}, h.categories)
}

func toBody(s ledger.Settings) SettingsBody {
	return SettingsBody{Theme: string(s.Theme), Currency: s.Currency}
}

func (h *Handler) get(ctx context.Context, input *AuthInput) (*SettingsOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	return &SettingsOutput{Body: toBody(h.Settings.Get(ctx, identity))}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}

	saved, res := h.Settings.Update(ctx, identity, ledger.Settings{
		Theme:    ledger.Theme(input.Body.Theme),
		Currency: input.Body.Currency,
	})
	if err := guard.OutcomeError(res); err != nil {
		return nil, err
	}
	return &SettingsOutput{Body: toBody(saved)}, nil
}

func (h *Handler) categories(ctx context.Context, input *AuthInput) (*CategoriesOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	return &CategoriesOutput{Body: h.Categories.Catalog(ctx, identity.UserID)}, nil
}
