package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
)

const token = "Authorization: Bearer t1"

type staticAuth struct{ identity auth.Identity }

func (s staticAuth) CurrentUser(_ context.Context, tok string) (auth.Identity, bool) {
	return s.identity, tok == "t1"
}

func newTestAPI(t *testing.T) (humatest.TestAPI, *storage.Storage, auth.Identity) {
	t.Helper()
	store := storage.New(memory.New())
	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	register := &actions.RegisterAccount{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, delegator.Process(context.Background(), register))
	identity := auth.Identity{UserID: register.ID, Username: "alice"}

	svc := service.NewService(store, delegator, nil)
	_, api := humatest.New(t)
	NewHandler(staticAuth{identity: identity}, svc.Settings, svc.Category).Register(api)
	return api, store, identity
}

func TestSettings_GetUpdate(t *testing.T) {
	api, _, _ := newTestAPI(t)

	resp := api.Get("/v1/settings", token)
	require.Equal(t, http.StatusOK, resp.Code)
	var body SettingsBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, SettingsBody{Theme: "light", Currency: "¥"}, body)

	resp = api.Put("/v1/settings", token, map[string]any{"theme": "dark", "currency": "$"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Get("/v1/settings", token)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, SettingsBody{Theme: "dark", Currency: "$"}, body)
}

func TestSettings_InvalidTheme(t *testing.T) {
	api, _, _ := newTestAPI(t)

	resp := api.Put("/v1/settings", token, map[string]any{"theme": "neon"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCategories_DefaultsThenCustom(t *testing.T) {
	api, store, identity := newTestAPI(t)

	resp := api.Get("/v1/categories", token)
	require.Equal(t, http.StatusOK, resp.Code)
	var catalog ledger.Catalog
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &catalog))
	assert.Equal(t, ledger.DefaultCatalog(), catalog)

	custom := ledger.Catalog{
		Expense: []ledger.Category{{ID: "coffee", Name: "Coffee", Icon: "☕", Color: "#6b4f3a"}},
		Income:  []ledger.Category{{ID: "tips", Name: "Tips", Icon: "🪙", Color: "#ffd700"}},
	}
	require.NoError(t, store.Categories.Replace(context.Background(), identity.UserID, custom))

	resp = api.Get("/v1/categories", token)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &catalog))
	assert.Equal(t, custom, catalog)
}

func TestSettings_Unauthorized(t *testing.T) {
	api, _, _ := newTestAPI(t)

	assert.Equal(t, http.StatusUnauthorized, api.Get("/v1/settings").Code)
	assert.Equal(t, http.StatusUnauthorized, api.Get("/v1/categories").Code)
}
