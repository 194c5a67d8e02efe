package account

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
)

// newTestAPI registers every account handler over an in-memory store.
func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	store := storage.New(memory.New())
	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	gateway := auth.NewGateway(store, delegator, auth.NewRegistry(100, time.Hour)).WithBcryptCost(bcrypt.MinCost)
	svc := service.NewService(store, delegator, nil)

	_, api := humatest.New(t)
	NewRegisterAccountHandler(gateway).Register(api)
	NewLoginHandler(gateway).Register(api)
	NewLogoutHandler(gateway).Register(api)
	NewMeHandler(gateway, svc.Account).Register(api)
	return api
}

func registerAndLogin(t *testing.T, api humatest.TestAPI) string {
	t.Helper()
	resp := api.Post("/v1/auth/register", map[string]any{
		"username": "Alice", "password": "secret1", "confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = api.Post("/v1/auth/login", map[string]any{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body LoginResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	assert.Equal(t, "alice", body.Username)
	return body.Token
}

// -- Register tests --

func TestRegister_Outcomes(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api)

	taken := api.Post("/v1/auth/register", map[string]any{
		"username": "ALICE", "password": "secret1", "confirmPassword": "secret1",
	})
	assert.Equal(t, http.StatusConflict, taken.Code)

	invalid := api.Post("/v1/auth/register", map[string]any{
		"username": "bob", "password": "secret1", "confirmPassword": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
}

// -- Login tests --

func TestLogin_WrongPassword(t *testing.T) {
	api := newTestAPI(t)
	registerAndLogin(t, api)

	resp := api.Post("/v1/auth/login", map[string]any{"username": "alice", "password": "wrong12"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// -- Me / Logout tests --

func TestMe_AndLogout(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api)

	resp := api.Get("/v1/auth/me", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var profile Profile
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "light", profile.Theme)
	assert.Equal(t, "¥", profile.Currency)

	assert.Equal(t, http.StatusUnauthorized, api.Get("/v1/auth/me").Code)

	assert.Equal(t, http.StatusOK, api.Post("/v1/auth/logout", "Authorization: Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, api.Post("/v1/auth/logout", "Authorization: Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, api.Get("/v1/auth/me", "Authorization: Bearer "+token).Code)
}

func TestAuthError_StoreUnavailable(t *testing.T) {
	err := authError(auth.Result{Outcome: auth.StoreUnavailable, Message: "down"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.NoError(t, authError(auth.Result{Outcome: auth.Success}))
}
