package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
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

func newTestAPI(t *testing.T, seed ...actions.CreateTransaction) humatest.TestAPI {
	t.Helper()
	store := storage.New(memory.New())
	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	register := &actions.RegisterAccount{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, delegator.Process(context.Background(), register))
	for i := range seed {
		seed[i].UserID = register.ID
		require.NoError(t, delegator.Process(context.Background(), &seed[i]))
	}

	svc := service.NewService(store, delegator, nil)
	svc.Session.WithClock(func() time.Time { return time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC) })
	sessions := staticAuth{identity: auth.Identity{UserID: register.ID, Username: "alice"}}

	_, api := humatest.New(t)
	NewStatsHandler(sessions, svc.Session).Register(api)
	NewTrendHandler(sessions, svc.Session).Register(api)
	return api
}

func marchSeed() []actions.CreateTransaction {
	return []actions.CreateTransaction{
		{Type: ledger.Expense, Amount: ledger.RequireAmount("12.50"), Category: "food", Date: ledger.NewDate(2024, 3, 5)},
		{Type: ledger.Income, Amount: ledger.RequireAmount("1000"), Category: "salary", Date: ledger.NewDate(2024, 3, 1)},
		{Type: ledger.Expense, Amount: ledger.ParseAmount("abc"), Category: "food", Date: ledger.NewDate(2024, 3, 6)},
		{Type: ledger.Expense, Amount: ledger.RequireAmount("70"), Category: "housing", Date: ledger.NewDate(2024, 2, 28)},
	}
}

func TestStats_Month(t *testing.T) {
	api := newTestAPI(t, marchSeed()...)

	resp := api.Get("/v1/stats?period=month", token)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body StatsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "month", body.Period)
	assert.Equal(t, "2024-03-01", body.Start)
	assert.Equal(t, "2024-03-10", body.End)
	assert.Equal(t, "1000.00", body.Income)
	assert.Equal(t, "12.50", body.Expense)
	assert.Equal(t, "987.50", body.Balance)
	assert.Equal(t, "1.39", body.DailyAverage)
	assert.Equal(t, map[string]string{"food": "12.50"}, body.ByCategory)
	require.Len(t, body.Breakdown, 1)
	assert.Equal(t, "100.00", body.Breakdown[0].Percent)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 1, body.Skipped)
	require.Len(t, body.ByDate, 2)
	assert.Equal(t, "2024-03-01", body.ByDate[0].Date)
}

func TestStats_EmptyAndDefaultPeriod(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/v1/stats", token)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body StatsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "month", body.Period)
	assert.Equal(t, "0.00", body.Income)
	assert.Equal(t, "0.00", body.Expense)
	assert.Equal(t, "0.00", body.Balance)
	assert.Equal(t, "0.00", body.DailyAverage)
	assert.Empty(t, body.ByCategory)
}

func TestStats_Errors(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusBadRequest, api.Get("/v1/stats?period=decade", token).Code)
	assert.Equal(t, http.StatusUnauthorized, api.Get("/v1/stats").Code)
}

func TestTrend_Week(t *testing.T) {
	api := newTestAPI(t, marchSeed()...)

	resp := api.Get("/v1/stats/trend?period=week", token)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body struct {
		Period string      `json:"period"`
		Days   []DayAmount `json:"days"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Days, 8)
	assert.Equal(t, "2024-03-03", body.Days[0].Date)
	assert.Equal(t, "2024-03-05", body.Days[2].Date)
	assert.Equal(t, "12.50", body.Days[2].Expense)
	assert.Equal(t, "0.00", body.Days[3].Expense, "unparsable amount contributes nothing")
}

func TestToResponse_UnknownCategory(t *testing.T) {
	txs := []ledger.Transaction{{
		ID: uuid.Must(uuid.NewV4()).String(), Type: ledger.Expense, Amount: ledger.RequireAmount("4"),
		Category: "ghost", Date: ledger.NewDate(2024, 3, 2),
	}}
	stats := ledger.Aggregate(txs, ledger.Month, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	out := toResponse(ledger.Month, stats, ledger.Breakdown(stats, ledger.DefaultCatalog()))

	require.Len(t, out.Breakdown, 1)
	assert.Equal(t, ledger.UnknownCategoryName, out.Breakdown[0].Category.Name)
	assert.Equal(t, "ghost", out.Breakdown[0].Category.ID)
}
