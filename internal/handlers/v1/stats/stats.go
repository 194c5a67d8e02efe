package stats

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
	"github.com/carson-networks/budget-tracker/internal/ledger"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// sessionOpener is the interface for read sessions.
type sessionOpener interface {
	Open(ctx context.Context, scope auth.Identity) *service.Session
}

type CategoryAmount struct {
	Category ledger.Category `json:"category"`
	Amount   string          `json:"amount"`
	Percent  string          `json:"percent" doc:"Share of total expense"`
}

type DayAmount struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type StatsResponse struct {
	Period       string            `json:"period"`
	Start        string            `json:"start" doc:"First day of the range, YYYY-MM-DD"`
	End          string            `json:"end" doc:"Last day of the range, YYYY-MM-DD"`
	Income       string            `json:"income"`
	Expense      string            `json:"expense"`
	Balance      string            `json:"balance"`
	DailyAverage string            `json:"dailyAverage"`
	ByCategory   map[string]string `json:"byCategory" doc:"Expense per category id"`
	Breakdown    []CategoryAmount  `json:"breakdown" doc:"Expense categories, largest first"`
	ByDate       []DayAmount       `json:"byDate" doc:"Days with activity, oldest first"`
	Count        int               `json:"count" doc:"Transactions that contributed"`
	Skipped      int               `json:"skipped" doc:"In-range transactions left out because they are malformed"`
}

type StatsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
	Period        string `query:"period" default:"month" doc:"week, month or year"`
}

type StatsOutput struct {
	Body StatsResponse
}

// StatsHandler handles GET /v1/stats.
type StatsHandler struct {
	Auth     guard.Authenticator
	Sessions sessionOpener
}

func NewStatsHandler(a guard.Authenticator, sessions sessionOpener) *StatsHandler {
	return &StatsHandler{Auth: a, Sessions: sessions}
}

func (h *StatsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/v1/stats",
		Summary:     "Period statistics",
		Description: "Aggregates income, expense and the category breakdown over the week, month or year to date.",
		Tags:        []string{"Statistics"},
	}, h.handle)
}

func parsePeriod(s string) (ledger.Period, error) {
	p, err := ledger.ParsePeriod(s)
	if err != nil {
		return "", huma.Error400BadRequest(err.Error())
	}
	return p, nil
}

func (h *StatsHandler) handle(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	session := h.Sessions.Open(ctx, identity)
	stats := session.Stats(period)
	logging.GetLogData(ctx).AddData("skipped", stats.Skipped)

	return &StatsOutput{Body: toResponse(period, stats, ledger.Breakdown(stats, session.Catalog()))}, nil
}

func toResponse(period ledger.Period, stats ledger.Stats, breakdown []ledger.CategoryTotal) StatsResponse {
	out := StatsResponse{
		Period:       string(period),
		Start:        stats.Range.FirstDay().String(),
		End:          stats.Range.LastDay().String(),
		Income:       stats.Income.StringFixed(2),
		Expense:      stats.Expense.StringFixed(2),
		Balance:      stats.Balance.StringFixed(2),
		DailyAverage: stats.DailyAverage.StringFixed(2),
		ByCategory:   make(map[string]string, len(stats.ByCategory)),
		Breakdown:    make([]CategoryAmount, len(breakdown)),
		ByDate:       make([]DayAmount, 0, len(stats.ByDate)),
		Count:        stats.Count,
		Skipped:      stats.Skipped,
	}
	for id, amount := range stats.ByCategory {
		out.ByCategory[id] = amount.StringFixed(2)
	}
	for i, c := range breakdown {
		out.Breakdown[i] = CategoryAmount{
			Category: c.Category,
			Amount:   c.Amount.StringFixed(2),
			Percent:  c.Percent.StringFixed(2),
		}
	}
	for date, day := range stats.ByDate {
		out.ByDate = append(out.ByDate, DayAmount{
			Date:    date,
			Income:  day.Income.StringFixed(2),
			Expense: day.Expense.StringFixed(2),
		})
	}
	sort.Slice(out.ByDate, func(i, j int) bool { return out.ByDate[i].Date < out.ByDate[j].Date })
	return out
}
