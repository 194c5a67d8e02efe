package stats

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/guard"
)

type TrendOutput struct {
	Body struct {
		Period string      `json:"period"`
		Days   []DayAmount `json:"days" doc:"One entry per day of the range, zero filled"`
	}
}

// TrendHandler handles GET /v1/stats/trend.
type TrendHandler struct {
	Auth     guard.Authenticator
	Sessions sessionOpener
}

func NewTrendHandler(a guard.Authenticator, sessions sessionOpener) *TrendHandler {
	return &TrendHandler{Auth: a, Sessions: sessions}
}

func (h *TrendHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-trend",
		Method:      http.MethodGet,
		Path:        "/v1/stats/trend",
		Summary:     "Daily trend",
		Tags:        []string{"Statistics"},
	}, h.handle)
}

func (h *TrendHandler) handle(ctx context.Context, input *StatsInput) (*TrendOutput, error) {
	identity, err := guard.Identify(ctx, h.Auth, input.Authorization)
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	trend := h.Sessions.Open(ctx, identity).Trend(period)
	out := &TrendOutput{}
	out.Body.Period = string(period)
	out.Body.Days = make([]DayAmount, len(trend))
	for i, day := range trend {
		out.Body.Days[i] = DayAmount{
			Date:    day.Date.String(),
			Income:  day.Income.StringFixed(2),
			Expense: day.Expense.StringFixed(2),
		}
	}
	return out, nil
}
