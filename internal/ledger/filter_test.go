package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_ExpenseInMonth(t *testing.T) {
	txs := marchSample()

	out := Filter(txs, Criteria{Type: "expense", Category: All, Month: "2024-03"})

	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)
}

func TestFilter_Idempotent(t *testing.T) {
	txs := append(marchSample(),
		Transaction{ID: "t3", Type: Expense, Amount: RequireAmount("3"), Category: "food", Date: NewDate(2024, 4, 1)},
	)
	c := Criteria{Category: "food"}

	once := Filter(txs, c)
	twice := Filter(once, c)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 2)
}

func TestFilter_PreservesOrder(t *testing.T) {
	txs := []Transaction{
		{ID: "x", Type: Income, Date: NewDate(2024, 1, 3)},
		{ID: "y", Type: Income, Date: NewDate(2024, 1, 1)},
		{ID: "z", Type: Expense, Date: NewDate(2024, 1, 2)},
	}

	out := Filter(txs, Criteria{Type: "income"})

	require.Len(t, out, 2)
	assert.Equal(t, "x", out[0].ID)
	assert.Equal(t, "y", out[1].ID)
}

func TestFilter_EmptyCriteriaMatchesAll(t *testing.T) {
	out := Filter(marchSample(), Criteria{})
	assert.Len(t, out, 2)
	assert.NotNil(t, Filter(nil, Criteria{}))
}

func TestCriteria_Validate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		field    string
	}{
		{name: "all", criteria: Criteria{Type: All, Category: All}},
		{name: "income", criteria: Criteria{Type: "income", Month: "2024-12"}},
		{name: "unknown type", criteria: Criteria{Type: "transfer"}, field: "type"},
		{name: "bad month", criteria: Criteria{Month: "2024-13"}, field: "month"},
		{name: "short month", criteria: Criteria{Month: "2024-3"}, field: "month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

// -- Period tests --

func TestRangeFor(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		period Period
		first  string
	}{
		{Week, "2024-03-03"},
		{Month, "2024-03-01"},
		{Year, "2024-01-01"},
		{Period("decade"), "2024-03-01"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r := RangeFor(tt.period, now)
			assert.Equal(t, tt.first, r.FirstDay().String())
			assert.Equal(t, "2024-03-10", r.LastDay().String())
			assert.True(t, r.End.Equal(now))
		})
	}
}

func TestRange_DaysNeverBelowOne(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(1), RangeFor(Month, now).Days())
	assert.Equal(t, int64(7), RangeFor(Week, now).Days())
}

func TestRange_ContainsExcludesZeroDate(t *testing.T) {
	r := RangeFor(Year, march10)
	assert.False(t, r.Contains(Date{}))
	assert.True(t, r.Contains(NewDate(2024, 1, 1)))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, Month, p)

	p, err = ParsePeriod("WEEK")
	require.NoError(t, err)
	assert.Equal(t, Week, p)

	_, err = ParsePeriod("fortnight")
	assert.Error(t, err)
}
