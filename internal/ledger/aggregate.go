package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DayTotals is the income and expense booked on one day.
type DayTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Stats is the aggregate of a transaction set over a period.
type Stats struct {
	Range        Range
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	DailyAverage decimal.Decimal
	ByCategory   map[string]decimal.Decimal
	ByDate       map[string]DayTotals
	// Count is the number of transactions that contributed to the sums.
	Count int
	// Skipped counts in-range transactions left out because their amount was
	// invalid or negative, or their type unknown.
	Skipped int
}

// Aggregate restricts transactions to the period's range and sums them.
//
// Malformed records never fail the aggregation: they are excluded from every
// sum and breakdown and reported only through Stats.Skipped.
func Aggregate(transactions []Transaction, p Period, now time.Time) Stats {
	r := RangeFor(p, now)
	stats := Stats{
		Range:      r,
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: map[string]decimal.Decimal{},
		ByDate:     map[string]DayTotals{},
	}

	for _, t := range transactions {
		if !r.Contains(t.Date) {
			continue
		}
		if !t.Amount.Usable() || !t.Type.Valid() {
			stats.Skipped++
			continue
		}

		amount := t.Amount.Decimal
		key := t.Date.String()
		day := stats.ByDate[key]

		switch t.Type {
		case Income:
			stats.Income = stats.Income.Add(amount)
			day.Income = day.Income.Add(amount)
		case Expense:
			stats.Expense = stats.Expense.Add(amount)
			day.Expense = day.Expense.Add(amount)
			stats.ByCategory[t.Category] = stats.ByCategory[t.Category].Add(amount)
		}
		stats.ByDate[key] = day
		stats.Count++
	}

	stats.Balance = stats.Income.Sub(stats.Expense)
	stats.DailyAverage = stats.Expense.Div(decimal.NewFromInt(r.Days())).Round(2)
	return stats
}

// SortByDateDesc returns a copy of transactions ordered newest first.
// Transactions sharing a date keep their input order.
func SortByDateDesc(transactions []Transaction) []Transaction {
	out := make([]Transaction, len(transactions))
	copy(out, transactions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Recent returns the n most recent transactions.
func Recent(transactions []Transaction, n int) []Transaction {
	if n <= 0 {
		return []Transaction{}
	}
	sorted := SortByDateDesc(transactions)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// DailyTotal is one point of a trend series.
type DailyTotal struct {
	Date    Date
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Trend returns one zero-filled entry per calendar day of the period.
func Trend(transactions []Transaction, p Period, now time.Time) []DailyTotal {
	stats := Aggregate(transactions, p, now)
	first, last := stats.Range.FirstDay(), stats.Range.LastDay()

	var out []DailyTotal
	for d := first; !d.After(last); d = d.AddDays(1) {
		point := DailyTotal{Date: d, Income: decimal.Zero, Expense: decimal.Zero}
		if day, ok := stats.ByDate[d.String()]; ok {
			point.Income = day.Income
			point.Expense = day.Expense
		}
		out = append(out, point)
	}
	return out
}

// CategoryTotal is a resolved expense category with its share of total expense.
type CategoryTotal struct {
	Category Category
	Amount   decimal.Decimal
	// Percent of Stats.Expense, rounded to two places.
	Percent decimal.Decimal
}

// Breakdown resolves stats.ByCategory against the catalog, largest first.
func Breakdown(stats Stats, catalog Catalog) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(stats.ByCategory))
	for id, amount := range stats.ByCategory {
		percent := decimal.Zero
		if stats.Expense.IsPositive() {
			percent = amount.Mul(hundred).Div(stats.Expense).Round(2)
		}
		out = append(out, CategoryTotal{
			Category: catalog.Resolve(Expense, id),
			Amount:   amount,
			Percent:  percent,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category.ID < out[j].Category.ID
	})
	return out
}
