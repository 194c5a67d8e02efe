package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Period is a named time window anchored to the current moment.
type Period string

const (
	Week  Period = "week"
	Month Period = "month"
	Year  Period = "year"
)

// ParsePeriod parses week, month or year. An empty string means month.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Month, nil
	case Week, Month, Year:
		return p, nil
	default:
		return "", NewValidationError("period", fmt.Sprintf("unknown period %q", s))
	}
}

// Range is a closed [Start, End] window. Membership is decided on calendar
// days, so a date equal to Start's or End's day is inside.
type Range struct {
	Start time.Time
	End   time.Time
}

// RangeFor resolves p against now. Start keeps now's clock time; End is now.
// Unknown periods resolve as Month.
func RangeFor(p Period, now time.Time) Range {
	var start time.Time
	switch p {
	case Week:
		start = now.AddDate(0, 0, -7)
	case Year:
		start = time.Date(now.Year(), time.January, 1, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
	default:
		start = time.Date(now.Year(), now.Month(), 1, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
	}
	return Range{Start: start, End: now}
}

// FirstDay is the calendar day of Start.
func (r Range) FirstDay() Date { return DateOf(r.Start) }

// LastDay is the calendar day of End.
func (r Range) LastDay() Date { return DateOf(r.End) }

// Contains reports whether d falls on or between the first and last day.
func (r Range) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	return !d.Before(r.FirstDay()) && !d.After(r.LastDay())
}

// Days is the averaging denominator: whole days spanned, rounded up, never below one.
func (r Range) Days() int64 {
	days := int64(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
