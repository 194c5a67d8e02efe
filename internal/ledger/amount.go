package ledger

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is the monetary value of a transaction.
//
// A value that failed to parse is kept with Valid=false instead of being
// rejected, so a single malformed record read back from storage or an
// import can be skipped by aggregation rather than aborting it.
type Amount struct {
	Decimal decimal.Decimal
	Valid   bool
}

// NewAmount wraps a decimal as a valid amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d, Valid: true}
}

// RequireAmount is NewAmount over decimal.RequireFromString. Panics on bad input.
func RequireAmount(s string) Amount {
	return NewAmount(decimal.RequireFromString(s))
}

// ParseAmount is the lenient parser used when reading stored or imported
// data. It never fails: anything that is not a decimal yields an invalid Amount.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return NewAmount(d)
}

// ParseUserAmount is the strict parser used for user input. It accepts a dot
// or a comma as decimal separator, requires a strictly positive value and
// rounds half-up to cents.
func ParseUserAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, NewValidationError("amount", "amount is required")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewValidationError("amount", "amount is not a number")
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, NewValidationError("amount", "amount must be greater than zero")
	}
	return d, nil
}

// Usable reports whether the amount may take part in sums.
func (a Amount) Usable() bool {
	return a.Valid && !a.Decimal.IsNegative()
}

// Equal compares two amounts by value.
func (a Amount) Equal(b Amount) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Decimal.String())
}

// UnmarshalJSON accepts a number, a numeric string or null. Any other string
// produces an invalid amount without an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	}
	*a = ParseAmount(string(data))
	return nil
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	*a = ParseAmount(string(text))
	return nil
}

// Scan implements sql.Scanner. NULL maps to an invalid amount.
func (a *Amount) Scan(value any) error {
	var nd decimal.NullDecimal
	if err := nd.Scan(value); err != nil {
		*a = Amount{}
		return nil
	}
	*a = Amount{Decimal: nd.Decimal, Valid: nd.Valid}
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Decimal.String(), nil
}
