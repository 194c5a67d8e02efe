package ledger

import (
	"fmt"
	"regexp"
	"strings"
)

// All matches every type or every category in Criteria.
const All = "all"

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Criteria selects transactions for list views. Empty fields behave like All
// (or "unset" for Month).
type Criteria struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Month    string `json:"month,omitempty" yaml:"month,omitempty"`
}

// Validate rejects unknown types and months not shaped YYYY-MM.
func (c Criteria) Validate() error {
	if !c.allTypes() && !TransactionType(c.Type).Valid() {
		return NewValidationError("type", fmt.Sprintf("unknown filter type %q", c.Type))
	}
	if c.Month != "" && !monthPattern.MatchString(c.Month) {
		return NewValidationError("month", fmt.Sprintf("invalid month %q, expected YYYY-MM", c.Month))
	}
	return nil
}

func (c Criteria) allTypes() bool {
	return c.Type == "" || strings.EqualFold(c.Type, All)
}

func (c Criteria) allCategories() bool {
	return c.Category == "" || c.Category == All
}

// Match applies the three predicates of the filter.
func (c Criteria) Match(t Transaction) bool {
	if !c.allTypes() && string(t.Type) != c.Type {
		return false
	}
	if !c.allCategories() && t.Category != c.Category {
		return false
	}
	if c.Month != "" && !strings.HasPrefix(t.Date.String(), c.Month) {
		return false
	}
	return true
}

// Filter returns the transactions matching c, in input order.
func Filter(transactions []Transaction, c Criteria) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if c.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
