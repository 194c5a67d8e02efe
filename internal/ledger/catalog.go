package ledger

import (
	"fmt"
	"strings"
)

// Category is a user-facing classification tag scoped to one transaction type.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon" yaml:"icon"`
	Color string `json:"color" yaml:"color"`
}

// Placeholder values returned for category ids missing from a catalog.
const (
	UnknownCategoryName  = "unknown"
	UnknownCategoryIcon  = "❓"
	UnknownCategoryColor = "#94a3b8"
)

// Catalog holds the two disjoint category sets.
type Catalog struct {
	Expense []Category `json:"expense" yaml:"expense"`
	Income  []Category `json:"income" yaml:"income"`
}

// DefaultCatalog returns the built-in categories used until a user customises them.
func DefaultCatalog() Catalog {
	return Catalog{
		Expense: []Category{
			{ID: "food", Name: "Food", Icon: "🍜", Color: "#ef4444"},
			{ID: "transport", Name: "Transport", Icon: "🚌", Color: "#f59e0b"},
			{ID: "study", Name: "Study", Icon: "📚", Color: "#3b82f6"},
			{ID: "entertainment", Name: "Entertainment", Icon: "🎮", Color: "#8b5cf6"},
			{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#ec4899"},
			{ID: "health", Name: "Health", Icon: "💊", Color: "#10b981"},
			{ID: "housing", Name: "Housing", Icon: "🏠", Color: "#6366f1"},
			{ID: "other", Name: "Other", Icon: "📦", Color: "#64748b"},
		},
		Income: []Category{
			{ID: "salary", Name: "Salary", Icon: "💰", Color: "#10b981"},
			{ID: "parttime", Name: "Part-time", Icon: "💼", Color: "#059669"},
			{ID: "scholarship", Name: "Scholarship", Icon: "🎓", Color: "#0d9488"},
			{ID: "allowance", Name: "Allowance", Icon: "💵", Color: "#14b8a6"},
			{ID: "bonus", Name: "Bonus", Icon: "🎁", Color: "#06b6d4"},
			{ID: "other", Name: "Other", Icon: "📦", Color: "#64748b"},
		},
	}
}

// For returns the category set for t. Unknown types have no categories.
func (c Catalog) For(t TransactionType) []Category {
	switch t {
	case Expense:
		return c.Expense
	case Income:
		return c.Income
	default:
		return nil
	}
}

// IsEmpty reports whether neither set has any category.
func (c Catalog) IsEmpty() bool {
	return len(c.Expense) == 0 && len(c.Income) == 0
}

// Lookup finds id in the set for t.
func (c Catalog) Lookup(t TransactionType, id string) (Category, bool) {
	for _, cat := range c.For(t) {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Resolve never fails: ids missing from the set for t resolve to a placeholder.
func (c Catalog) Resolve(t TransactionType, id string) Category {
	if cat, ok := c.Lookup(t, id); ok {
		return cat
	}
	return Category{
		ID:    id,
		Name:  UnknownCategoryName,
		Icon:  UnknownCategoryIcon,
		Color: UnknownCategoryColor,
	}
}

// Validate checks that every category has an id and a name and that ids are
// unique within their set.
func (c Catalog) Validate() error {
	for _, t := range []TransactionType{Expense, Income} {
		seen := make(map[string]struct{}, len(c.For(t)))
		for i, cat := range c.For(t) {
			field := fmt.Sprintf("categories.%s[%d]", t, i)
			if strings.TrimSpace(cat.ID) == "" {
				return NewValidationError(field, "category id is empty")
			}
			if strings.TrimSpace(cat.Name) == "" {
				return NewValidationError(field, "category name is empty")
			}
			if _, dup := seen[cat.ID]; dup {
				return NewValidationError(field, fmt.Sprintf("duplicate category id %q", cat.ID))
			}
			seen[cat.ID] = struct{}{}
		}
	}
	return nil
}
