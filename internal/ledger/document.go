package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Theme is the presentation theme of a user.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings are per-user display preferences.
type Settings struct {
	Theme    Theme  `json:"theme" yaml:"theme"`
	Currency string `json:"currency" yaml:"currency"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight, Currency: "¥"}
}

// Normalize fills empty fields from DefaultSettings.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.Theme == "" {
		s.Theme = def.Theme
	}
	if strings.TrimSpace(s.Currency) == "" {
		s.Currency = def.Currency
	}
	return s
}

func (s Settings) Validate() error {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return NewValidationError("theme", fmt.Sprintf("unknown theme %q", s.Theme))
	}
	if len([]rune(s.Currency)) > 8 {
		return NewValidationError("currency", "currency symbol is too long")
	}
	return nil
}

// Document is the portable snapshot of one user's data.
type Document struct {
	Username   string        `json:"username" yaml:"username"`
	Expenses   []Transaction `json:"expenses" yaml:"expenses"`
	Categories Catalog       `json:"categories" yaml:"categories"`
	Settings   Settings      `json:"settings" yaml:"settings"`
	ExportDate time.Time     `json:"exportDate" yaml:"exportDate"`
}

// Validate checks the structure of an imported document. Amounts are not
// checked: unparseable ones are kept and later skipped by Aggregate.
func (d Document) Validate() error {
	if strings.TrimSpace(d.Username) == "" {
		return NewValidationError("username", "username is missing")
	}
	if d.Expenses == nil {
		return NewValidationError("expenses", "expenses list is missing")
	}
	for i, t := range d.Expenses {
		field := fmt.Sprintf("expenses[%d]", i)
		if !t.Type.Valid() {
			return NewValidationError(field, fmt.Sprintf("unknown transaction type %q", t.Type))
		}
		if strings.TrimSpace(t.Category) == "" {
			return NewValidationError(field, "category is missing")
		}
		if t.Date.IsZero() {
			return NewValidationError(field, "date is missing")
		}
	}
	if d.Categories.IsEmpty() {
		return nil
	}
	if len(d.Categories.Expense) == 0 || len(d.Categories.Income) == 0 {
		return NewValidationError("categories", "both expense and income categories are required")
	}
	return d.Categories.Validate()
}

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml. Empty means json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", NewValidationError("format", fmt.Sprintf("unsupported format %q", s))
	}
}

// ContentType is the media type of the encoding.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func EncodeDocument(doc Document, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml document: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml document: %w", err)
		}
		return buf.Bytes(), nil
	default:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json document: %w", err)
		}
		return out, nil
	}
}

// DecodeDocument parses data in format f. Syntax errors are reported as a
// ValidationError on the "document" field.
func DecodeDocument(data []byte, f Format) (Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, NewValidationError("document", fmt.Sprintf("malformed %s document: %v", f, err))
	}
	return doc, nil
}
