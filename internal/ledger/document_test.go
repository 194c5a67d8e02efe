package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Username: "alice",
		Expenses: []Transaction{
			{
				ID: "t1", Type: Expense, Amount: RequireAmount("12.50"), Category: "food",
				Date: NewDate(2024, 3, 5), Note: "lunch",
				CreatedAt: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
			},
			{
				ID: "t2", Type: Income, Amount: ParseAmount("abc"), Category: "salary",
				Date:      NewDate(2024, 3, 1),
				CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		Categories: DefaultCatalog(),
		Settings:   Settings{Theme: ThemeDark, Currency: "€"},
		ExportDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			doc := sampleDocument()

			data, err := EncodeDocument(doc, f)
			require.NoError(t, err)
			decoded, err := DecodeDocument(data, f)
			require.NoError(t, err)

			require.NoError(t, decoded.Validate())
			assert.Equal(t, doc.Username, decoded.Username)
			assert.Equal(t, doc.Categories, decoded.Categories)
			assert.Equal(t, doc.Settings, decoded.Settings)
			require.Len(t, decoded.Expenses, 2)
			for i := range doc.Expenses {
				want, got := doc.Expenses[i], decoded.Expenses[i]
				assert.Equal(t, want.ID, got.ID)
				assert.Equal(t, want.Type, got.Type)
				assert.True(t, want.Amount.Equal(got.Amount), "amount %d", i)
				assert.True(t, want.Date.Equal(got.Date), "date %d", i)
				assert.Equal(t, want.Note, got.Note)
				assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
			}
		})
	}
}

func TestDocument_JSONShape(t *testing.T) {
	data, err := EncodeDocument(sampleDocument(), FormatJSON)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "exportDate")
	expenses := raw["expenses"].([]any)
	first := expenses[0].(map[string]any)
	assert.Equal(t, "2024-03-05", first["date"])
	assert.Equal(t, "12.5", first["amount"])
	assert.Nil(t, expenses[1].(map[string]any)["amount"])
}

func TestDocument_NumericAmountAccepted(t *testing.T) {
	data := []byte(`{"username":"bob","expenses":[{"id":"x","type":"expense","amount":7.25,"category":"food","date":"2024-01-02"}],"categories":{"expense":[],"income":[]}}`)

	doc, err := DecodeDocument(data, FormatJSON)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	assert.True(t, doc.Expenses[0].Amount.Equal(RequireAmount("7.25")))
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
		field  string
	}{
		{name: "missing username", mutate: func(d *Document) { d.Username = " " }, field: "username"},
		{name: "missing expenses", mutate: func(d *Document) { d.Expenses = nil }, field: "expenses"},
		{name: "bad type", mutate: func(d *Document) { d.Expenses[0].Type = "refund" }, field: "expenses[0]"},
		{name: "no category", mutate: func(d *Document) { d.Expenses[1].Category = "" }, field: "expenses[1]"},
		{name: "no date", mutate: func(d *Document) { d.Expenses[0].Date = Date{} }, field: "expenses[0]"},
		{name: "half catalog", mutate: func(d *Document) { d.Categories.Income = nil }, field: "categories"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(&doc)

			var vErr *ValidationError
			require.ErrorAs(t, doc.Validate(), &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestDecodeDocument_Malformed(t *testing.T) {
	_, err := DecodeDocument([]byte("{not json"), FormatJSON)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "document", vErr.Field)

	_, err = DecodeDocument([]byte(`{"expenses":[{"date":"05/03/2024"}]}`), FormatJSON)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "application/yaml", f.ContentType())

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestSettings_NormalizeAndValidate(t *testing.T) {
	s := Settings{}.Normalize()
	assert.Equal(t, DefaultSettings(), s)
	assert.NoError(t, s.Validate())
	assert.Error(t, Settings{Theme: "blue", Currency: "$"}.Validate())
}

// -- Catalog tests --

func TestCatalog_ResolvePlaceholder(t *testing.T) {
	c := DefaultCatalog()

	food := c.Resolve(Expense, "food")
	assert.Equal(t, "Food", food.Name)

	missing := c.Resolve(Expense, "salary")
	assert.Equal(t, Category{ID: "salary", Name: UnknownCategoryName, Icon: UnknownCategoryIcon, Color: UnknownCategoryColor}, missing)

	_, ok := c.Lookup(TransactionType("x"), "food")
	assert.False(t, ok)
}

func TestCatalog_Validate(t *testing.T) {
	assert.NoError(t, DefaultCatalog().Validate())

	dup := DefaultCatalog()
	dup.Expense = append(dup.Expense, Category{ID: "food", Name: "Again"})
	assert.Error(t, dup.Validate())

	unnamed := Catalog{Income: []Category{{ID: "x"}}}
	assert.Error(t, unnamed.Validate())
}

// -- Amount tests --

func TestParseUserAmount(t *testing.T) {
	d, err := ParseUserAmount("12,345")
	require.NoError(t, err)
	assert.Equal(t, "12.35", d.StringFixed(2))

	for _, bad := range []string{"", "abc", "0", "-3", "0.001"} {
		_, err := ParseUserAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestAmount_JSON(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &a))
	assert.False(t, a.Valid)
	assert.False(t, a.Usable())

	require.NoError(t, json.Unmarshal([]byte(`3.5`), &a))
	assert.True(t, a.Usable())

	out, err := json.Marshal(Amount{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDate_Parse(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02", d.MonthKey())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}
