package completer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier returns a fixed suggestion sequence regardless of input.
type stubClassifier struct {
	suggestions []Suggestion
}

func (s stubClassifier) Classify(_, _ string) []Suggestion {
	return s.suggestions
}

func TestDumbModeMatchesVocabularyPrefix(t *testing.T) {
	c := New(NewCatalog(), nil, false)

	got := c.GetCompletions("sel", "sel")
	require.Len(t, got, 1)
	assert.Equal(t, "SELECT", got[0].Text)
	assert.Equal(t, 3, got[0].DeleteBack)
}

func TestDumbModeEmptyInputReturnsFullVocabulary(t *testing.T) {
	catalog := NewCatalog()
	catalog.Reset()
	c := New(catalog, nil, false)

	got := c.GetCompletions("", "")
	assert.Len(t, got, baselineSize())

	// Sorted per the matcher's rule.
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Text, got[i].Text)
	}
}

func TestSmartModeWithoutClassifier(t *testing.T) {
	c := New(NewCatalog(), nil, true)
	assert.Empty(t, c.GetCompletions("SELECT ", "SELECT "))
}

func TestSmartModeEmptyClassification(t *testing.T) {
	c := New(NewCatalog(), stubClassifier{}, true)
	assert.Empty(t, c.GetCompletions("SELECT ", "SELECT "))
}

func TestSmartModeColumnScope(t *testing.T) {
	catalog := NewCatalog()
	catalog.ExtendRelations([]string{"users"}, Tables)
	require.NoError(t, catalog.ExtendColumns([]ColumnEntry{
		{Relation: "users", Column: "id"},
		{Relation: "users", Column: "name"},
		{Relation: "users", Column: "email"},
	}, Tables))

	classifier := stubClassifier{suggestions: []Suggestion{
		ColumnSuggestion{Scope: []ScopedRelation{{Table: "users", Ref: "users"}}},
	}}
	c := New(catalog, classifier, true)

	got := c.GetCompletions("SELECT na FROM users", "SELECT na")
	require.Len(t, got, 1)
	assert.Equal(t, Completion{Text: "name", DeleteBack: 2}, got[0])
}

func TestSmartModeDispatchTable(t *testing.T) {
	catalog := NewCatalog()
	catalog.ExtendDatabases([]string{"shopdb"})
	catalog.ExtendRelations([]string{"orders"}, Tables)
	catalog.ExtendRelations([]string{"v_orders"}, Views)
	catalog.ExtendFunctions([]FunctionEntry{{Schema: "main", Name: "strftime"}})
	catalog.ExtendSpecialCommands([]string{`\dt`})

	tests := []struct {
		name       string
		suggestion Suggestion
		word       string
		want       []string
	}{
		{"table substring", TableSuggestion{}, "rder", []string{"orders"}},
		{"view substring", ViewSuggestion{}, "rder", []string{"v_orders"}},
		{"database substring", DatabaseSuggestion{}, "shop", []string{"shopdb"}},
		{"alias", AliasSuggestion{Aliases: []string{"o", "u"}}, "o", []string{"o"}},
		{"function anchored", FunctionSuggestion{}, "strf", []string{"strftime"}},
		{"function not mid-name", FunctionSuggestion{}, "time", nil},
		{"keyword anchored", KeywordSuggestion{}, "sel", []string{"SELECT"}},
		{"special anchored", SpecialSuggestion{}, `\d`, []string{`\dt`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(catalog, stubClassifier{suggestions: []Suggestion{tt.suggestion}}, true)
			got := c.GetCompletions(tt.word, tt.word)
			assert.Equal(t, tt.want, completionTexts(got))
		})
	}
}

func TestSmartModeConcatenatesInClassifierOrder(t *testing.T) {
	catalog := NewCatalog()
	catalog.ExtendRelations([]string{"orders"}, Tables)
	catalog.ExtendRelations([]string{"orders_v"}, Views)

	classifier := stubClassifier{suggestions: []Suggestion{
		ViewSuggestion{},
		TableSuggestion{},
	}}
	c := New(catalog, classifier, true)

	got := c.GetCompletions("orders", "orders")
	// No cross-request dedup or re-sort: views first because the classifier
	// asked for them first.
	assert.Equal(t, []string{"orders_v", "orders"}, completionTexts(got))
}

func TestGetCompletionsModeOverride(t *testing.T) {
	catalog := NewCatalog()
	c := New(catalog, stubClassifier{}, true)

	// Forcing dumb mode bypasses the classifier entirely.
	got := c.GetCompletionsMode("sel", "sel", false)
	require.Len(t, got, 1)
	assert.Equal(t, "SELECT", got[0].Text)
}
