package completer

// Suggestion is one typed completion request: the classifier's verdict on
// what kind of thing belongs at the cursor. The interface is sealed so the
// router's dispatch stays exhaustive.
type Suggestion interface {
	suggestion()
}

// ColumnSuggestion asks for columns resolvable against Scope, in scope
// order.
type ColumnSuggestion struct {
	Scope []ScopedRelation
}

// FunctionSuggestion asks for function names.
type FunctionSuggestion struct{}

// TableSuggestion asks for table names.
type TableSuggestion struct{}

// ViewSuggestion asks for view names.
type ViewSuggestion struct{}

// AliasSuggestion asks for the aliases the classifier saw in the statement.
type AliasSuggestion struct {
	Aliases []string
}

// DatabaseSuggestion asks for database names.
type DatabaseSuggestion struct{}

// KeywordSuggestion asks for SQL keywords.
type KeywordSuggestion struct{}

// SpecialSuggestion asks for shell meta-commands.
type SpecialSuggestion struct{}

func (ColumnSuggestion) suggestion()   {}
func (FunctionSuggestion) suggestion() {}
func (TableSuggestion) suggestion()    {}
func (ViewSuggestion) suggestion()     {}
func (AliasSuggestion) suggestion()    {}
func (DatabaseSuggestion) suggestion() {}
func (KeywordSuggestion) suggestion()  {}
func (SpecialSuggestion) suggestion()  {}

var (
	_ Suggestion = ColumnSuggestion{}
	_ Suggestion = FunctionSuggestion{}
	_ Suggestion = TableSuggestion{}
	_ Suggestion = ViewSuggestion{}
	_ Suggestion = AliasSuggestion{}
	_ Suggestion = DatabaseSuggestion{}
	_ Suggestion = KeywordSuggestion{}
	_ Suggestion = SpecialSuggestion{}
)

// Classifier inspects the raw query text and decides what kinds of
// completions are expected at the cursor. Implementations live outside the
// core; a nil or empty result simply produces no candidates.
type Classifier interface {
	Classify(fullText, beforeCursor string) []Suggestion
}
