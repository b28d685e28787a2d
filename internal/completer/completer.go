package completer

// Completer routes completion requests. In smart mode it consults the
// classifier and dispatches each suggestion to the matching catalog view;
// otherwise it falls back to an anchored match over the whole vocabulary.
type Completer struct {
	catalog    *Catalog
	classifier Classifier
	smart      bool
}

// New returns a completer over catalog. classifier may be nil, in which
// case smart-mode requests produce no candidates.
func New(catalog *Catalog, classifier Classifier, smart bool) *Completer {
	return &Completer{
		catalog:    catalog,
		classifier: classifier,
		smart:      smart,
	}
}

// Catalog exposes the underlying catalog for bulk loading.
func (c *Completer) Catalog() *Catalog {
	return c.catalog
}

// GetCompletions returns candidates for the cursor position using the
// completer's configured mode.
func (c *Completer) GetCompletions(fullText, beforeCursor string) []Completion {
	return c.GetCompletionsMode(fullText, beforeCursor, c.smart)
}

// GetCompletionsMode returns candidates for the cursor position. Results
// are concatenated per suggestion in classifier order; no deduplication or
// re-sorting happens across suggestions. Absence of matches is an empty
// list, never an error.
func (c *Completer) GetCompletionsMode(fullText, beforeCursor string, smart bool) []Completion {
	word := WordBeforeCursor(beforeCursor)

	if !smart {
		return appendMatches(nil, word, c.catalog.Vocabulary(), true)
	}
	if c.classifier == nil {
		return nil
	}

	var completions []Completion
	for _, suggestion := range c.classifier.Classify(fullText, beforeCursor) {
		switch s := suggestion.(type) {
		case ColumnSuggestion:
			completions = appendMatches(completions, word, c.catalog.ScopedColumns(s.Scope), false)
		case FunctionSuggestion:
			completions = appendMatches(completions, word, c.catalog.FunctionNames(), true)
		case TableSuggestion:
			completions = appendMatches(completions, word, c.catalog.RelationNames(Tables), false)
		case ViewSuggestion:
			completions = appendMatches(completions, word, c.catalog.RelationNames(Views), false)
		case AliasSuggestion:
			completions = appendMatches(completions, word, s.Aliases, false)
		case DatabaseSuggestion:
			completions = appendMatches(completions, word, c.catalog.Databases(), false)
		case KeywordSuggestion:
			completions = appendMatches(completions, word, c.catalog.Keywords(), true)
		case SpecialSuggestion:
			completions = appendMatches(completions, word, c.catalog.SpecialCommands(), true)
		}
	}
	return completions
}

// appendMatches materializes one matcher pass into dst. The anchored split
// is deliberate: closed, short vocabularies (keywords, functions,
// meta-commands) complete from the start of the word only, while open-ended
// identifier vocabularies complete from any substring, since naming
// conventions often put the distinguishing token mid-name.
func appendMatches(dst []Completion, word string, candidates []string, anchored bool) []Completion {
	for completion := range FindMatches(word, candidates, anchored) {
		dst = append(dst, completion)
	}
	return dst
}
