// Package classify decides what kind of completion belongs at the cursor.
//
// It is deliberately not a SQL parser: it scans backward for the last
// significant keyword and captures the statement's FROM/JOIN relations with
// their aliases. Wrong guesses are cheap — the completion engine treats
// unresolvable scope entries as silent misses.
package classify

import (
	"strings"

	"github.com/leapstack-labs/sqlsh/internal/completer"
)

// Classifier implements completer.Classifier with keyword heuristics.
type Classifier struct{}

// New returns a Classifier.
func New() *Classifier {
	return &Classifier{}
}

var _ completer.Classifier = (*Classifier)(nil)

// Keywords that introduce a relation name.
var tableKeywords = map[string]bool{
	"FROM":     true,
	"JOIN":     true,
	"INTO":     true,
	"UPDATE":   true,
	"TABLE":    true,
	"DESCRIBE": true,
}

// Keywords after which a column expression is expected.
var columnKeywords = map[string]bool{
	"SELECT":   true,
	"WHERE":    true,
	"HAVING":   true,
	"ON":       true,
	"SET":      true,
	"BY":       true,
	"AND":      true,
	"OR":       true,
	"DISTINCT": true,
	"WHEN":     true,
	"THEN":     true,
	"ELSE":     true,
}

// Keywords that end a FROM/JOIN relation list.
var clauseBoundaries = map[string]bool{
	"SELECT":    true,
	"WHERE":     true,
	"GROUP":     true,
	"ORDER":     true,
	"HAVING":    true,
	"LIMIT":     true,
	"OFFSET":    true,
	"ON":        true,
	"SET":       true,
	"UNION":     true,
	"EXCEPT":    true,
	"INTERSECT": true,
	"VALUES":    true,
}

// Join qualifiers sit between relations without ending the list.
var joinQualifiers = map[string]bool{
	"LEFT":    true,
	"RIGHT":   true,
	"INNER":   true,
	"OUTER":   true,
	"CROSS":   true,
	"NATURAL": true,
	"FULL":    true,
}

// Classify returns the suggestion requests for the cursor position.
func (*Classifier) Classify(fullText, beforeCursor string) []completer.Suggestion {
	stripped := strings.TrimSpace(beforeCursor)

	// Meta-commands are only recognized at the start of a line.
	if strings.HasPrefix(strings.TrimSpace(fullText), `\`) {
		return []completer.Suggestion{completer.SpecialSuggestion{}}
	}
	if stripped == "" {
		return []completer.Suggestion{
			completer.KeywordSuggestion{},
			completer.SpecialSuggestion{},
		}
	}

	// rel.partial — complete columns of that one relation, resolving an
	// alias through the FROM clause when possible.
	word := completer.LastWord(beforeCursor)
	if dot := strings.LastIndexByte(word, '.'); dot > 0 {
		ref := trimIdentQuotes(word[:dot])
		return []completer.Suggestion{
			completer.ColumnSuggestion{Scope: resolveRef(fullText, ref)},
		}
	}

	switch last := lastSignificantKeyword(beforeCursor); {
	case last == "USE":
		return []completer.Suggestion{completer.DatabaseSuggestion{}}

	case last == "DESC" && !strings.Contains(strings.ToUpper(fullText), "FROM"):
		// DESC as DESCRIBE; after ORDER BY it stays a plain keyword.
		return []completer.Suggestion{
			completer.TableSuggestion{},
			completer.ViewSuggestion{},
		}

	case tableKeywords[last]:
		return []completer.Suggestion{
			completer.TableSuggestion{},
			completer.ViewSuggestion{},
		}

	case columnKeywords[last]:
		scope, aliases := relationScope(fullText)
		return []completer.Suggestion{
			completer.ColumnSuggestion{Scope: scope},
			completer.FunctionSuggestion{},
			completer.AliasSuggestion{Aliases: aliases},
			completer.KeywordSuggestion{},
		}
	}

	return []completer.Suggestion{completer.KeywordSuggestion{}}
}

// lastSignificantKeyword scans the tokens before the cursor and returns the
// last recognized SQL keyword, ignoring the word currently being typed.
func lastSignificantKeyword(beforeCursor string) string {
	tokens := tokenize(beforeCursor)

	// The final token is the fragment being completed, not context, unless
	// a separator already closed it.
	if len(tokens) > 0 && !endsWithSeparator(beforeCursor) {
		tokens = tokens[:len(tokens)-1]
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		upper := strings.ToUpper(tokens[i])
		if tableKeywords[upper] || columnKeywords[upper] || upper == "USE" || upper == "DESC" {
			return upper
		}
	}
	return ""
}

func endsWithSeparator(text string) bool {
	if text == "" {
		return true
	}
	switch text[len(text)-1] {
	case ' ', '\t', '\n', '\r', ',', '(', ')', ';', '=':
		return true
	}
	return false
}

// relationScope collects the statement's FROM/JOIN/UPDATE/INTO relations as
// (table, refName) pairs plus the alias names alone. A relation's Ref
// starts as its own name and is rebound when an alias follows it.
func relationScope(fullText string) ([]completer.ScopedRelation, []string) {
	const (
		idle = iota
		expectTable
		maybeAlias
	)

	var (
		scope   []completer.ScopedRelation
		aliases []string
		state   = idle
		inList  bool
	)
	for _, token := range tokenize(fullText) {
		upper := strings.ToUpper(token)

		switch {
		case tableKeywords[upper]:
			state = expectTable
			inList = true
		case clauseBoundaries[upper]:
			state = idle
			inList = false
		case upper == "AS":
			// Keep waiting for the explicit alias.
		case joinQualifiers[upper]:
			// LEFT/INNER/... between JOINs; no state change.
		case token == ",":
			if inList {
				state = expectTable // FROM a, b
			}
		case state == expectTable:
			name := trimIdentQuotes(token)
			scope = append(scope, completer.ScopedRelation{Table: name, Ref: name})
			state = maybeAlias
		case state == maybeAlias:
			alias := trimIdentQuotes(token)
			scope[len(scope)-1].Ref = alias
			aliases = append(aliases, alias)
			state = idle
		}
	}
	return scope, aliases
}

// resolveRef maps a dotted reference like "u." back to its relation. If the
// FROM clause binds the alias, the bound table name is resolved; otherwise
// the reference is assumed to be the relation name itself.
func resolveRef(fullText, ref string) []completer.ScopedRelation {
	scope, _ := relationScope(fullText)
	for _, rel := range scope {
		if rel.Ref == ref {
			return []completer.ScopedRelation{{Table: rel.Table, Ref: rel.Table}}
		}
	}
	return []completer.ScopedRelation{{Table: ref, Ref: ref}}
}

func trimIdentQuotes(s string) string {
	return strings.Trim(s, "`\"")
}

// tokenize splits SQL text on whitespace and structural punctuation while
// keeping quoted strings and backtick identifiers intact. Commas are
// emitted as their own tokens; other structural punctuation is dropped.
func tokenize(text string) []string {
	var (
		tokens  []string
		current strings.Builder
		quote   byte
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
			current.WriteByte(c)
		case ' ', '\t', '\n', '\r', '(', ')', ';', '=', '<', '>', '!':
			flush()
		case ',':
			flush()
			tokens = append(tokens, ",")
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return tokens
}
