// Package completer implements the completion engine behind the interactive
// shell: an in-memory schema catalog, identifier escaping, a generic
// substring/prefix matcher, and the dispatch that turns typed suggestion
// requests into ordered completion candidates.
//
// The catalog is repopulated wholesale on every schema reload (Reset followed
// by a batch of Extend calls) and queried read-only while completing. All
// catalog state is guarded by an internal read-write lock, so a host that
// reloads from one goroutine while completing from another stays safe.
package completer

import (
	"fmt"
	"sync"
)

// RelationKind selects one of the catalog's relation namespaces.
type RelationKind int

// Relation namespaces. Tables and views are assumed to be disjoint; if a
// name ever appears in both, table entries shadow view entries during scope
// resolution.
const (
	Tables RelationKind = iota
	Views
)

func (k RelationKind) String() string {
	switch k {
	case Tables:
		return "table"
	case Views:
		return "view"
	default:
		return fmt.Sprintf("RelationKind(%d)", int(k))
	}
}

// ColumnEntry pairs a relation with one of its columns, in the relation's
// column order.
type ColumnEntry struct {
	Relation string
	Column   string
}

// FunctionEntry names a function within a schema.
type FunctionEntry struct {
	Schema string
	Name   string
}

// UnknownRelationError reports an ExtendColumns call that referenced a
// relation never registered through ExtendRelations. Surfacing this instead
// of creating the entry catches misordered bulk-load sequences early.
type UnknownRelationError struct {
	Relation string
	Kind     RelationKind
}

func (e *UnknownRelationError) Error() string {
	return fmt.Sprintf("unknown %s %q: relations must be registered before their columns", e.Kind, e.Relation)
}

// Catalog is the in-memory schema snapshot completions are answered from.
// Relation and column names are stored in escaped form; the global
// vocabulary backs dumb-mode matching only.
type Catalog struct {
	mu          sync.RWMutex
	keywordExt  []string
	specials    []string
	databases   []string
	relations   map[RelationKind]map[string][]string
	functions   map[string]map[string]struct{}
	vocabulary  map[string]struct{}
}

// NewCatalog returns a catalog holding only the static keyword and function
// baselines.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.resetLocked()
	return c
}

// Reset drops all introspected schema state: databases, both relation maps,
// the function map, any extended keywords, and the global vocabulary, which
// goes back to exactly the static keyword and function baselines. Special
// commands survive; they belong to the session, not the schema.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Catalog) resetLocked() {
	c.databases = nil
	c.keywordExt = nil
	c.relations = map[RelationKind]map[string][]string{
		Tables: {},
		Views:  {},
	}
	c.functions = make(map[string]map[string]struct{})
	c.vocabulary = make(map[string]struct{}, len(baseKeywords)+len(baseFunctions))
	for _, kw := range baseKeywords {
		c.vocabulary[kw] = struct{}{}
	}
	for _, fn := range baseFunctions {
		c.vocabulary[fn] = struct{}{}
	}
}

// ExtendDatabases appends the escaped database names. Insertion order is
// preserved; the matcher applies its own ordering at query time.
func (c *Catalog) ExtendDatabases(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.databases = append(c.databases, EscapeNames(names)...)
}

// ExtendRelations registers relations under kind, each starting with the
// "*" sentinel meaning "columns unknown". Re-registering a name overwrites
// its column list, so callers must register relations before extending
// their columns within a reload cycle.
func (c *Catalog) ExtendRelations(names []string, kind RelationKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	metadata := c.relations[kind]
	for _, name := range names {
		escaped := EscapeName(name)
		metadata[escaped] = []string{"*"}
		c.vocabulary[escaped] = struct{}{}
	}
}

// ExtendColumns appends columns to relations previously registered under
// kind. A pair naming an unregistered relation yields an
// UnknownRelationError; earlier pairs in the batch stay applied.
func (c *Catalog) ExtendColumns(entries []ColumnEntry, kind RelationKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	metadata := c.relations[kind]
	for _, entry := range entries {
		relation := EscapeName(entry.Relation)
		column := EscapeName(entry.Column)
		if _, ok := metadata[relation]; !ok {
			return &UnknownRelationError{Relation: relation, Kind: kind}
		}
		metadata[relation] = append(metadata[relation], column)
		c.vocabulary[column] = struct{}{}
	}
	return nil
}

// ExtendFunctions registers schema-qualified function names. No metadata
// beyond the name is tracked.
func (c *Catalog) ExtendFunctions(entries []FunctionEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range entries {
		schema := EscapeName(entry.Schema)
		name := EscapeName(entry.Name)
		if c.functions[schema] == nil {
			c.functions[schema] = make(map[string]struct{})
		}
		c.functions[schema][name] = struct{}{}
		c.vocabulary[name] = struct{}{}
	}
}

// ExtendKeywords adds session keywords on top of the immutable baseline.
func (c *Catalog) ExtendKeywords(words []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keywordExt = append(c.keywordExt, words...)
	for _, w := range words {
		c.vocabulary[w] = struct{}{}
	}
}

// ExtendSpecialCommands registers shell meta-commands. They are kept out of
// the global vocabulary: meta-commands only complete at the start of a line,
// which the classifier enforces.
func (c *Catalog) ExtendSpecialCommands(words []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specials = append(c.specials, words...)
}

// Keywords returns the static baseline plus session extensions.
func (c *Catalog) Keywords() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(baseKeywords)+len(c.keywordExt))
	out = append(out, baseKeywords...)
	out = append(out, c.keywordExt...)
	return out
}

// SpecialCommands returns the registered meta-commands.
func (c *Catalog) SpecialCommands() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.specials))
	copy(out, c.specials)
	return out
}

// Databases returns the known database names in registration order.
func (c *Catalog) Databases() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.databases))
	copy(out, c.databases)
	return out
}

// RelationNames returns the escaped relation names registered under kind.
func (c *Catalog) RelationNames(kind RelationKind) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	metadata := c.relations[kind]
	out := make([]string, 0, len(metadata))
	for name := range metadata {
		out = append(out, name)
	}
	return out
}

// FunctionNames returns the registered function names flattened across
// schemas.
func (c *Catalog) FunctionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for _, funcs := range c.functions {
		for name := range funcs {
			out = append(out, name)
		}
	}
	return out
}

/// Vocabulary returns every known literal string: the keyword and function
// baselines plus all registered relation, column, function, and keyword
// names. Used only by dumb-mode matching.
func (c *Catalog) Vocabulary() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.vocabulary))
	for word := range c.vocabulary {
		out = append(out, word)
	}
	return out
}
