// Package schema populates the completion catalog from a live database
// connection.
package schema

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlsh/internal/completer"
	"github.com/leapstack-labs/sqlsh/pkg/adapter"
)

// Loader refreshes a catalog from an adapter's introspection surface.
type Loader struct {
	adapter adapter.Adapter
	catalog *completer.Catalog
	logger  *slog.Logger
}

// NewLoader creates a Loader. If logger is nil, a discard logger is used.
func NewLoader(a adapter.Adapter, catalog *completer.Catalog, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{adapter: a, catalog: catalog, logger: logger}
}

// snapshot is one consistent read of the database's schema.
type snapshot struct {
	databases []string
	tables    []string
	views     []string
	tableCols []adapter.ColumnRow
	viewCols  []adapter.ColumnRow
	functions []adapter.FunctionRow
}

// Reload fetches the schema and replaces the catalog's dynamic state.
// The fetches run concurrently; the catalog is only touched once all of
// them have succeeded, so a failed reload leaves the previous completions
// intact.
func (l *Loader) Reload(ctx context.Context) error {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.databases, err = l.adapter.ListDatabases(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.tables, err = l.adapter.ListRelations(gctx, adapter.KindTable)
		return err
	})
	g.Go(func() (err error) {
		snap.views, err = l.adapter.ListRelations(gctx, adapter.KindView)
		return err
	})
	g.Go(func() (err error) {
		snap.tableCols, err = l.adapter.ListColumns(gctx, adapter.KindTable)
		return err
	})
	g.Go(func() (err error) {
		snap.viewCols, err = l.adapter.ListColumns(gctx, adapter.KindView)
		return err
	})
	g.Go(func() (err error) {
		snap.functions, err = l.adapter.ListFunctions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("schema introspection failed: %w", err)
	}

	l.apply(snap)

	l.logger.Debug("schema reloaded",
		slog.Int("tables", len(snap.tables)),
		slog.Int("views", len(snap.views)),
		slog.Int("functions", len(snap.functions)))
	return nil
}

// apply resets the catalog and feeds it the snapshot. Relations must be
// registered before their columns.
func (l *Loader) apply(snap snapshot) {
	c := l.catalog
	c.Reset()
	c.ExtendDatabases(snap.databases)
	c.ExtendRelations(snap.tables, completer.Tables)
	c.ExtendRelations(snap.views, completer.Views)

	if err := c.ExtendColumns(columnEntries(snap.tableCols), completer.Tables); err != nil {
		// Racing DDL can hand us columns of a relation that vanished
		// between the two listing queries. Skip them.
		l.logger.Warn("discarding columns for unknown relation", slog.Any("error", err))
	}
	if err := c.ExtendColumns(columnEntries(snap.viewCols), completer.Views); err != nil {
		l.logger.Warn("discarding columns for unknown relation", slog.Any("error", err))
	}

	c.ExtendFunctions(functionEntries(snap.functions))
	c.ExtendKeywords(dialectKeywords[l.adapter.DialectName()])
}

func columnEntries(rows []adapter.ColumnRow) []completer.ColumnEntry {
	entries := make([]completer.ColumnEntry, len(rows))
	for i, r := range rows {
		entries[i] = completer.ColumnEntry{Relation: r.Relation, Column: r.Column}
	}
	return entries
}

func functionEntries(rows []adapter.FunctionRow) []completer.FunctionEntry {
	entries := make([]completer.FunctionEntry, len(rows))
	for i, r := range rows {
		entries[i] = completer.FunctionEntry{Schema: r.Schema, Name: r.Name}
	}
	return entries
}

// dialectKeywords extends the keyword baseline with per-dialect statements.
var dialectKeywords = map[string][]string{
	"sqlite":   {"ATTACH", "DETACH", "PRAGMA", "VACUUM", "REINDEX"},
	"duckdb":   {"ATTACH", "DETACH", "PRAGMA", "QUALIFY", "SUMMARIZE", "COPY"},
	"postgres": {"ILIKE", "RETURNING", "LATERAL", "VACUUM", "ANALYZE", "COPY"},
}
