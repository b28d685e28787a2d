// Package sqlite provides a SQLite database adapter for sqlsh.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/sqlsh/pkg/adapter"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// Params holds SQLite-specific configuration.
// Parsed from adapter.Config.Options using mapstructure.
type Params struct {
	// Pragmas to apply at session level (e.g., journal_mode, foreign_keys).
	Pragmas map[string]string `mapstructure:"pragmas"`
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "sqlite"
}

// Connect establishes a connection to SQLite.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg

	if err := a.applyPragmas(ctx, cfg); err != nil {
		_ = db.Close()
		a.DB = nil
		return err
	}
	return nil
}

func (a *Adapter) applyPragmas(ctx context.Context, cfg adapter.Config) error {
	var params Params
	if err := mapstructure.Decode(cfg.Options, &params); err != nil {
		return fmt.Errorf("invalid sqlite options: %w", err)
	}
	for name, value := range params.Pragmas {
		stmt := fmt.Sprintf("PRAGMA %s = %s", name, value)
		if _, err := a.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply pragma %s: %w", name, err)
		}
	}
	return nil
}

// ListDatabases returns the attached database names.
func (a *Adapter) ListDatabases(ctx context.Context) ([]string, error) {
	return a.QueryStrings(ctx, `SELECT name FROM pragma_database_list ORDER BY seq`)
}

// ListRelations returns table or view names, excluding SQLite internals.
func (a *Adapter) ListRelations(ctx context.Context, kind adapter.Kind) ([]string, error) {
	return a.QueryStrings(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = ? AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`, string(kind))
}

// ListColumns returns (relation, column) pairs for every table or view.
func (a *Adapter) ListColumns(ctx context.Context, kind adapter.Kind) ([]adapter.ColumnRow, error) {
	pairs, err := a.QueryStringPairs(ctx, `
		SELECT m.name, p.name
		FROM sqlite_master m, pragma_table_info(m.name) p
		WHERE m.type = ? AND m.name NOT LIKE 'sqlite_%'
		ORDER BY m.name, p.cid
	`, string(kind))
	if err != nil {
		return nil, err
	}

	rows := make([]adapter.ColumnRow, len(pairs))
	for i, p := range pairs {
		rows[i] = adapter.ColumnRow{Relation: p[0], Column: p[1]}
	}
	return rows, nil
}

// ListFunctions returns the SQL functions known to the connection.
// SQLite has a single function namespace, reported under "main".
func (a *Adapter) ListFunctions(ctx context.Context) ([]adapter.FunctionRow, error) {
	names, err := a.QueryStrings(ctx, `SELECT DISTINCT name FROM pragma_function_list ORDER BY name`)
	if err != nil {
		return nil, err
	}

	rows := make([]adapter.FunctionRow, len(names))
	for i, name := range names {
		rows[i] = adapter.FunctionRow{Schema: "main", Name: name}
	}
	return rows, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
