// Package duckdb provides a DuckDB database adapter for sqlsh.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/sqlsh/pkg/adapter"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Options using mapstructure.
type Params struct {
	// Extensions to install and load (e.g., "httpfs", "json")
	Extensions []string `mapstructure:"extensions"`

	// Settings to apply at session level (e.g., memory_limit, threads)
	Settings map[string]string `mapstructure:"settings"`
}

// New creates a new DuckDB adapter instance.
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
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg

	if err := a.applySession(ctx, cfg); err != nil {
		_ = db.Close()
		a.DB = nil
		return err
	}
	return nil
}

// applySession installs extensions and applies session settings.
func (a *Adapter) applySession(ctx context.Context, cfg adapter.Config) error {
	var params Params
	if err := mapstructure.Decode(cfg.Options, &params); err != nil {
		return fmt.Errorf("invalid duckdb options: %w", err)
	}

	for _, ext := range params.Extensions {
		a.Logger.Debug("loading duckdb extension", slog.String("extension", ext))
		if _, err := a.DB.ExecContext(ctx, fmt.Sprintf("INSTALL %s; LOAD %s", ext, ext)); err != nil {
			return fmt.Errorf("failed to load extension %s: %w", ext, err)
		}
	}
	for name, value := range params.Settings {
		if _, err := a.DB.ExecContext(ctx, fmt.Sprintf("SET %s = '%s'", name, value)); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", name, err)
		}
	}
	return nil
}

// ListDatabases returns the attached database names.
func (a *Adapter) ListDatabases(ctx context.Context) ([]string, error) {
	return a.QueryStrings(ctx, `
		SELECT database_name FROM duckdb_databases()
		ORDER BY database_name
	`)
}

// ListRelations returns table or view names, excluding DuckDB internals.
func (a *Adapter) ListRelations(ctx context.Context, kind adapter.Kind) ([]string, error) {
	if kind == adapter.KindView {
		return a.QueryStrings(ctx, `
			SELECT view_name FROM duckdb_views()
			WHERE NOT internal
			ORDER BY view_name
		`)
	}
	return a.QueryStrings(ctx, `
		SELECT table_name FROM duckdb_tables()
		ORDER BY table_name
	`)
}

// ListColumns returns (relation, column) pairs for every table or view.
func (a *Adapter) ListColumns(ctx context.Context, kind adapter.Kind) ([]adapter.ColumnRow, error) {
	tableType := "BASE TABLE"
	if kind == adapter.KindView {
		tableType = "VIEW"
	}

	pairs, err := a.QueryStringPairs(ctx, `
		SELECT c.table_name, c.column_name
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE t.table_type = ?
		ORDER BY c.table_name, c.ordinal_position
	`, tableType)
	if err != nil {
		return nil, err
	}

	rows := make([]adapter.ColumnRow, len(pairs))
	for i, p := range pairs {
		rows[i] = adapter.ColumnRow{Relation: p[0], Column: p[1]}
	}
	return rows, nil
}

// ListFunctions returns every function DuckDB exposes, built-ins included.
func (a *Adapter) ListFunctions(ctx context.Context) ([]adapter.FunctionRow, error) {
	pairs, err := a.QueryStringPairs(ctx, `
		SELECT DISTINCT schema_name, function_name FROM duckdb_functions()
		ORDER BY schema_name, function_name
	`)
	if err != nil {
		return nil, err
	}

	rows := make([]adapter.FunctionRow, len(pairs))
	for i, p := range pairs {
		rows[i] = adapter.FunctionRow{Schema: p[0], Name: p[1]}
	}
	return rows, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
