// Package postgres provides a PostgreSQL database adapter for sqlsh.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/sqlsh/pkg/adapter"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// Params holds PostgreSQL-specific configuration.
// Parsed from adapter.Config.Options using mapstructure.
type Params struct {
	// SSLMode maps to the sslmode DSN parameter (default "disable").
	SSLMode string `mapstructure:"sslmode"`
}

// New creates a new PostgreSQL adapter instance.
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
	return "postgres"
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn, err := buildPostgresDSN(cfg)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config) (string, error) {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	var params Params
	if err := mapstructure.Decode(cfg.Options, &params); err != nil {
		return "", fmt.Errorf("invalid postgres options: %w", err)
	}
	sslmode := params.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn, nil
}

// tableType maps a relation kind to information_schema.tables.table_type.
func tableType(kind adapter.Kind) string {
	if kind == adapter.KindView {
		return "VIEW"
	}
	return "BASE TABLE"
}

// ListDatabases returns the non-template databases of the cluster.
func (a *Adapter) ListDatabases(ctx context.Context) ([]string, error) {
	return a.QueryStrings(ctx, `
		SELECT datname FROM pg_database
		WHERE NOT datistemplate
		ORDER BY datname
	`)
}

// ListRelations returns table or view names from the user schemas.
func (a *Adapter) ListRelations(ctx context.Context, kind adapter.Kind) ([]string, error) {
	return a.QueryStrings(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_type = $1
		  AND table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_name
	`, tableType(kind))
}

// ListColumns returns (relation, column) pairs for every table or view in
// the user schemas, in ordinal position order.
func (a *Adapter) ListColumns(ctx context.Context, kind adapter.Kind) ([]adapter.ColumnRow, error) {
	pairs, err := a.QueryStringPairs(ctx, `
		SELECT c.table_name, c.column_name
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE t.table_type = $1
		  AND c.table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY c.table_name, c.ordinal_position
	`, tableType(kind))
	if err != nil {
		return nil, err
	}

	rows := make([]adapter.ColumnRow, len(pairs))
	for i, p := range pairs {
		rows[i] = adapter.ColumnRow{Relation: p[0], Column: p[1]}
	}
	return rows, nil
}

// ListFunctions returns the functions defined in the user schemas.
func (a *Adapter) ListFunctions(ctx context.Context) ([]adapter.FunctionRow, error) {
	pairs, err := a.QueryStringPairs(ctx, `
		SELECT n.nspname, p.proname
		FROM pg_proc p
		JOIN pg_namespace n ON n.oid = p.pronamespace
		WHERE n.nspname NOT IN ('pg_catalog', 'information_schema')
		ORDER BY n.nspname, p.proname
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
