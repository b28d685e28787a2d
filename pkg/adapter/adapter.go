// Package adapter defines the database surface of the shell: connection
// management, query execution, and the schema introspection that feeds the
// completion catalog.
//
// Concrete adapter implementations live in pkg/adapters/ subdirectories and
// register themselves via init().
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the adapter (e.g. "sqlite", "postgres", "duckdb").
	Type string

	// Path is the file path for file-based databases. Use ":memory:" for
	// an in-memory database.
	Path string

	// Host is the hostname for network-based databases.
	Host string

	// Port is the port number for network-based databases.
	Port int

	// Database is the database name.
	Database string

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Options contains additional driver-specific options. Each adapter
	// decodes the subset it understands.
	Options map[string]any
}

// Kind distinguishes the two relation namespaces during introspection.
type Kind string

const (
	KindTable Kind = "table"
	KindView  Kind = "view"
)

// ColumnRow is one (relation, column) pair in the relation's column order.
type ColumnRow struct {
	Relation string
	Column   string
}

// FunctionRow names a callable function within a schema.
type FunctionRow struct {
	Schema string
	Name   string
}

// Adapter defines the interface that all database adapters must implement.
// It provides methods for connecting to databases, executing SQL, and
// introspecting the schema for completion.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows (e.g., INSERT, UPDATE, CREATE).
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*sql.Rows, error)

	// DialectName identifies the SQL dialect spoken by this adapter.
	DialectName() string

	// ListDatabases returns the database names visible to the session.
	ListDatabases(ctx context.Context) ([]string, error)

	// ListRelations returns the relation names of the given kind.
	ListRelations(ctx context.Context, kind Kind) ([]string, error)

	// ListColumns returns (relation, column) pairs for every relation of the
	// given kind, ordered by relation and then by column position.
	ListColumns(ctx context.Context, kind Kind) ([]ColumnRow, error)

	// ListFunctions returns the callable functions as (schema, name) pairs.
	ListFunctions(ctx context.Context) ([]FunctionRow, error)
}
