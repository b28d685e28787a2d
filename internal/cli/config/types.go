// Package config provides configuration management for the sqlsh CLI.
//
// Configuration is merged from defaults, a sqlsh.yaml file, SQLSH_
// environment variables, and command-line flags, in increasing priority.
package config

// Config holds all CLI configuration options.
type Config struct {
	Prompt          string                 `koanf:"prompt"`
	HistoryFile     string                 `koanf:"history_file"`
	Format          string                 `koanf:"format"`
	SmartCompletion bool                   `koanf:"smart_completion"`
	Verbose         bool                   `koanf:"verbose"`
	Connection      string                 `koanf:"connection"`
	Target          *ConnConfig            `koanf:"target"`
	Connections     map[string]*ConnConfig `koanf:"connections"`
}

// ConnConfig describes one database connection.
type ConnConfig struct {
	Type     string         `koanf:"type"`
	Path     string         `koanf:"path"`
	Host     string         `koanf:"host"`
	Port     int            `koanf:"port"`
	Database string         `koanf:"database"`
	User     string         `koanf:"user"`
	Password string         `koanf:"password"`
	Options  map[string]any `koanf:"options"`
}

// Default configuration values.
const (
	DefaultPrompt      = "sqlsh> "
	DefaultHistoryFile = ".sqlsh_history"
	DefaultFormat      = "table"
)
