package config

import (
	"fmt"
	"strings"
)

// UnknownConnectionError is returned when --connection names an entry that
// is not in the connections map.
type UnknownConnectionError struct {
	Name      string
	Available []string
}

func (e *UnknownConnectionError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown connection %q: no connections defined in config", e.Name)
	}
	return fmt.Sprintf("unknown connection %q\nAvailable connections: %s", e.Name, strings.Join(e.Available, ", "))
}

// ValidateConn checks that a connection config is usable.
func ValidateConn(c *ConnConfig) error {
	if c == nil {
		return fmt.Errorf("no connection configured")
	}
	if c.Type == "" {
		return fmt.Errorf("connection type is required")
	}

	switch c.Type {
	case "postgres":
		if c.Database == "" {
			return fmt.Errorf("postgres connection requires a database name")
		}
	case "sqlite", "duckdb":
		// Path may be empty; both engines fall back to an in-memory database.
	}
	return nil
}
