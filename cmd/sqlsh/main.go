// Package main provides the sqlsh interactive SQL shell.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlsh/internal/cli"

	// Register database adapters via their init() functions.
	_ "github.com/leapstack-labs/sqlsh/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/sqlsh/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlsh/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
