package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlsh/internal/completer"
	"github.com/leapstack-labs/sqlsh/pkg/adapter"
)

// sortedRelations returns the catalog's relation names in listing order.
func sortedRelations(c *completer.Catalog, kind completer.RelationKind) []string {
	names := c.RelationNames(kind)
	slices.Sort(names)
	return names
}

// metaCommandNames lists the backslash commands offered to the completer.
func metaCommandNames() []string {
	return []string{`\?`, `\d`, `\dt`, `\dv`, `\l`, `\r`, `\use`, `\q`}
}

// handleMetaCommand dispatches one backslash command. It reports whether
// the shell should exit.
func (s *shell) handleMetaCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	command := fields[0]

	switch command {
	case `\q`, `\quit`:
		return true

	case `\?`, `\h`:
		printShellHelp(s.out)

	case `\l`:
		s.renderOrWarn(renderNames(s.out, "database", s.catalog.Databases(), s.cfg.Format))

	case `\dt`:
		s.renderOrWarn(renderNames(s.out, "table", sortedRelations(s.catalog, completer.Tables), s.cfg.Format))

	case `\dv`:
		s.renderOrWarn(renderNames(s.out, "view", sortedRelations(s.catalog, completer.Views), s.cfg.Format))

	case `\d`:
		if len(fields) < 2 {
			_, _ = fmt.Fprintln(s.errOut, `Usage: \d <table or view>`)
			return false
		}
		if err := s.describeRelation(ctx, fields[1]); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}

	case `\r`:
		if err := s.loader.Reload(ctx); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintln(s.out, "Schema reloaded")

	case `\use`:
		if len(fields) < 2 {
			_, _ = fmt.Fprintln(s.errOut, `Usage: \use <database>`)
			return false
		}
		if err := s.useDatabase(ctx, fields[1]); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type \\? for help)\n", command)
	}
	return false
}

func (s *shell) renderOrWarn(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}

// describeRelation lists the columns of one table or view. Tables win when
// both namespaces hold the name.
func (s *shell) describeRelation(ctx context.Context, name string) error {
	for _, kind := range []adapter.Kind{adapter.KindTable, adapter.KindView} {
		rows, err := s.db.ListColumns(ctx, kind)
		if err != nil {
			return err
		}

		var cols []string
		for _, row := range rows {
			if row.Relation == name {
				cols = append(cols, row.Column)
			}
		}
		if len(cols) > 0 {
			title := "Table"
			if kind == adapter.KindView {
				title = "View"
			}
			_, _ = fmt.Fprintf(s.out, "%s %q\n", title, name)
			return renderNames(s.out, "column", cols, s.cfg.Format)
		}
	}
	return fmt.Errorf("table or view %q not found", name)
}

// useDatabase switches the session to another database and reloads the
// schema. Engines with an in-session USE statement get that; postgres
// needs a fresh connection.
func (s *shell) useDatabase(ctx context.Context, name string) error {
	if s.db.DialectName() == "postgres" {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("closing previous connection failed", slog.Any("error", err))
		}
		s.cfg.Target.Database = name
		if err := s.db.Connect(ctx, connConfig(s.cfg.Target)); err != nil {
			return fmt.Errorf("failed to connect to %q: %w", name, err)
		}
	} else {
		if err := s.db.Exec(ctx, "USE "+name); err != nil {
			return err
		}
	}

	if err := s.loader.Reload(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "Now using %q\n", name)
	return nil
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  \?              Show this help message
  \l              List databases
  \dt             List tables
  \dv             List views
  \d <name>       Show columns of a table or view
  \r              Reload schema for completion
  \use <db>       Switch to another database
  \q              Quit

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completes keywords, tables, columns, and functions
`
	_, _ = fmt.Fprintln(w, help)
}
