// Package commands implements the sqlsh commands and the interactive shell.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlsh/internal/classify"
	"github.com/leapstack-labs/sqlsh/internal/cli/config"
	"github.com/leapstack-labs/sqlsh/internal/completer"
	"github.com/leapstack-labs/sqlsh/internal/schema"
	"github.com/leapstack-labs/sqlsh/pkg/adapter"
)

// NewShellCommand creates the shell command. The root command runs the
// shell by default; this makes `sqlsh shell` an explicit alias.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunShell(cmd)
		},
	}
}

// RunShell connects to the configured database and runs the REPL.
func RunShell(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.LoggerFromContext(ctx)

	adapterCfg := connConfig(cfg.Target)
	db, err := adapter.NewAdapter(adapterCfg, logger)
	if err != nil {
		return err
	}
	if err := db.Connect(ctx, adapterCfg); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = db.Close() }()

	sh := newShell(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger, db)
	return sh.run(ctx)
}

// connConfig maps a connection config onto the adapter config.
func connConfig(c *config.ConnConfig) adapter.Config {
	return adapter.Config{
		Type:     c.Type,
		Path:     c.Path,
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		Username: c.User,
		Password: c.Password,
		Options:  c.Options,
	}
}

// shell holds the state of one interactive session.
type shell struct {
	cfg    *config.Config
	logger *slog.Logger
	db     adapter.Adapter

	catalog *completer.Catalog
	loader  *schema.Loader
	engine  *completer.Completer

	out    io.Writer
	errOut io.Writer

	// Accumulates a statement across lines until its closing semicolon.
	buffer strings.Builder
}

func newShell(out, errOut io.Writer, cfg *config.Config, logger *slog.Logger, db adapter.Adapter) *shell {
	catalog := completer.NewCatalog()
	catalog.ExtendSpecialCommands(metaCommandNames())

	return &shell{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		catalog: catalog,
		loader:  schema.NewLoader(db, catalog, logger),
		engine:  completer.New(catalog, classify.New(), cfg.SmartCompletion),
		out:     out,
		errOut:  errOut,
	}
}

func (s *shell) run(ctx context.Context) error {
	if err := s.loader.Reload(ctx); err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Warning: completion unavailable: %v\n", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      s.cfg.Prompt,
		HistoryFile: s.cfg.HistoryFile,
		AutoComplete: &shellCompleter{
			completer: s.engine,
			pending:   func() string { return s.buffer.String() },
		},
		InterruptPrompt: "^C",
		EOFPrompt:       `\q`,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(s.out, "Connected to %s (%s)\n", s.sessionName(), s.db.DialectName())
	_, _ = fmt.Fprintln(s.out, `Type \? for help, \q to quit`)
	_, _ = fmt.Fprintln(s.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.buffer.Reset()
			rl.SetPrompt(s.cfg.Prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Meta-commands are only recognized at the start of a statement.
		if s.buffer.Len() == 0 && strings.HasPrefix(line, `\`) {
			if quit := s.handleMetaCommand(ctx, line); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		s.buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			s.buffer.WriteString(" ")
			rl.SetPrompt("   ...> ")
			continue
		}
		rl.SetPrompt(s.cfg.Prompt)

		query := strings.TrimSuffix(s.buffer.String(), ";")
		s.buffer.Reset()

		if err := s.executeStatement(ctx, query); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(s.out)
	}

	return nil
}

// sessionName describes the connected database for the welcome line.
func (s *shell) sessionName() string {
	t := s.cfg.Target
	switch {
	case t.Database != "":
		return t.Database
	case t.Path != "":
		return t.Path
	default:
		return ":memory:"
	}
}

// executeStatement runs one SQL statement and renders its result.
func (s *shell) executeStatement(ctx context.Context, query string) error {
	if returnsRows(query) {
		rows, err := s.db.Query(ctx, query)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()
		return renderResults(s.out, rows, s.cfg.Format)
	}

	if err := s.db.Exec(ctx, query); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(s.out, "OK")

	// DDL changes what the completer should know.
	if changesSchema(query) {
		if err := s.loader.Reload(ctx); err != nil {
			s.logger.Warn("schema refresh failed", slog.Any("error", err))
		}
	}
	return nil
}

func firstKeyword(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

func returnsRows(query string) bool {
	switch firstKeyword(query) {
	case "SELECT", "WITH", "SHOW", "PRAGMA", "DESCRIBE", "DESC", "EXPLAIN", "VALUES", "SUMMARIZE":
		return true
	}
	return false
}

func changesSchema(query string) bool {
	switch firstKeyword(query) {
	case "CREATE", "DROP", "ALTER", "ATTACH", "DETACH":
		return true
	}
	return false
}
