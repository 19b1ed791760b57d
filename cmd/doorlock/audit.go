package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nerrad567/gray-logic-access/internal/audit"
	"github.com/nerrad567/gray-logic-access/internal/events"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/database"
)

var (
	errAuditDisabled = errors.New("audit log is disabled in config")
	errNoAuditLog    = errors.New("audit database does not exist yet")
)

var titleStyle = lipgloss.NewStyle().Bold(true)

const auditUsage = "usage: doorlock audit [--kind KIND] [--door DOOR] [--limit N] [--offset N]"

// parseAuditArgs reads the audit subcommand flags into a filter.
func parseAuditArgs(args []string) (audit.Filter, error) {
	var f audit.Filter
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if i+1 >= len(args) {
			return f, fmt.Errorf("%s needs a value\n%s", arg, auditUsage)
		}
		val := args[i+1]
		i++

		switch arg {
		case "--kind", "-k":
			f.Kind = events.Kind(val)
		case "--door", "-d":
			f.Door = val
		case "--limit", "-n":
			n, err := strconv.Atoi(val)
			if err != nil {
				return f, fmt.Errorf("invalid --limit %q\n%s", val, auditUsage)
			}
			f.Limit = n
		case "--offset":
			n, err := strconv.Atoi(val)
			if err != nil {
				return f, fmt.Errorf("invalid --offset %q\n%s", val, auditUsage)
			}
			f.Offset = n
		default:
			return f, fmt.Errorf("unknown argument %q\n%s", arg, auditUsage)
		}
	}
	return f, nil
}

// runAudit prints the schema state and a page of the local audit log.
// It never migrates: a database the controller has not started on yet is
// reported rather than changed.
func runAudit(ctx context.Context, args []string, out io.Writer) error {
	filter, err := parseAuditArgs(args)
	if err != nil {
		return err
	}

	if err := loadEnv(getEnvPath()); err != nil {
		return fmt.Errorf("loading environment file: %w", err)
	}
	cfg, _, err := loadConfig(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Database.Enabled {
		return errAuditDisabled
	}
	if _, err := os.Stat(cfg.Database.Path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", errNoAuditLog, cfg.Database.Path)
	}

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Read-only session

	applied, pending, err := db.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}

	fmt.Fprintln(out, titleStyle.Render("Schema"))
	fmt.Fprintf(out, "  database  %s\n", db.Path())
	for _, m := range applied {
		fmt.Fprintf(out, "  applied   %s  %s\n", m.Version, m.AppliedAt.Format(time.RFC3339))
	}
	for _, m := range pending {
		fmt.Fprintf(out, "  pending   %s  %s\n", m.Version, m.Name)
	}
	if len(pending) > 0 {
		fmt.Fprintln(out, "\nstart the controller once to apply pending migrations")
		return nil
	}

	res, err := audit.NewSQLiteRepository(db.DB).List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing audit log: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Events %d-%d of %d",
		min(res.Offset+1, res.Total), res.Offset+len(res.Entries), res.Total)))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TIME", "DOOR", "KIND", "METHOD", "DETAIL", "UID")
	for _, e := range res.Entries {
		t.Row(
			e.CreatedAt.Local().Format(time.DateTime),
			e.Door, string(e.Kind), dash(string(e.Method)), dash(e.Detail), dash(e.UID),
		)
	}
	_, err = fmt.Fprintln(out, t.Render())
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
