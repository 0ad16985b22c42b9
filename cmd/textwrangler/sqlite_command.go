package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"textwrangler/internal/config"
	"textwrangler/internal/logging"
	"textwrangler/internal/sqlsource"
)

type sqliteReport struct {
	Database string             `json:"database"`
	Target   string             `json:"target"`
	Rows     int                `json:"rows"`
	Groups   int                `json:"groups"`
	Changes  []sqlsource.Update `json:"changes"`
	Applied  bool               `json:"applied"`
	Updated  int                `json:"updated"`
}

func newSQLiteCommand(ctx *commandContext) *cobra.Command {
	var (
		table  string
		column string
		key    string
		apply  bool
	)

	cmd := &cobra.Command{
		Use:   "sqlite <database>",
		Short: "Deduplicate a text column of a SQLite table",
		Long: `Load every non-NULL value of a column, canonicalize the values, and show the
rows that would change. Pass --apply to write the new values back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			target := sqliteTarget(cfg, table, column, key)
			if target.Table == "" || target.Column == "" {
				return errors.New("--table and --column are required (or set sqlite.table and sqlite.column)")
			}
			dbPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			t, logger, err := ctx.transformer(cmd)
			if err != nil {
				return err
			}
			src, err := sqlsource.Open(cmd.Context(), dbPath, logger)
			if err != nil {
				return err
			}
			defer src.Close()

			rows, err := src.Load(cmd.Context(), target)
			if err != nil {
				return err
			}
			values := make([]string, len(rows))
			for i, row := range rows {
				values[i] = row.Value
			}
			result, err := t.Groups(values)
			if err != nil {
				return err
			}
			report := sqliteReport{
				Database: dbPath,
				Target:   target.String(),
				Rows:     len(rows),
				Groups:   len(result.Groups),
				Changes:  sqlsource.Changes(rows, result.Canonical()),
			}
			if report.Changes == nil {
				report.Changes = []sqlsource.Update{}
			}

			if apply {
				updated, err := src.Apply(cmd.Context(), target, report.Changes, cfg.SQLite.BatchSize)
				if err != nil {
					return err
				}
				report.Applied = true
				report.Updated = updated
			} else if len(report.Changes) > 0 {
				logging.WarnWithContext(logger, "dry run; no rows written", "sqlite_dry_run",
					logging.Int("changes", len(report.Changes)),
					logging.String(logging.FieldErrorHint, "rerun with --apply to write changes"),
					logging.String(logging.FieldImpact, "database left unchanged"),
				)
			}

			if ctx.flags.json {
				return writeJSON(cmd, report)
			}
			return printSQLiteReport(cmd, report, rows)
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "Table to read (default sqlite.table)")
	cmd.Flags().StringVar(&column, "column", "", "Text column to deduplicate (default sqlite.column)")
	cmd.Flags().StringVar(&key, "key", "", "Integer key column (default sqlite.key_column)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Write canonical values back to the database")
	return cmd
}

func sqliteTarget(cfg *config.Config, table, column, key string) sqlsource.Target {
	pick := func(flag, fallback string) string {
		if v := strings.TrimSpace(flag); v != "" {
			return v
		}
		return fallback
	}
	return sqlsource.Target{
		Table:  pick(table, cfg.SQLite.Table),
		Column: pick(column, cfg.SQLite.Column),
		Key:    pick(key, cfg.SQLite.KeyColumn),
	}
}

func printSQLiteReport(cmd *cobra.Command, report sqliteReport, rows []sqlsource.Row) error {
	out := cmd.OutOrStdout()
	if len(report.Changes) == 0 {
		fmt.Fprintf(out, "%s: %d rows, nothing to change\n", report.Target, report.Rows)
		return nil
	}
	before := make(map[int64]string, len(rows))
	for _, row := range rows {
		before[row.Key] = row.Value
	}
	tableRows := make([][]string, 0, len(report.Changes))
	for _, change := range report.Changes {
		tableRows = append(tableRows, []string{
			strconv.FormatInt(change.Key, 10),
			before[change.Key],
			change.Value,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Key", "Current", "Canonical"},
		tableRows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
		shouldColorize(out),
	))
	if report.Applied {
		fmt.Fprintf(out, "Updated %d of %d rows in %s\n", report.Updated, report.Rows, report.Target)
	} else {
		fmt.Fprintf(out, "%d of %d rows would change in %s (use --apply to write)\n", len(report.Changes), report.Rows, report.Target)
	}
	return nil
}
