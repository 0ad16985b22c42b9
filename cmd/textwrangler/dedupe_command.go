package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"textwrangler/internal/fileutil"
	"textwrangler/internal/logging"
)

type dedupeSummary struct {
	Source   string   `json:"source"`
	Lines    int      `json:"lines"`
	Groups   int      `json:"groups"`
	Replaced int      `json:"replaced"`
	Output   string   `json:"output,omitempty"`
	Values   []string `json:"values,omitempty"`
}

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var (
		input      inputOptions
		outputFlag string
		inPlace    bool
		backup     bool
	)

	cmd := &cobra.Command{
		Use:   "dedupe [files...]",
		Short: "Replace every line with the most frequent variant of its group",
		Long: `Replace every line with the most frequent line sharing its fingerprint.
With fingerprint.return_fingerprints set, every line is replaced by its key.

Output keeps the input's line count and order. Ties between equally frequent
variants go to the one that appears first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := strings.TrimSpace(outputFlag)
			if inPlace {
				if len(args) != 1 || args[0] == "-" {
					return errors.New("--in-place requires exactly one input file")
				}
				if output != "" {
					return errors.New("--in-place and --output are mutually exclusive")
				}
				output = args[0]
			}
			if backup && !inPlace {
				return errors.New("--backup requires --in-place")
			}

			lines, source, err := input.readInput(cmd, args)
			if err != nil {
				return err
			}
			t, logger, err := ctx.transformer(cmd)
			if err != nil {
				return err
			}
			logger = logger.With(logging.String(logging.FieldSource, source))

			result, err := t.Groups(lines)
			if err != nil {
				return err
			}
			values := t.Output(result)
			summary := dedupeSummary{
				Source:   source,
				Lines:    len(lines),
				Groups:   len(result.Groups),
				Replaced: result.Replaced(),
			}

			if output != "" {
				if backup {
					backupPath, err := fileutil.Backup(output)
					if err != nil {
						return err
					}
					logger.Info("backup written", logging.String("path", backupPath))
				}
				if err := fileutil.WriteLinesAtomic(cmd.Context(), output, values); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				summary.Output = output
			}
			logger.Info("dedupe complete",
				logging.Int("lines", summary.Lines),
				logging.Int("groups", summary.Groups),
				logging.Int("replaced", summary.Replaced),
				logging.String(logging.FieldEventType, "dedupe_complete"),
			)

			switch {
			case ctx.flags.json:
				if output == "" {
					summary.Values = values
				}
				return writeJSON(cmd, summary)
			case output != "":
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s (%d replaced, %d groups)\n",
					summary.Lines, output, summary.Replaced, summary.Groups)
				return nil
			default:
				return fileutil.WriteLines(cmd.OutOrStdout(), values)
			}
		},
	}
	input.register(cmd)
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write results to this file instead of stdout")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Rewrite the input file")
	cmd.Flags().BoolVar(&backup, "backup", false, "Keep a verified copy of the input as <file>.bak when rewriting in place")
	return cmd
}
