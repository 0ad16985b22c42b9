package main

import (
	"github.com/spf13/cobra"

	"textwrangler/internal/fileutil"
	"textwrangler/internal/logging"
)

type fingerprintRecord struct {
	Value string `json:"value"`
	Key   string `json:"key"`
}

func newFingerprintCommand(ctx *commandContext) *cobra.Command {
	var input inputOptions

	cmd := &cobra.Command{
		Use:   "fingerprint [files...]",
		Short: "Print the fingerprint key of every input line",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, source, err := input.readInput(cmd, args)
			if err != nil {
				return err
			}
			t, logger, err := ctx.transformer(cmd)
			if err != nil {
				return err
			}
			keys, err := t.Fingerprints(lines)
			if err != nil {
				return err
			}
			logger.Info("fingerprints computed",
				logging.String(logging.FieldSource, source),
				logging.Int("lines", len(lines)),
				logging.String("mode", t.Mode().String()),
			)

			if ctx.flags.json {
				records := make([]fingerprintRecord, len(lines))
				for i := range lines {
					records[i] = fingerprintRecord{Value: lines[i], Key: keys[i]}
				}
				return writeJSON(cmd, records)
			}
			return fileutil.WriteLines(cmd.OutOrStdout(), keys)
		},
	}
	input.register(cmd)
	return cmd
}
