package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "textwrangler",
		Short:         "Cluster and deduplicate text by fingerprint",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.finish()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.flags.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&ctx.flags.method, "method", "", "Fingerprint method: standard or ngram")
	flags.IntVar(&ctx.flags.ngramSize, "ngram-size", 0, "Shingle length for the ngram method")
	flags.IntVar(&ctx.flags.workers, "workers", 0, "Goroutines computing keys (0 = one per CPU)")
	flags.StringVar(&ctx.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&ctx.flags.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	flags.BoolVar(&ctx.flags.json, "json", false, "Emit JSON instead of text")

	rootCmd.AddCommand(newFingerprintCommand(ctx))
	rootCmd.AddCommand(newDedupeCommand(ctx))
	rootCmd.AddCommand(newGroupsCommand(ctx))
	rootCmd.AddCommand(newSQLiteCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
