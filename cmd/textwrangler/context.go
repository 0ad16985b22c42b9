package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"textwrangler/internal/config"
	"textwrangler/internal/logging"
	"textwrangler/internal/metrics"
	"textwrangler/pkg/textops"
	"textwrangler/pkg/wrangler"
)

type globalFlags struct {
	configPath  string
	method      string
	ngramSize   int
	workers     int
	logLevel    string
	metricsFile string
	json        bool
}

type commandContext struct {
	flags globalFlags
	runID string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	recorder *metrics.Recorder
}

func newCommandContext() *commandContext {
	return &commandContext{
		runID:    uuid.NewString(),
		recorder: metrics.NewRecorder(),
	}
}

// ensureConfig resolves configuration once: .env, then the TOML file and
// TEXTWRANGLER_* variables, then any global flags the user set explicitly.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := config.LoadDotEnv(""); err != nil {
			c.configErr = err
			return
		}
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyFlagOverrides(cmd, cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	changed := func(name string) bool {
		return cmd != nil && cmd.Flags().Changed(name)
	}
	overridden := false
	if changed("method") {
		cfg.Fingerprint.Method = strings.ToLower(strings.TrimSpace(c.flags.method))
		overridden = true
	}
	if changed("ngram-size") {
		cfg.Fingerprint.NGramSize = c.flags.ngramSize
		overridden = true
	}
	if changed("workers") {
		if c.flags.workers < 0 {
			return fmt.Errorf("--workers must not be negative")
		}
		cfg.Fingerprint.Workers = c.flags.workers
		if cfg.Fingerprint.Workers == 0 {
			cfg.Fingerprint.Workers = defaultWorkers()
		}
		overridden = true
	}
	if changed("log-level") {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(c.flags.logLevel))
		overridden = true
	}
	if changed("metrics-file") {
		path, err := config.ExpandPath(strings.TrimSpace(c.flags.metricsFile))
		if err != nil {
			return fmt.Errorf("--metrics-file: %w", err)
		}
		cfg.Paths.MetricsFile = path
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}
	}
	return nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.NewFromConfig(c.config, c.runID)
	})
	return c.logger, c.loggerErr
}

// transformer builds the facade from the resolved configuration.
func (c *commandContext) transformer(cmd *cobra.Command) (*wrangler.Transformer, *slog.Logger, error) {
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	opts, err := wranglerOptions(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts.Logger = logger
	opts.Metrics = c.recorder
	t, err := wrangler.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("build transformer: %w", err)
	}
	return t, logging.NewComponentLogger(logger, cmd.Name()), nil
}

// wranglerOptions converts configuration into facade options. Logger and
// metrics are attached by the caller.
func wranglerOptions(cfg *config.Config) (wrangler.Options, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return wrangler.Options{}, err
	}
	form, err := textops.ParseForm(cfg.Fingerprint.UnicodeForm)
	if err != nil {
		return wrangler.Options{}, err
	}
	return wrangler.Options{
		Mode:               mode,
		ReturnFingerprints: cfg.Fingerprint.ReturnFingerprints,
		Workers:            cfg.Fingerprint.Workers,
		UnicodeForm:        form,
		Extras:             cfg.Extras(),
	}, nil
}

// finish writes the metrics textfile when one is configured.
func (c *commandContext) finish() error {
	if c.config == nil || c.config.Paths.MetricsFile == "" {
		return nil
	}
	if err := c.recorder.WriteTextfile(c.config.Paths.MetricsFile); err != nil {
		return err
	}
	if c.logger != nil {
		c.logger.Debug("metrics written", logging.String("path", c.config.Paths.MetricsFile))
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
