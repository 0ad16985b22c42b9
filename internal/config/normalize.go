package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Environment variables that override file values.
const (
	EnvLogLevel    = "TEXTWRANGLER_LOG_LEVEL"
	EnvLogFormat   = "TEXTWRANGLER_LOG_FORMAT"
	EnvWorkers     = "TEXTWRANGLER_WORKERS"
	EnvMetricsFile = "TEXTWRANGLER_METRICS_FILE"
)

func (c *Config) applyEnv() error {
	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv(EnvLogFormat); ok {
		c.Logging.Format = value
	}
	if value, ok := lookupEnv(EnvMetricsFile); ok {
		c.Paths.MetricsFile = value
	}
	if value, ok := lookupEnv(EnvWorkers); ok {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvWorkers, value)
		}
		c.Fingerprint.Workers = workers
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalize() error {
	c.normalizeFingerprint()
	c.normalizeCleanup()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeSQLite()
	return nil
}

func (c *Config) normalizeFingerprint() {
	c.Fingerprint.Method = strings.ToLower(strings.TrimSpace(c.Fingerprint.Method))
	if c.Fingerprint.Method == "" {
		c.Fingerprint.Method = defaultMethod
	}
	// workers = 0 means one worker per available CPU.
	if c.Fingerprint.Workers == 0 {
		c.Fingerprint.Workers = runtime.GOMAXPROCS(0)
	}
	c.Fingerprint.UnicodeForm = strings.ToUpper(strings.TrimSpace(c.Fingerprint.UnicodeForm))
	if c.Fingerprint.UnicodeForm == "" {
		c.Fingerprint.UnicodeForm = defaultUnicodeForm
	}
}

func (c *Config) normalizeCleanup() {
	c.Cleanup.Language = strings.ToLower(strings.TrimSpace(c.Cleanup.Language))
	if c.Cleanup.Language == "" {
		c.Cleanup.Language = defaultLanguage
	}
	c.Cleanup.StopwordsFile = strings.TrimSpace(c.Cleanup.StopwordsFile)
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Cleanup.StopwordsFile, err = expandPath(c.Cleanup.StopwordsFile); err != nil {
		return fmt.Errorf("cleanup.stopwords_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.MetricsFile, err = expandPath(strings.TrimSpace(c.Paths.MetricsFile)); err != nil {
		return fmt.Errorf("paths.metrics_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	if level == "warning" {
		level = "warn"
	}
	c.Logging.Level = level

	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func (c *Config) normalizeSQLite() {
	c.SQLite.Table = strings.TrimSpace(c.SQLite.Table)
	c.SQLite.Column = strings.TrimSpace(c.SQLite.Column)
	c.SQLite.KeyColumn = strings.TrimSpace(c.SQLite.KeyColumn)
	if c.SQLite.KeyColumn == "" {
		c.SQLite.KeyColumn = defaultKeyColumn
	}
	if c.SQLite.BatchSize <= 0 {
		c.SQLite.BatchSize = defaultBatchSize
	}
}
