package testsupport

import (
	"path/filepath"
	"testing"

	"textwrangler/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a validated default config whose output paths live in a
// per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithNGram selects n-gram fingerprints of size n.
func WithNGram(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fingerprint.Method = "ngram"
		b.cfg.Fingerprint.NGramSize = n
	}
}

// WithMetricsFile enables the metrics textfile under the test directory.
func WithMetricsFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.MetricsFile = filepath.Join(b.baseDir, name)
	}
}

// WithoutLogDir disables the JSON run log.
func WithoutLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = ""
	}
}
