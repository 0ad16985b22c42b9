package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"textwrangler/internal/config"
	"textwrangler/pkg/fingerprint"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvLogLevel, config.EnvLogFormat, config.EnvWorkers, config.EnvMetricsFile} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "textwrangler", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Fingerprint.Method != "standard" || cfg.Fingerprint.Workers != 1 || cfg.Fingerprint.UnicodeForm != "NFC" {
		t.Fatalf("unexpected fingerprint defaults: %+v", cfg.Fingerprint)
	}
	mode, err := cfg.Mode()
	if err != nil || mode != fingerprint.Standard() {
		t.Fatalf("unexpected mode %v (err %v)", mode, err)
	}
	if cfg.Cleanup.Language != "en" || cfg.Extras().Enabled() {
		t.Fatalf("unexpected cleanup defaults: %+v", cfg.Cleanup)
	}
	if cfg.Paths.LogDir != "" || cfg.Paths.MetricsFile != "" {
		t.Fatalf("expected output paths disabled by default: %+v", cfg.Paths)
	}
	if cfg.SQLite.KeyColumn != "rowid" || cfg.SQLite.BatchSize != 500 {
		t.Fatalf("unexpected sqlite defaults: %+v", cfg.SQLite)
	}
}

func TestLoadProjectFile(t *testing.T) {
	isolate(t)
	content := `
[fingerprint]
method = "NGram"
ngram_size = 3
workers = 0

[cleanup]
remove_stopwords = true
language = "Spanish"

[paths]
log_dir = "~/logs"

[logging]
level = "WARNING"
`
	if err := os.WriteFile("textwrangler.toml", []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "textwrangler.toml" {
		t.Fatalf("expected project config to be found, got %q exists=%v", resolved, exists)
	}
	mode, err := cfg.Mode()
	if err != nil {
		t.Fatalf("Mode returned error: %v", err)
	}
	if mode != fingerprint.NGram(3) {
		t.Fatalf("unexpected mode %v", mode)
	}
	if cfg.Fingerprint.Workers != runtime.GOMAXPROCS(0) {
		t.Fatalf("expected workers=0 to select GOMAXPROCS, got %d", cfg.Fingerprint.Workers)
	}
	if cfg.Cleanup.Language != "spanish" || !cfg.Extras().RemoveStopwords {
		t.Fatalf("unexpected cleanup: %+v", cfg.Cleanup)
	}
	home, _ := os.UserHomeDir()
	if cfg.Paths.LogDir != filepath.Join(home, "logs") {
		t.Fatalf("expected expanded log dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected level normalized to warn, got %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "cfg.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvWorkers, "4")
	t.Setenv(config.EnvMetricsFile, filepath.Join(t.TempDir(), "tw.prom"))

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected explicit config to exist")
	}
	if cfg.Logging.Level != "debug" || cfg.Fingerprint.Workers != 4 {
		t.Fatalf("env overrides not applied: level=%q workers=%d", cfg.Logging.Level, cfg.Fingerprint.Workers)
	}
	if !strings.HasSuffix(cfg.Paths.MetricsFile, "tw.prom") {
		t.Fatalf("unexpected metrics file %q", cfg.Paths.MetricsFile)
	}

	t.Setenv(config.EnvWorkers, "many")
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), config.EnvWorkers) {
		t.Fatalf("expected workers env error, got %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown method", "[fingerprint]\nmethod = \"soundex\"\n", "fingerprint"},
		{"ngram size", "[fingerprint]\nmethod = \"ngram\"\nngram_size = 0\n", "ngram size"},
		{"negative workers", "[fingerprint]\nworkers = -2\n", "fingerprint.workers"},
		{"unicode form", "[fingerprint]\nunicode_form = \"NFX\"\n", "fingerprint.unicode_form"},
		{"language", "[cleanup]\nstem = true\nlanguage = \"klingon\"\n", "cleanup.language"},
		{"no stemmer", "[cleanup]\nstem = true\nlanguage = \"de\"\n", "cleanup.stem"},
		{"stopwords file alone", "[cleanup]\nremove_numbers = true\nstem = true\nstopwords_file = \"x.txt\"\n", "stopwords_file"},
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"unknown key", "[fingerprint]\nmethd = \"ngram\"\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "cfg.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid toml: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Fingerprint != defaults.Fingerprint || cfg.SQLite != defaults.SQLite {
		t.Fatalf("sample diverges from defaults: %+v", cfg)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Fingerprint.Method = "ngram"
	cfg.Fingerprint.NGramSize = 4
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !strings.Contains(string(data), "ngram_size = 4") {
		t.Fatalf("unexpected encoding:\n%s", data)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	if err := config.LoadDotEnv(""); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	if err := os.WriteFile(".env", []byte(config.EnvLogFormat+"=json\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	os.Unsetenv(config.EnvLogFormat)
	if err := config.LoadDotEnv(""); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(config.EnvLogFormat); got != "json" {
		t.Fatalf("expected %s=json, got %q", config.EnvLogFormat, got)
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	got, err := config.ExpandPath("~/data/file.txt")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "data", "file.txt") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Fatalf("expected empty path unchanged, got %q", got)
	}
}
