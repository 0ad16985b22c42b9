package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"textwrangler/internal/config"
	"textwrangler/internal/testsupport"
)

type cliEnv struct {
	dir        string
	configPath string
}

func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	for _, key := range []string{config.EnvLogLevel, config.EnvLogFormat, config.EnvWorkers, config.EnvMetricsFile} {
		t.Setenv(key, "")
	}
	work := filepath.Join(base, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatalf("mkdir work: %v", err)
	}
	t.Chdir(work)
	return &cliEnv{dir: work, configPath: filepath.Join(base, "config.toml")}
}

func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.configPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestDedupeStdin(t *testing.T) {
	env := setupCLI(t)
	out, err := env.run(t, "New York\nnew york\nNEW YORK\nBoston\n", "dedupe")
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	if out != "New York\nNew York\nNew York\nBoston\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDedupeJSONSummary(t *testing.T) {
	env := setupCLI(t)
	out, err := env.run(t, "NYC\nnyc\nNYC\n", "--json", "dedupe")
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	var summary dedupeSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.Lines != 3 || summary.Groups != 1 || summary.Replaced != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if strings.Join(summary.Values, ",") != "NYC,NYC,NYC" {
		t.Fatalf("unexpected values %v", summary.Values)
	}
}

func TestDedupeInPlaceWithBackup(t *testing.T) {
	env := setupCLI(t)
	path := testsupport.WriteLines(t, env.dir, "cities.txt", "Boston", "boston", "Boston", "Paris")

	out, err := env.run(t, "", "dedupe", "--in-place", "--backup", path)
	if err != nil {
		t.Fatalf("dedupe --in-place: %v", err)
	}
	requireContains(t, out, "Wrote 4 lines")

	got := testsupport.ReadLines(t, path)
	if strings.Join(got, ",") != "Boston,Boston,Boston,Paris" {
		t.Fatalf("unexpected rewritten file %v", got)
	}
	backup := testsupport.ReadLines(t, path+".bak")
	if strings.Join(backup, ",") != "Boston,boston,Boston,Paris" {
		t.Fatalf("unexpected backup %v", backup)
	}

	if _, err := env.run(t, "", "dedupe", "--in-place", path, path); err == nil {
		t.Fatal("expected error for --in-place with two files")
	}
	if _, err := env.run(t, "", "dedupe", "--backup", path); err == nil {
		t.Fatal("expected error for --backup without --in-place")
	}
}

func TestDedupeReturnFingerprintsFromConfig(t *testing.T) {
	env := setupCLI(t)
	cfg := "[fingerprint]\nreturn_fingerprints = true\n"
	if err := os.WriteFile(env.configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := env.run(t, "Smith, John\nJohn Smith\nBoston\n", "dedupe")
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	if out != "john smith\njohn smith\nboston\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDedupeCommandReusable(t *testing.T) {
	env := setupCLI(t)
	first := testsupport.WriteLines(t, env.dir, "first.txt", "Oslo", "oslo", "Oslo")
	second := testsupport.WriteLines(t, env.dir, "second.txt", "Rome", "ROME", "Rome")

	cmd := newRootCommand()
	for _, path := range []string{first, second} {
		var stdout bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader(""))
		cmd.SetArgs([]string{"--config", env.configPath, "--log-level", "error", "dedupe", "--in-place", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("dedupe --in-place %s: %v", filepath.Base(path), err)
		}
	}
	if got := testsupport.ReadLines(t, second); strings.Join(got, ",") != "Rome,Rome,Rome" {
		t.Fatalf("unexpected second file %v", got)
	}
	if got := testsupport.ReadLines(t, first); strings.Join(got, ",") != "Oslo,Oslo,Oslo" {
		t.Fatalf("unexpected first file %v", got)
	}
}

func TestFingerprintModes(t *testing.T) {
	env := setupCLI(t)
	path := testsupport.WriteLines(t, env.dir, "in.txt", "b a", "abc")

	out, err := env.run(t, "", "fingerprint", path)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if out != "a b\nabc\n" {
		t.Fatalf("unexpected standard keys %q", out)
	}

	out, err = env.run(t, "", "--method", "ngram", "--ngram-size", "2", "fingerprint", path)
	if err != nil {
		t.Fatalf("fingerprint ngram: %v", err)
	}
	if out != "ab\nabbc\n" {
		t.Fatalf("unexpected ngram keys %q", out)
	}

	if _, err := env.run(t, "", "--method", "ngram", "--ngram-size", "0", "fingerprint", path); err == nil {
		t.Fatal("expected error for ngram size 0")
	}
}

func TestFingerprintJSONAndJoinHyphenated(t *testing.T) {
	env := setupCLI(t)
	out, err := env.run(t, "exam-\nple\n", "--json", "fingerprint", "--join-hyphenated")
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	var records []fingerprintRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode records: %v\n%s", err, out)
	}
	if len(records) != 1 || records[0].Value != "example" || records[0].Key != "example" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestGroupsReport(t *testing.T) {
	env := setupCLI(t)
	input := "Acme Inc\nACME, inc.\nAcme Inc\nGlobex\n"

	out, err := env.run(t, input, "groups")
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	requireContains(t, out, "CANONICAL")
	requireContains(t, out, "Acme Inc")
	requireContains(t, out, "ACME, inc. (1)")
	requireContains(t, out, "1 of 2 groups shown, 1 lines would change")

	out, err = env.run(t, input, "--json", "groups", "--min-size", "1")
	if err != nil {
		t.Fatalf("groups --json: %v", err)
	}
	var records []groupRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode groups: %v\n%s", err, out)
	}
	if len(records) != 2 || records[0].Key != "acme inc" || records[0].Size != 3 || records[1].Canonical != "Globex" {
		t.Fatalf("unexpected groups %+v", records)
	}

	out, err = env.run(t, "a\nb\n", "groups")
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	requireContains(t, out, "No groups with at least 2 members")
}

func TestSQLiteDryRunAndApply(t *testing.T) {
	env := setupCLI(t)
	dbPath, db := testsupport.NewSQLite(t, "customers",
		testsupport.Str("New York"), testsupport.Str("new york"), nil, testsupport.Str("New York"))

	out, err := env.run(t, "", "sqlite", dbPath, "--table", "customers", "--column", "name")
	if err != nil {
		t.Fatalf("sqlite dry run: %v", err)
	}
	requireContains(t, out, "1 of 3 rows would change")
	if got := testsupport.Column(t, db, "customers"); got[1] != "new york" {
		t.Fatalf("dry run modified database: %v", got)
	}

	out, err = env.run(t, "", "--json", "sqlite", dbPath, "--table", "customers", "--column", "name", "--apply")
	if err != nil {
		t.Fatalf("sqlite apply: %v", err)
	}
	var report sqliteReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.Applied || report.Updated != 1 || len(report.Changes) != 1 || report.Changes[0].Key != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	got := testsupport.Column(t, db, "customers")
	if strings.Join(got, ",") != "New York,New York,<nil>,New York" {
		t.Fatalf("unexpected column %v", got)
	}

	if _, err := env.run(t, "", "sqlite", dbPath); err == nil {
		t.Fatal("expected error without table and column")
	}
}

func TestMetricsFileWritten(t *testing.T) {
	env := setupCLI(t)
	metricsPath := filepath.Join(env.dir, "out", "tw.prom")
	if _, err := env.run(t, "a\nA\n", "--metrics-file", metricsPath, "dedupe"); err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	requireContains(t, string(data), "textwrangler_inputs_total 2")
	requireContains(t, string(data), "textwrangler_replaced_total 1")
}

func TestConfigInitValidateShow(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")

	out, err = env.run(t, "", "config", "init", "--path", env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := env.run(t, "", "config", "init", "--path", env.configPath); err == nil {
		t.Fatal("expected error when config already exists")
	}

	out, err = env.run(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if strings.Contains(out, "defaults were used") {
		t.Fatalf("expected sample config to be used: %q", out)
	}

	out, err = env.run(t, "", "--method", "ngram", "--ngram-size", "3", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "ngram")
	requireContains(t, out, "ngram_size = 3")
}
