package config

const (
	defaultMethod        = "standard"
	defaultNGramSize     = 2
	defaultWorkers       = 1
	defaultUnicodeForm   = "NFC"
	defaultLanguage      = "en"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultRetentionDays = 30
	defaultKeyColumn     = "rowid"
	defaultBatchSize     = 500
	defaultConfigPath    = "~/.config/textwrangler/config.toml"
	projectConfigName    = "textwrangler.toml"
)

// Default returns a Config populated with repository defaults. Run logs and
// the metrics textfile are disabled until a path is configured.
func Default() Config {
	return Config{
		Fingerprint: Fingerprint{
			Method:      defaultMethod,
			NGramSize:   defaultNGramSize,
			Workers:     defaultWorkers,
			UnicodeForm: defaultUnicodeForm,
		},
		Cleanup: Cleanup{
			Language: defaultLanguage,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetentionDays,
		},
		SQLite: SQLite{
			KeyColumn: defaultKeyColumn,
			BatchSize: defaultBatchSize,
		},
	}
}
