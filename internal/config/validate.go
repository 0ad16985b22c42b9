package config

import (
	"errors"
	"fmt"

	"textwrangler/internal/language"
	"textwrangler/pkg/fingerprint"
	"textwrangler/pkg/textops"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFingerprint(); err != nil {
		return err
	}
	if err := c.validateCleanup(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFingerprint() error {
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}
	if c.Fingerprint.Workers < 1 {
		return errors.New("fingerprint.workers must be positive (0 selects one per CPU)")
	}
	if _, err := textops.ParseForm(c.Fingerprint.UnicodeForm); err != nil {
		return fmt.Errorf("fingerprint.unicode_form: %w", err)
	}
	return nil
}

func (c *Config) validateCleanup() error {
	if !c.Cleanup.RemoveStopwords && !c.Cleanup.Stem {
		return nil
	}
	if !language.Known(c.Cleanup.Language) {
		return fmt.Errorf("cleanup.language: %w: %q", language.ErrUnknownLanguage, c.Cleanup.Language)
	}
	if c.Cleanup.Stem {
		if _, err := language.StemmerName(c.Cleanup.Language); err != nil {
			return fmt.Errorf("cleanup.stem: %w", err)
		}
	}
	if c.Cleanup.StopwordsFile != "" && !c.Cleanup.RemoveStopwords {
		return errors.New("cleanup.stopwords_file requires cleanup.remove_stopwords = true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// Mode returns the fingerprint mode selected by the config.
func (c *Config) Mode() (fingerprint.Mode, error) {
	return fingerprint.ParseMode(c.Fingerprint.Method, c.Fingerprint.NGramSize)
}

// Extras returns the cleanup extras selected by the config.
func (c *Config) Extras() textops.Extras {
	return textops.Extras{
		RemoveNumbers:   c.Cleanup.RemoveNumbers,
		RemoveStopwords: c.Cleanup.RemoveStopwords,
		StopwordsFile:   c.Cleanup.StopwordsFile,
		Stem:            c.Cleanup.Stem,
		Language:        c.Cleanup.Language,
	}
}
