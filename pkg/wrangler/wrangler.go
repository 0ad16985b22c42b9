package wrangler

import (
	"fmt"
	"log/slog"
	"time"

	"textwrangler/internal/logging"
	"textwrangler/internal/metrics"
	"textwrangler/pkg/cluster"
	"textwrangler/pkg/fingerprint"
	"textwrangler/pkg/textops"
)

// Options configures a Transformer. The zero value selects the standard
// fingerprint, NFC normalization, serial keying and no extras.
type Options struct {
	Mode               fingerprint.Mode
	ReturnFingerprints bool
	Workers            int
	UnicodeForm        textops.Form
	Extras             textops.Extras
	// Primitives overrides the string operations; nil uses textops.Default().
	Primitives textops.Primitives
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Transformer applies one fixed configuration. It holds no mutable state and
// is safe for concurrent use.
type Transformer struct {
	ops                textops.Primitives
	form               textops.Form
	extras             *textops.Resources
	generator          *fingerprint.Generator
	engine             *cluster.Engine
	returnFingerprints bool
	logger             *slog.Logger
	metrics            *metrics.Recorder
}

// New validates opts and prepares every resource the transformer needs,
// including stopword lists and stemmer selection for enabled extras.
func New(opts Options) (*Transformer, error) {
	ops := opts.Primitives
	if ops == nil {
		ops = textops.Default()
	}
	form, err := textops.ParseForm(string(opts.UnicodeForm))
	if err != nil {
		return nil, err
	}
	generator, err := fingerprint.NewGenerator(opts.Mode, ops)
	if err != nil {
		return nil, err
	}
	var extras *textops.Resources
	if opts.Extras.Enabled() {
		if extras, err = textops.LoadResources(opts.Extras); err != nil {
			return nil, fmt.Errorf("load cleanup resources: %w", err)
		}
	}
	logger := logging.NewComponentLogger(opts.Logger, "wrangler")

	t := &Transformer{
		ops:                ops,
		form:               form,
		extras:             extras,
		generator:          generator,
		returnFingerprints: opts.ReturnFingerprints,
		logger:             logger,
		metrics:            opts.Metrics,
	}
	t.engine = cluster.NewEngine(cluster.KeyFunc(t.Fingerprint), cluster.Options{
		Workers: opts.Workers,
		Logger:  opts.Logger,
	})
	logger.Debug("transformer ready",
		logging.String("mode", opts.Mode.String()),
		logging.String("unicode_form", string(form)),
		logging.Int("workers", t.engine.Workers()),
		logging.Bool("extras", opts.Extras.Enabled()),
	)
	return t, nil
}

// Mode reports the fingerprint mode.
func (t *Transformer) Mode() fingerprint.Mode {
	return t.generator.Mode()
}

// Clean runs the cleanup sequence that precedes fingerprinting.
func (t *Transformer) Clean(s string) (string, error) {
	s = t.ops.StripWhitespace(s)
	s = t.ops.Lowercase(s)
	s, err := t.ops.NormalizeUnicode(s, t.form)
	if err != nil {
		return "", fmt.Errorf("normalize unicode: %w", err)
	}
	s = t.ops.NormalizeQuotationMarks(s)
	s = t.ops.StripPunctuation(s, " ")
	if t.extras != nil {
		if s, err = t.extras.Apply(s); err != nil {
			return "", fmt.Errorf("apply cleanup extras: %w", err)
		}
	}
	return s, nil
}

// Fingerprint returns the key of a single original.
func (t *Transformer) Fingerprint(s string) (string, error) {
	cleaned, err := t.Clean(s)
	if err != nil {
		return "", err
	}
	return t.generator.Key(cleaned), nil
}

// Fingerprints returns the key of every input, in input order.
func (t *Transformer) Fingerprints(inputs []string) ([]string, error) {
	start := time.Now()
	keys, err := t.engine.Keys(inputs)
	if err != nil {
		return nil, t.fail(metrics.OpFingerprint, err)
	}
	t.metrics.ObserveInputs(len(inputs))
	t.metrics.ObserveDuration(metrics.OpFingerprint, start)
	return keys, nil
}

// Canonicalize replaces each input with the most frequent original sharing
// its key. The result has the same length and order as inputs.
func (t *Transformer) Canonicalize(inputs []string) ([]string, error) {
	start := time.Now()
	result, err := t.engine.Group(inputs)
	if err != nil {
		return nil, t.fail(metrics.OpCanonicalize, err)
	}
	t.observe(result)
	t.metrics.ObserveDuration(metrics.OpCanonicalize, start)
	return result.Canonical(), nil
}

// Groups returns the full grouping of inputs.
func (t *Transformer) Groups(inputs []string) (*cluster.Result, error) {
	start := time.Now()
	result, err := t.engine.Group(inputs)
	if err != nil {
		return nil, t.fail(metrics.OpGroup, err)
	}
	t.observe(result)
	t.metrics.ObserveDuration(metrics.OpGroup, start)
	return result, nil
}

// Transform returns fingerprints when the transformer was built with
// ReturnFingerprints, otherwise canonicalized originals.
func (t *Transformer) Transform(inputs []string) ([]string, error) {
	if t.returnFingerprints {
		return t.Fingerprints(inputs)
	}
	return t.Canonicalize(inputs)
}

// Output picks the values Transform would return from an existing grouping:
// keys when built with ReturnFingerprints, otherwise canonical originals.
func (t *Transformer) Output(result *cluster.Result) []string {
	if t.returnFingerprints {
		return append([]string(nil), result.Keys...)
	}
	return result.Canonical()
}

// TransformString treats s as a one-element collection.
func (t *Transformer) TransformString(s string) ([]string, error) {
	return t.Transform([]string{s})
}

func (t *Transformer) observe(result *cluster.Result) {
	replaced := result.Replaced()
	t.metrics.ObserveInputs(len(result.Keys))
	t.metrics.ObserveGroups(len(result.Groups), replaced)
	t.logger.Debug("canonicalized inputs",
		logging.Int("inputs", len(result.Keys)),
		logging.Int("groups", len(result.Groups)),
		logging.Int("replaced", replaced),
	)
}

func (t *Transformer) fail(operation string, err error) error {
	t.metrics.ObserveError(operation)
	t.logger.Debug("transform failed", logging.String("operation", operation), logging.Error(err))
	return fmt.Errorf("%s: %w", operation, err)
}
