package cluster

import (
	"fmt"
	"log/slog"
	"sync"

	"textwrangler/internal/logging"
)

// Keyer maps an original string to its fingerprint key.
type Keyer interface {
	Key(original string) (string, error)
}

// KeyFunc adapts a plain function to Keyer.
type KeyFunc func(original string) (string, error)

// Key calls f.
func (f KeyFunc) Key(original string) (string, error) {
	return f(original)
}

// KeyError reports the input position whose key could not be computed.
type KeyError struct {
	Index int
	Err   error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key element %d: %v", e.Index, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// Options tunes an Engine.
type Options struct {
	// Workers is the number of goroutines computing keys. Values below 2 keep
	// key computation on the calling goroutine.
	Workers int
	Logger  *slog.Logger
}

// Engine groups originals by key. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	keyer   Keyer
	workers int
	logger  *slog.Logger
}

// NewEngine constructs an Engine around keyer.
func NewEngine(keyer Keyer, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		keyer:   keyer,
		workers: workers,
		logger:  logger.With(logging.String(logging.FieldComponent, "cluster")),
	}
}

// Workers reports the configured worker count.
func (e *Engine) Workers() int {
	return e.workers
}

// Keys computes the key of every original, preserving positions. The first
// failing position (lowest index) is reported as a *KeyError.
func (e *Engine) Keys(originals []string) ([]string, error) {
	keys := make([]string, len(originals))
	if len(originals) == 0 {
		return keys, nil
	}
	workers := min(e.workers, len(originals))
	if workers < 2 {
		for i, original := range originals {
			key, err := e.keyer.Key(original)
			if err != nil {
				return nil, &KeyError{Index: i, Err: err}
			}
			keys[i] = key
		}
		return keys, nil
	}

	errs := make([]error, len(originals))
	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range indexes {
				keys[i], errs[i] = e.keyer.Key(originals[i])
			}
		}()
	}
	for i := range originals {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &KeyError{Index: i, Err: err}
		}
	}
	return keys, nil
}

// Canonicalize replaces every original with the canonical value of its
// group. The output has the same length and order as originals; an empty
// input yields an empty, non-nil slice.
func (e *Engine) Canonicalize(originals []string) ([]string, error) {
	result, err := e.Group(originals)
	if err != nil {
		return nil, err
	}
	return result.Canonical(), nil
}

// Group computes keys and returns the full grouping.
func (e *Engine) Group(originals []string) (*Result, error) {
	keys, err := e.Keys(originals)
	if err != nil {
		e.logger.Debug("key computation failed", logging.Error(err))
		return nil, err
	}
	result := Build(originals, keys)
	e.logger.Debug("grouped inputs",
		logging.Int("inputs", len(originals)),
		logging.Int("groups", len(result.Groups)),
		logging.Int("workers", e.workers),
	)
	return result, nil
}
