package fingerprint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNGramSize is returned when an n-gram mode has n < 1.
var ErrInvalidNGramSize = errors.New("ngram size must be at least 1")

// ErrUnknownMethod is returned by ParseMode for unrecognized method names.
var ErrUnknownMethod = errors.New("unknown fingerprint method")

// Kind identifies the fingerprint algorithm.
type Kind int

const (
	KindStandard Kind = iota
	KindNGram
)

// Mode selects the algorithm and, for n-grams, the shingle length.
type Mode struct {
	kind Kind
	n    int
}

// Standard returns the token fingerprint mode.
func Standard() Mode {
	return Mode{kind: KindStandard}
}

// NGram returns the shingle fingerprint mode with length n.
func NGram(n int) Mode {
	return Mode{kind: KindNGram, n: n}
}

// ParseMode builds a Mode from configuration values. Method names are
// "standard" (alias "token") and "ngram"; n is ignored for standard mode.
func ParseMode(method string, n int) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "standard", "token":
		return Standard(), nil
	case "ngram", "n-gram", "shingle":
		m := NGram(n)
		if err := m.Validate(); err != nil {
			return Mode{}, err
		}
		return m, nil
	default:
		return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// Kind reports the algorithm.
func (m Mode) Kind() Kind { return m.kind }

// N reports the shingle length; zero for standard mode.
func (m Mode) N() int { return m.n }

// Validate checks mode parameters.
func (m Mode) Validate() error {
	if m.kind == KindNGram && m.n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidNGramSize, m.n)
	}
	return nil
}

func (m Mode) String() string {
	if m.kind == KindNGram {
		return fmt.Sprintf("ngram(%d)", m.n)
	}
	return "standard"
}
