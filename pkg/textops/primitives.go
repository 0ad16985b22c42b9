package textops

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrMalformedUnicode is returned when input is not valid UTF-8.
var ErrMalformedUnicode = errors.New("malformed unicode")

// ErrUnknownForm is returned for unsupported normalization form names.
var ErrUnknownForm = errors.New("unknown unicode normalization form")

// Form names a Unicode normalization form.
type Form string

const (
	NFC  Form = "NFC"
	NFD  Form = "NFD"
	NFKC Form = "NFKC"
	NFKD Form = "NFKD"
)

// ParseForm converts a configuration value into a Form. Empty input yields NFC.
func ParseForm(value string) (Form, error) {
	switch Form(strings.ToUpper(strings.TrimSpace(value))) {
	case "", NFC:
		return NFC, nil
	case NFD:
		return NFD, nil
	case NFKC:
		return NFKC, nil
	case NFKD:
		return NFKD, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownForm, value)
	}
}

func (f Form) normForm() (norm.Form, error) {
	switch f {
	case NFC, "":
		return norm.NFC, nil
	case NFD:
		return norm.NFD, nil
	case NFKC:
		return norm.NFKC, nil
	case NFKD:
		return norm.NFKD, nil
	default:
		return norm.NFC, fmt.Errorf("%w: %q", ErrUnknownForm, string(f))
	}
}

// Primitives is the capability set the cleanup pipeline is built from.
type Primitives interface {
	StripWhitespace(s string) string
	Lowercase(s string) string
	NormalizeUnicode(s string, form Form) (string, error)
	NormalizeQuotationMarks(s string) string
	StripPunctuation(s string, replaceWith string) string
	StripAccents(s string) string
}

// Accents is the subset of Primitives needed by the fingerprint generator.
type Accents interface {
	StripAccents(s string) string
}

// Ops is the default Primitives implementation. The zero value is ready to use
// and safe for concurrent callers.
type Ops struct{}

var _ Primitives = Ops{}

// Default returns the library-backed primitives.
func Default() Ops {
	return Ops{}
}

// StripWhitespace trims leading and trailing Unicode whitespace.
func (Ops) StripWhitespace(s string) string {
	return strings.TrimSpace(s)
}

// Lowercase applies Unicode lowercasing. A Caser keeps internal state, so a
// fresh one is built per call.
func (Ops) Lowercase(s string) string {
	if s == "" {
		return s
	}
	return cases.Lower(language.Und).String(s)
}

// NormalizeUnicode converts s into the requested normalization form.
func (Ops) NormalizeUnicode(s string, form Form) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: invalid UTF-8 sequence", ErrMalformedUnicode)
	}
	f, err := form.normForm()
	if err != nil {
		return "", err
	}
	return f.String(s), nil
}

// NormalizeQuotationMarks maps typographic quotes to ASCII ' and ".
func (Ops) NormalizeQuotationMarks(s string) string {
	return quoteReplacer.Replace(s)
}

// StripPunctuation replaces every punctuation rune with replaceWith.
func (Ops) StripPunctuation(s string, replaceWith string) string {
	return replacePunctuation(s, replaceWith)
}

// StripAccents transliterates s to ASCII. Runes without an ASCII equivalent
// are dropped.
func (Ops) StripAccents(s string) string {
	if s == "" {
		return s
	}
	return unidecode.Unidecode(s)
}
