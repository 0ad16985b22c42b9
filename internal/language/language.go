package language

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage is returned when a code or name is not in the table.
var ErrUnknownLanguage = errors.New("unknown language")

// ErrNoStemmer is returned when a language has no Snowball stemmer.
var ErrNoStemmer = errors.New("no stemmer for language")

type entry struct {
	code2    string // ISO 639-1
	code3    string // ISO 639-2 primary
	alt3     string // ISO 639-2 bibliographic alternate
	display  string
	snowball string // Snowball stemmer name; empty when unsupported
}

var languages = []entry{
	{"en", "eng", "", "English", "english"},
	{"es", "spa", "", "Spanish", "spanish"},
	{"fr", "fra", "fre", "French", "french"},
	{"ru", "rus", "", "Russian", "russian"},
	{"sv", "swe", "", "Swedish", "swedish"},
	{"no", "nor", "", "Norwegian", "norwegian"},
	{"hu", "hun", "", "Hungarian", "hungarian"},
	{"de", "deu", "ger", "German", ""},
	{"it", "ita", "", "Italian", ""},
	{"pt", "por", "", "Portuguese", ""},
	{"nl", "nld", "dut", "Dutch", ""},
	{"da", "dan", "", "Danish", ""},
	{"fi", "fin", "", "Finnish", ""},
	{"pl", "pol", "", "Polish", ""},
	{"ro", "ron", "rum", "Romanian", ""},
	{"tr", "tur", "", "Turkish", ""},
	{"cs", "ces", "cze", "Czech", ""},
	{"ar", "ara", "", "Arabic", ""},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byName  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byName = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		byName[strings.ToLower(e.display)] = e
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byName[code]; ok {
		return e
	}
	return nil
}

// Known reports whether the code or name resolves to a supported language.
func Known(code string) bool {
	return lookup(code) != nil
}

// ToISO2 converts a recognized code or name to ISO 639-1.
// Returns empty string for unrecognized input.
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	return ""
}

// DisplayName returns a human-readable name, "Unknown" for empty input, or the
// uppercased input when unrecognized.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// StopwordCode returns the ISO 639-1 code used to select a stopword list.
func StopwordCode(code string) (string, error) {
	e := lookup(code)
	if e == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return e.code2, nil
}

// StemmerName returns the Snowball stemmer name for the language.
func StemmerName(code string) (string, error) {
	e := lookup(code)
	if e == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	if e.snowball == "" {
		return "", fmt.Errorf("%w: %s", ErrNoStemmer, e.display)
	}
	return e.snowball, nil
}
