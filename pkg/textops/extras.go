package textops

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/bbalet/stopwords"
	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"textwrangler/internal/language"
)

// Extras selects optional cleanup steps applied after punctuation stripping.
// All steps are off by default.
type Extras struct {
	RemoveNumbers   bool
	RemoveStopwords bool
	StopwordsFile   string
	Stem            bool
	Language        string
}

// Enabled reports whether any extra step is switched on.
func (e Extras) Enabled() bool {
	return e.RemoveNumbers || e.RemoveStopwords || e.Stem
}

// Resources holds the language data needed by the enabled extras. Build it
// with LoadResources; a nil *Resources applies nothing.
type Resources struct {
	extras       Extras
	stopwordCode string
	stemmer      string
}

// The stopwords module keeps its lists and digit handling in package-level
// state. Loading a custom list takes the write lock; lookups take the read lock.
var (
	stopwordsMu     sync.RWMutex
	stopwordsDigits sync.Once
)

var asciiDigits = runes.Predicate(func(r rune) bool { return r >= '0' && r <= '9' })

// LoadResources prepares language resources for the enabled extras. It must
// run before Apply and returns an error for unknown languages or languages
// without a stemmer when stemming is requested.
func LoadResources(extras Extras) (*Resources, error) {
	res := &Resources{extras: extras}
	if !extras.RemoveStopwords && !extras.Stem {
		return res, nil
	}
	lang := strings.TrimSpace(extras.Language)
	if lang == "" {
		lang = "en"
	}
	if extras.RemoveStopwords {
		code, err := language.StopwordCode(lang)
		if err != nil {
			return nil, fmt.Errorf("stopwords: %w", err)
		}
		res.stopwordCode = code
		// Digit-only tokens are not stopwords; keep them for RemoveNumbers to decide.
		stopwordsDigits.Do(stopwords.DontStripDigits)
		if path := strings.TrimSpace(extras.StopwordsFile); path != "" {
			stopwordsMu.Lock()
			stopwords.LoadStopWordsFromFile(path, code, "\n")
			stopwordsMu.Unlock()
		}
	}
	if extras.Stem {
		name, err := language.StemmerName(lang)
		if err != nil {
			return nil, fmt.Errorf("stemmer: %w", err)
		}
		res.stemmer = name
	}
	return res, nil
}

// Apply runs the enabled extras over an already cleaned string in the order
// numbers, stopwords, stems.
func (r *Resources) Apply(s string) (string, error) {
	if r == nil || !r.extras.Enabled() || s == "" {
		return s, nil
	}
	if r.extras.RemoveNumbers {
		s = RemoveNumbers(s)
	}
	if r.stopwordCode != "" {
		s = r.removeStopwords(s)
	}
	if r.stemmer != "" {
		stemmed, err := r.stem(s)
		if err != nil {
			return "", err
		}
		s = stemmed
	}
	return s, nil
}

// RemoveNumbers deletes ASCII digits.
func RemoveNumbers(s string) string {
	out, _, err := transform.String(runes.Remove(asciiDigits), s)
	if err != nil {
		return s
	}
	return out
}

func (r *Resources) removeStopwords(s string) string {
	stopwordsMu.RLock()
	defer stopwordsMu.RUnlock()
	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, token := range tokens {
		if hasLetter(token) && strings.TrimSpace(stopwords.CleanString(token, r.stopwordCode, false)) == "" {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func (r *Resources) stem(s string) (string, error) {
	tokens := strings.Fields(s)
	for i, token := range tokens {
		stemmed, err := snowball.Stem(token, r.stemmer, true)
		if err != nil {
			return "", fmt.Errorf("stem %q: %w", token, err)
		}
		tokens[i] = stemmed
	}
	return strings.Join(tokens, " "), nil
}
