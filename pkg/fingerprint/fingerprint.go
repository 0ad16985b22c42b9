package fingerprint

import (
	"sort"
	"strings"
	"unicode/utf8"

	"textwrangler/pkg/textops"
)

// Generator computes fingerprint keys for already cleaned strings.
type Generator struct {
	mode    Mode
	accents textops.Accents
}

// NewGenerator validates mode and binds the accent stripper. A nil accents
// value uses textops.Default().
func NewGenerator(mode Mode, accents textops.Accents) (*Generator, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if accents == nil {
		accents = textops.Default()
	}
	return &Generator{mode: mode, accents: accents}, nil
}

// Mode returns the generator's mode.
func (g *Generator) Mode() Mode {
	return g.mode
}

// Key returns the fingerprint of cleaned.
func (g *Generator) Key(cleaned string) string {
	if g.mode.kind == KindNGram {
		return ngramKey(cleaned, g.mode.n, g.accents)
	}
	return tokenKey(cleaned, g.accents)
}

// TokenKey computes the standard fingerprint with the default accent stripper.
func TokenKey(cleaned string) string {
	return tokenKey(cleaned, textops.Default())
}

// NGramKey computes the n-gram fingerprint with the default accent stripper.
// A non-positive n yields an empty key.
func NGramKey(cleaned string, n int) string {
	return ngramKey(cleaned, n, textops.Default())
}

func tokenKey(cleaned string, accents textops.Accents) string {
	tokens := uniqueSorted(strings.Fields(cleaned))
	if len(tokens) == 0 {
		return ""
	}
	return accents.StripAccents(strings.Join(tokens, " "))
}

func ngramKey(cleaned string, n int, accents textops.Accents) string {
	grams := uniqueSorted(Shingles(cleaned, n))
	if len(grams) == 0 {
		return ""
	}
	return strings.TrimSpace(accents.StripAccents(strings.Join(grams, "")))
}

// Shingles returns every contiguous run of n runes in s, in order. It returns
// nil when s has fewer than n runes or n < 1.
func Shingles(s string, n int) []string {
	if n < 1 || utf8.RuneCountInString(s) < n {
		return nil
	}
	runes := []rune(s)
	out := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		out = append(out, string(runes[i:i+n]))
	}
	return out
}

// uniqueSorted drops repeats (first occurrence wins) and sorts by code point.
func uniqueSorted(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
