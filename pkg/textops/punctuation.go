package textops

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
)

// asciiPunctuation mirrors the classic ASCII punctuation set, which includes
// symbols such as $ + < = > ^ ` | ~ that Unicode files under S* categories.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var punctuation = runes.Predicate(func(r rune) bool {
	if r < utf8.RuneSelf {
		return strings.ContainsRune(asciiPunctuation, r)
	}
	return unicode.IsPunct(r)
})

func replacePunctuation(s, replaceWith string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if punctuation.Contains(r) {
			b.WriteString(replaceWith)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsPunctuation reports whether r is stripped by StripPunctuation.
func IsPunctuation(r rune) bool {
	return punctuation.Contains(r)
}
