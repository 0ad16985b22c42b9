package textops

import (
	"regexp"
	"strings"
)

var (
	reLinebreak      = regexp.MustCompile(`(\r\n|[\n\v])+`)
	reNonBreakSpace  = regexp.MustCompile(`[^\S\n]+`)
	reHyphenatedWord = regexp.MustCompile(`([\p{L}\p{N}_]+\p{L})-\s+(\p{L}[\p{L}\p{N}_]+)`)
)

// NormalizeWhitespace collapses runs of line breaks into a single newline and
// other whitespace runs into a single space, then trims the result.
func (Ops) NormalizeWhitespace(s string) string {
	s = reLinebreak.ReplaceAllString(s, "\n")
	s = reNonBreakSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeHyphenatedWords rejoins words split across lines with a hyphen,
// e.g. "exam-\nple" becomes "example".
func (Ops) NormalizeHyphenatedWords(s string) string {
	return reHyphenatedWord.ReplaceAllString(s, "$1$2")
}
