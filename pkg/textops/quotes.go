package textops

import "strings"

var quoteReplacer = strings.NewReplacer(
	"ʼ", "'", // modifier letter apostrophe
	"‘", "'",
	"’", "'",
	"‚", "'",
	"‛", "'",
	"′", "'",
	"‹", "'",
	"›", "'",
	"´", "'",
	"`", "'",
	"“", "\"",
	"”", "\"",
	"„", "\"",
	"‟", "\"",
	"″", "\"",
	"«", "\"",
	"»", "\"",
)
