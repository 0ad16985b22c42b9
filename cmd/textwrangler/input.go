package main

import (
	"strings"

	"github.com/spf13/cobra"

	"textwrangler/internal/fileutil"
	"textwrangler/pkg/textops"
)

type inputOptions struct {
	joinHyphenated      bool
	normalizeWhitespace bool
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.joinHyphenated, "join-hyphenated", false, "Rejoin words hyphenated across line breaks before splitting lines")
	cmd.Flags().BoolVar(&o.normalizeWhitespace, "normalize-whitespace", false, "Collapse runs of whitespace inside each line")
}

// readInput returns the lines of every file argument, or of stdin when there
// are none or the only argument is "-", and a label naming the source.
func (o *inputOptions) readInput(cmd *cobra.Command, args []string) ([]string, string, error) {
	var (
		lines  []string
		source string
		err    error
	)
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		source = "stdin"
		lines, err = fileutil.ReadLines(cmd.InOrStdin())
	} else {
		source = strings.Join(args, ",")
		lines, err = fileutil.ReadLinesFromFiles(args...)
	}
	if err != nil {
		return nil, "", err
	}

	ops := textops.Default()
	if o.joinHyphenated && len(lines) > 0 {
		lines = strings.Split(ops.NormalizeHyphenatedWords(strings.Join(lines, "\n")), "\n")
	}
	if o.normalizeWhitespace {
		for i, line := range lines {
			lines[i] = ops.NormalizeWhitespace(line)
		}
	}
	return lines, source, nil
}
