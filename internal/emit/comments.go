package emit

import (
	"fmt"
	"io"
	"strings"
)

// CommentStyle holds the delimiter and indent tokens for one backend's
// doc comments. The 0/1/many branching in WriteComments is identical
// across backends; only these tokens differ.
type CommentStyle struct {
	// Open is the block opener, e.g. "/*".
	Open string
	// Prefix starts each interior line of a block, e.g. " * ".
	Prefix string
	// Close ends a block, e.g. " */".
	Close string
	// Indent is one unit of indentation, e.g. "  " or "\t".
	Indent string
}

// WriteComments renders doc comment lines at the given indent depth.
//
// Zero lines emit nothing. One line emits a single-line comment.
// Two or more lines emit a block with one interior line per source
// line, each prefixed and indented.
func WriteComments(w io.Writer, style CommentStyle, depth int, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	indent := strings.Repeat(style.Indent, depth)

	if len(lines) == 1 {
		_, err := fmt.Fprintf(w, "%s%s %s %s\n", indent, style.Open, lines[0], strings.TrimSpace(style.Close))
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", indent, style.Open); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, style.Prefix, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s%s\n", indent, style.Close)
	return err
}
