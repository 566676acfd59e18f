// Package highlight provides the syntax-highlighting collaborator the lowering pass calls on a
// token's source text before emitting it, plus the column-aware whitespace stripping lowering
// needs to drop a multi-line token's leading indentation.
package highlight

import "github.com/brandonspark/tabdoc/token"

// Options configures how a line's leading whitespace is stripped.
type Options struct {
	// TabWidth is the column width a literal tab character in source text expands to.
	TabWidth int
	// RemoveAtMost caps how many columns of leading whitespace are stripped from the line, so a
	// line indented less than the token's effective column offset isn't over-stripped.
	RemoveAtMost int
}

// Highlighter produces a colorized rendering of a token's source text.
type Highlighter interface {
	// Highlight returns tok's text with syntax highlighting applied, if any.
	Highlight(tok token.Token) string
	// StripEffectiveWhitespace removes up to opts.RemoveAtMost columns of leading whitespace from
	// line, expanding any literal tabs to opts.TabWidth columns first.
	StripEffectiveWhitespace(opts Options, line string) string
}

// Plain is a no-op Highlighter: it returns token text verbatim and strips whitespace without
// adding any color codes. It is the default used by the demo CLI and by tests.
type Plain struct{}

func (Plain) Highlight(tok token.Token) string {
	return tok.Text()
}

func (Plain) StripEffectiveWhitespace(opts Options, line string) string {
	return stripLeading(opts, line)
}

// ANSI highlights comment tokens in a dim gray, leaving everything else untouched. It is meant
// for terminal output; callers should fall back to [Plain] when writing to a file or pipe.
type ANSI struct{}

const (
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

func (ANSI) Highlight(tok token.Token) string {
	if looksLikeComment(tok.Text()) {
		return ansiDim + tok.Text() + ansiReset
	}
	return tok.Text()
}

func (ANSI) StripEffectiveWhitespace(opts Options, line string) string {
	return stripLeading(opts, line)
}

func looksLikeComment(text string) bool {
	return len(text) >= 2 && text[0] == '/' && (text[1] == '/' || text[1] == '*')
}

func stripLeading(opts Options, line string) string {
	removed := 0
	i := 0
	for i < len(line) && removed < opts.RemoveAtMost {
		switch line[i] {
		case ' ':
			removed++
			i++
		case '\t':
			width := opts.TabWidth
			if width <= 0 {
				width = 1
			}
			removed += width
			i++
		default:
			return line[i:]
		}
	}
	return line[i:]
}
