// Package sampletoken is a minimal, real implementation of the token package's collaborator
// interfaces, used by this module's own tests and by the demo CLI's YAML scenario builder. It does
// not attempt to be a general-purpose lexer: every token is constructed directly with its text and
// position, and the comment/whitespace/sibling links are wired by hand or via the small Builder
// below.
package sampletoken

import "github.com/brandonspark/tabdoc/token"

// Source is a trivial [token.Source] backed by a single in-memory string.
type Source struct {
	text  string
	start token.Position
}

// NewSource wraps text as a Source whose first rune sits at line 1, column 1.
func NewSource(text string) *Source {
	return &Source{text: text, start: token.Position{Line: 1, Column: 1}}
}

func (s *Source) AbsoluteStart() token.Position { return s.start }

func (s *Source) WholeLine(line int) string {
	for i, r := range s.LineRanges() {
		if i+1 == line {
			return s.text[r[0]:r[1]]
		}
	}
	return ""
}

func (s *Source) Take(n int) string {
	if n > len(s.text) {
		n = len(s.text)
	}
	return s.text[:n]
}

func (s *Source) Nth(i int) byte { return s.text[i] }

func (s *Source) LineRanges() [][2]int {
	var ranges [][2]int
	start := 0
	for i := 0; i < len(s.text); i++ {
		if s.text[i] == '\n' {
			ranges = append(ranges, [2]int{start, i})
			start = i + 1
		}
	}
	ranges = append(ranges, [2]int{start, len(s.text)})
	return ranges
}

func (s *Source) Slice(i, j int) string { return s.text[i:j] }

// Token is a standalone [token.Token] carrying its own text, position, comments and whitespace
// flag. Sibling links (PrevToken, NextNonCommentOrWhitespace) are filled in by [Builder].
type Token struct {
	source         token.Source
	text           string
	line           int
	whitespace     bool
	commentsBefore []token.Token
	commentsAfter  []token.Token
	prev           token.Token
	hasPrev        bool
	next           token.Token
	hasNext        bool
}

// New returns a standalone token with no comments or sibling links, suitable for tests that only
// exercise layout and not comment weaving. Its source is a [Source] over text alone, starting at
// line 1, column 1; the column argument is not recorded.
func New(text string, line, column int) *Token {
	return &Token{source: NewSource(text), text: text, line: line}
}

// NewWhitespace is like [New] but marks the token as insignificant whitespace.
func NewWhitespace(text string, line, column int) *Token {
	return &Token{source: NewSource(text), text: text, line: line, whitespace: true}
}

func (t *Token) Source() token.Source  { return t.source }
func (t *Token) CommentsBefore() []token.Token { return t.commentsBefore }
func (t *Token) CommentsAfter() []token.Token  { return t.commentsAfter }
func (t *Token) PrevToken() (token.Token, bool) { return t.prev, t.hasPrev }
func (t *Token) NextNonCommentOrWhitespace() (token.Token, bool) {
	return t.next, t.hasNext
}
func (t *Token) IsWhitespace() bool { return t.whitespace }
func (t *Token) Line() int          { return t.line }
func (t *Token) Text() string       { return t.text }

// Builder assembles a sequence of tokens and wires their PrevToken/NextNonCommentOrWhitespace and
// comment links as they are appended, so callers don't have to hand-thread pointers.
type Builder struct {
	tokens []*Token
}

// Append adds t to the sequence. t's PrevToken is the previously appended token, whitespace
// included; unless t is whitespace, it also becomes the NextNonCommentOrWhitespace of the nearest
// earlier non-whitespace token. Comment tokens appended here are linked like any other token.
func (b *Builder) Append(t *Token) *Token {
	if len(b.tokens) > 0 {
		t.prev = b.tokens[len(b.tokens)-1]
		t.hasPrev = true
	}
	if !t.whitespace {
		for i := len(b.tokens) - 1; i >= 0; i-- {
			if p := b.tokens[i]; !p.whitespace {
				p.next = t
				p.hasNext = true
				break
			}
		}
	}
	b.tokens = append(b.tokens, t)
	return t
}

// AttachCommentBefore records c as a leading comment of t.
func (b *Builder) AttachCommentBefore(t *Token, c *Token) {
	t.commentsBefore = append(t.commentsBefore, c)
}

// AttachCommentAfter records c as a trailing same-line comment of t.
func (b *Builder) AttachCommentAfter(t *Token, c *Token) {
	t.commentsAfter = append(t.commentsAfter, c)
}

// Tokens returns every token appended so far, in order.
func (b *Builder) Tokens() []*Token {
	return b.tokens
}
