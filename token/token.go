// Package token defines the collaborator interfaces the core pipeline consumes to learn
// everything it needs about a source token without lexing or parsing anything itself: its text,
// its comments, its neighbors, and the line it came from.
//
// The pipeline never constructs a [Token] or [Source] itself; it is handed a tree built out of
// them by a caller who already has a lexer or parser (see the sibling sampletoken package for a
// minimal, real implementation used by this module's own tests and demo CLI).
package token

// Position is a 1-based line/column location in a [Source].
type Position struct {
	Line   int
	Column int
}

// Before reports whether p precedes o in the same source.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// After reports whether p follows o in the same source.
func (p Position) After(o Position) bool {
	return o.Before(p)
}

func (p Position) String() string {
	return itoa(p.Line) + ":" + itoa(p.Column)
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Source describes the file a [Token] came from, in enough detail for the lowering pass to strip
// leading indentation off a multi-line token's source text.
type Source interface {
	// AbsoluteStart returns the 1-based line and column the source's first rune occupies in the
	// file it was read from.
	AbsoluteStart() Position
	// WholeLine returns the full, unterminated text of the given 1-based line number.
	WholeLine(line int) string
	// Take returns the first n bytes of the source as a string.
	Take(n int) string
	// Nth returns the byte at index i.
	Nth(i int) byte
	// LineRanges returns, for each line the source spans, the half-open [start,end) byte range of
	// that line within the source's own text.
	LineRanges() [][2]int
	// Slice returns the substring of the source's text between byte offsets i and j.
	Slice(i, j int) string
}

// Token is a source token as seen by the pretty-printer core: its own text, the comments
// immediately surrounding it, and enough context to answer "what line is this on" and "what is
// the previous non-whitespace token".
type Token interface {
	// Source returns the underlying source text this token was lexed from.
	Source() Source
	// CommentsBefore returns, in source order, the comment tokens between the previous
	// non-comment, non-whitespace token and this one.
	CommentsBefore() []Token
	// CommentsAfter returns the comment tokens trailing this token on the same line. The comment
	// weaver only uses them when NextNonCommentOrWhitespace reports no following token.
	CommentsAfter() []Token
	// PrevToken returns the token immediately preceding this one in the original token stream, if
	// any.
	PrevToken() (Token, bool)
	// NextNonCommentOrWhitespace returns the next token in the stream that is neither a comment
	// nor whitespace, if any.
	NextNonCommentOrWhitespace() (Token, bool)
	// IsWhitespace reports whether this token represents insignificant whitespace rather than
	// source content.
	IsWhitespace() bool
	// Line returns the 1-based source line this token starts on.
	Line() int
	// Text returns the token's literal source text, comments included verbatim.
	Text() string
}

// LineDifference returns the number of lines between the starts of a and b, i.e. b.Line() -
// a.Line().
func LineDifference(a, b Token) int {
	return b.Line() - a.Line()
}

// PrevNonWhitespace walks backwards from tok over whitespace tokens and returns the first
// non-whitespace token found, if any.
func PrevNonWhitespace(tok Token) (Token, bool) {
	cur, ok := tok.PrevToken()
	for ok && cur.IsWhitespace() {
		cur, ok = cur.PrevToken()
	}
	return cur, ok
}
