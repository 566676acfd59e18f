package sampletoken_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/brandonspark/tabdoc/sampletoken"
)

func TestBuilderLinksPrevAndNextAcrossWhitespace(t *testing.T) {
	var b sampletoken.Builder
	foo := b.Append(sampletoken.New("foo", 1, 1))
	ws := b.Append(sampletoken.NewWhitespace(" ", 1, 4))
	bar := b.Append(sampletoken.New("bar", 1, 5))

	next, ok := foo.NextNonCommentOrWhitespace()
	assert.True(t, ok)
	assert.EqualValues(t, bar, next)

	prev, ok := bar.PrevToken()
	assert.True(t, ok)
	assert.EqualValues(t, ws, prev)
}

func TestAttachCommentBeforeAndAfter(t *testing.T) {
	var b sampletoken.Builder
	lead := b.Append(sampletoken.New("// lead", 1, 1))
	tok := b.Append(sampletoken.New("foo", 2, 1))
	trail := b.Append(sampletoken.New("// trail", 2, 5))

	b.AttachCommentBefore(tok, lead)
	b.AttachCommentAfter(tok, trail)

	assert.EqualValues(t, 1, len(tok.CommentsBefore()))
	assert.EqualValues(t, 1, len(tok.CommentsAfter()))
}

func TestSourceLineRanges(t *testing.T) {
	src := sampletoken.NewSource("abc\nde\nf")

	ranges := src.LineRanges()
	assert.EqualValues(t, 3, len(ranges))
	assert.EqualValues(t, "abc", src.Slice(ranges[0][0], ranges[0][1]))
	assert.EqualValues(t, "de", src.Slice(ranges[1][0], ranges[1][1]))
	assert.EqualValues(t, "f", src.Slice(ranges[2][0], ranges[2][1]))
}
