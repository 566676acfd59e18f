package highlight_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/brandonspark/tabdoc/highlight"
	"github.com/brandonspark/tabdoc/sampletoken"
)

func TestPlainHighlightReturnsTextVerbatim(t *testing.T) {
	tok := sampletoken.New("foo", 1, 1)
	assert.EqualValues(t, "foo", highlight.Plain{}.Highlight(tok))
}

func TestANSIHighlightWrapsComments(t *testing.T) {
	tok := sampletoken.New("// a comment", 1, 1)
	got := highlight.ANSI{}.Highlight(tok)
	assert.True(t, got != "// a comment")
	assert.True(t, len(got) > len("// a comment"))
}

func TestStripEffectiveWhitespaceExpandsTabs(t *testing.T) {
	got := highlight.Plain{}.StripEffectiveWhitespace(highlight.Options{TabWidth: 4, RemoveAtMost: 4}, "\tfoo")
	assert.EqualValues(t, "foo", got)
}

func TestStripEffectiveWhitespaceStopsAtRemoveAtMost(t *testing.T) {
	got := highlight.Plain{}.StripEffectiveWhitespace(highlight.Options{TabWidth: 1, RemoveAtMost: 2}, "    foo")
	assert.EqualValues(t, "  foo", got)
}
