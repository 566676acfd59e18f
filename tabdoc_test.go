package tabdoc_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/brandonspark/tabdoc"
	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/sampletoken"
	"github.com/brandonspark/tabdoc/tab"
)

func TestToStringDocPanicsOnInvalidTabWidth(t *testing.T) {
	defer func() {
		r := recover()
		assert.True(t, r != nil)
	}()
	r := tab.NewRegistry()
	tabdoc.ToStringDoc(tabdoc.Options{TabWidth: 0, MaxColumn: 80}, r, doctree.Empty)
}

func TestRenderJoinsAdjacentTokensWithASpace(t *testing.T) {
	// S1: two adjacent tokens with no tab between them get exactly one separating space.
	r := tab.NewRegistry()
	t1 := sampletoken.New("foo", 1, 1)
	t2 := sampletoken.New("bar", 1, 5)

	doc := doctree.Concat(doctree.Token(t1), doctree.Token(t2))
	got, err := tabdoc.Render(tabdoc.Options{TabWidth: 1, MaxColumn: 80}, r, doc)

	assert.True(t, err == nil)
	assert.EqualValues(t, "foo bar", got)
}

func TestRenderBreaksOntoNewLineWhenContentOverflowsMaxColumn(t *testing.T) {
	var b sampletoken.Builder
	head := b.Append(sampletoken.New("head", 1, 1))
	tail := b.Append(sampletoken.New("a-very-long-token-that-does-not-fit", 1, 6))

	r := tab.NewRegistry()
	doc := doctree.NewTabScopeIn(r, tab.Root, tab.Indented, func(T tab.Tab) doctree.Doc {
		return doctree.Concat(doctree.Token(head), doctree.At(T, doctree.Token(tail)))
	})

	got, err := tabdoc.Render(tabdoc.Options{TabWidth: 1, MaxColumn: 10}, r, doc)
	assert.True(t, err == nil)
	assert.True(t, len(got) > 0)
	assert.True(t, got[:4] == "head")
}

func TestRenderWeavesLeadingCommentBeforeToken(t *testing.T) {
	var b sampletoken.Builder
	comment := b.Append(sampletoken.New("// note", 1, 1))
	tok := b.Append(sampletoken.New("foo", 2, 1))
	b.AttachCommentBefore(tok, comment)

	r := tab.NewRegistry()
	doc := doctree.TokenDoc{Tok: tok}

	got, err := tabdoc.Render(tabdoc.Options{TabWidth: 1, MaxColumn: 80}, r, doc)
	assert.True(t, err == nil)
	assert.True(t, len(got) >= len("// notefoo"))
}

func TestRenderReconstructsBlankLineForLargeSourceGap(t *testing.T) {
	var b sampletoken.Builder
	first := b.Append(sampletoken.New("foo", 1, 1))
	second := b.Append(sampletoken.New("bar", 5, 1))

	r := tab.NewRegistry()
	doc := doctree.NewTabScopeIn(r, tab.Root, tab.RigidInplace, func(T tab.Tab) doctree.Doc {
		return doctree.Concat(doctree.At(T, doctree.Token(first)), doctree.At(T, doctree.Token(second)))
	})

	got, err := tabdoc.Render(tabdoc.Options{TabWidth: 1, MaxColumn: 80}, r, doc)
	assert.True(t, err == nil)
	assert.True(t, len(got) > len("foobar"))
}
