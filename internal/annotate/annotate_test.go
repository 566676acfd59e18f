package annotate_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/internal/annotate"
	"github.com/brandonspark/tabdoc/sampletoken"
	"github.com/brandonspark/tabdoc/tab"
)

func TestRunMarksFirstAndSubsequentOccurrences(t *testing.T) {
	// S2: NewTab(root, λT. At(T, Token(t1)) ++ At(T, Token(t2)))
	r := tab.NewRegistry()
	T := r.New(tab.Root, tab.Inplace)
	t1 := sampletoken.New("t1", 1, 1)
	t2 := sampletoken.New("t2", 1, 3)

	in := doctree.NewTabDoc{
		Tab: T,
		Doc: doctree.Concat(
			doctree.At(T, doctree.Token(t1)),
			doctree.At(T, doctree.Token(t2)),
		),
	}

	got := annotate.Run(in)

	newTab, ok := got.(doctree.NewTabDoc)
	assert.True(t, ok)
	concat, ok := newTab.Doc.(doctree.ConcatDoc)
	assert.True(t, ok)
	firstAt, ok := concat.A.(doctree.AtDoc)
	assert.True(t, ok)
	secondAt, ok := concat.B.(doctree.AtDoc)
	assert.True(t, ok)

	assert.True(t, firstAt.MightBeFirst)
	assert.True(t, !secondAt.MightBeFirst)
}

func TestRunCondIntersectsBranches(t *testing.T) {
	// Cond(T, inactive = At(T, t1), active = At(T, t1)) ++ At(T, tail)
	r := tab.NewRegistry()
	T := r.New(tab.Root, tab.Inplace)
	t1 := sampletoken.New("t1", 1, 1)

	in := doctree.Concat(
		doctree.Cond(T, doctree.At(T, doctree.Token(t1)), doctree.At(T, doctree.Token(t1))),
		doctree.At(T, doctree.Text("tail")),
	)

	got := annotate.Run(in).(doctree.ConcatDoc)
	tail := got.B.(doctree.AtDoc)

	// Both Cond branches broke onto T, so the intersection keeps T broken for the continuation:
	// the tail occurrence of T must not be marked as a possible first occurrence.
	assert.True(t, !tail.MightBeFirst)
}

func TestRunCondWithOnlyOneBranchBreakingDoesNotPropagateBroken(t *testing.T) {
	r := tab.NewRegistry()
	T := r.New(tab.Root, tab.Inplace)

	in := doctree.Concat(
		doctree.Cond(T, doctree.Empty, doctree.At(T, doctree.Text("active-only"))),
		doctree.At(T, doctree.Text("tail")),
	)

	got := annotate.Run(in).(doctree.ConcatDoc)
	tail := got.B.(doctree.AtDoc)

	// Only the active branch broke onto T, so the intersection is empty: the tail is still a
	// possible first occurrence.
	assert.True(t, tail.MightBeFirst)
}

func TestRunLetDocUnionsVarOccurrenceIntoBrokenSet(t *testing.T) {
	r := tab.NewRegistry()
	T := r.New(tab.Root, tab.Inplace)

	in := doctree.LetDoc(doctree.At(T, doctree.Text("shared")), func(v doctree.DocVar) doctree.Doc {
		return doctree.Concat(doctree.Var(v), doctree.At(T, doctree.Text("after")))
	})

	got := annotate.Run(in).(doctree.LetDocNode)
	body := got.Body.(doctree.ConcatDoc)
	after := body.B.(doctree.AtDoc)

	assert.True(t, !after.MightBeFirst)
}
