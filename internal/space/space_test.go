package space_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/internal/space"
	"github.com/brandonspark/tabdoc/sampletoken"
	"github.com/brandonspark/tabdoc/tab"
)

func TestRunInsertsSpaceBetweenAdjacentTokens(t *testing.T) {
	t1 := sampletoken.New("foo", 1, 1)
	t2 := sampletoken.New("bar", 1, 5)

	in := doctree.Concat(doctree.Token(t1), doctree.Token(t2))
	got := space.Run(in).(doctree.ConcatDoc)

	// a's right edge is MaybeNotSpacey (a token), so b's incoming needBefore becomes true.
	assert.EqualValues(t, "foo", got.A.(doctree.TokenDoc).Tok.Text())
	bOut := got.B.(doctree.ConcatDoc)
	assert.True(t, bOut.A == doctree.Space)
	assert.EqualValues(t, "bar", bOut.B.(doctree.TokenDoc).Tok.Text())
}

func TestRunDoesNotDoubleSpaceWhenExplicitSpaceAlreadyPresent(t *testing.T) {
	t1 := sampletoken.New("foo", 1, 1)
	t2 := sampletoken.New("bar", 1, 5)

	in := doctree.Concat(doctree.Token(t1), doctree.Concat(doctree.Space, doctree.Token(t2)))
	got := space.Run(in).(doctree.ConcatDoc)

	// a's right edge is still MaybeNotSpacey, so b's needBefore is forced true, but b itself
	// starts with Space (edgeSpacey), so b's own recursion does not add a second one: the
	// explicit Space is threaded through unchanged and the wrapping Concat does not duplicate it.
	bOut := got.B.(doctree.ConcatDoc)
	assert.True(t, bOut.A == doctree.Space)
}

func TestRunAtWithGuaranteedBreakSuppressesLeadingSpace(t *testing.T) {
	r := tab.NewRegistry()
	T := r.New(tab.Root, tab.Inplace)
	tok := sampletoken.New("foo", 2, 1)

	// Simulate a non-first At occurrence (mightBeFirst = false) preceded by a token, inside a
	// context where T is known active: the break itself supplies separation, so no explicit
	// Space should be prepended.
	in := doctree.Concat(
		doctree.Cond(T, doctree.Empty, doctree.Concat(
			doctree.Token(sampletoken.New("head", 1, 1)),
			doctree.AtDoc{Tab: T, Doc: doctree.Token(tok), MightBeFirst: false},
		)),
		doctree.Empty,
	)

	got := space.Run(in)
	// Concat absorbs the trailing Empty, so the input (and the result) is the Cond itself.
	cond := got.(doctree.CondDoc)
	activeConcat := cond.Active.(doctree.ConcatDoc)
	atNode, ok := activeConcat.B.(doctree.AtDoc)
	assert.True(t, ok)
	assert.True(t, atNode.Tab == T)
}

func TestRunLetDocAccumulatesNeedSpaceAcrossVarOccurrences(t *testing.T) {
	tok := sampletoken.New("shared", 1, 1)

	in := doctree.LetDoc(doctree.Token(tok), func(v doctree.DocVar) doctree.Doc {
		return doctree.Concat(
			doctree.Token(sampletoken.New("before", 1, 1)),
			doctree.Concat(doctree.Var(v), doctree.Token(sampletoken.New("after", 1, 10))),
		)
	})

	got := space.Run(in).(doctree.LetDocNode)
	def := got.Def.(doctree.ConcatDoc)

	assert.True(t, def.A == doctree.Space)
}
