// Package blank implements the blank-line inserter: the pass that reconstructs up to two blank
// source lines between tokens whose original lines differed by more than one, as conditional
// newlines guarded by the token's flow tab.
//
// The clamp to at most two blank lines mirrors go/printer's linebreak helper, which caps
// reconstructed blank lines between declarations the same way regardless of how large the
// original gap was.
package blank

import (
	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/token"
)

// maxBlankLines is the most blank lines ever reconstructed between two tokens.
const maxBlankLines = 2

// Run walks d in textual order and prepends, before each Token whose flow is set and whose
// previous non-whitespace token differed in source line by more than one, a clamped run of
// conditional newlines guarded by the token's representative flow tab.
func Run(d doctree.Doc) doctree.Doc {
	switch n := d.(type) {
	case doctree.EmptyDoc, doctree.SpaceDoc, doctree.NoSpaceDoc, doctree.NewlineDoc, doctree.TextDoc,
		doctree.VarDoc:
		return d

	case doctree.TokenDoc:
		return withLeadingBlanks(n)

	case doctree.ConcatDoc:
		return doctree.Concat(Run(n.A), Run(n.B))

	case doctree.AtDoc:
		return doctree.AtDoc{Tab: n.Tab, Doc: Run(n.Doc), MightBeFirst: n.MightBeFirst}

	case doctree.NewTabDoc:
		return doctree.NewTabDoc{Tab: n.Tab, Doc: Run(n.Doc)}

	case doctree.CondDoc:
		return doctree.CondDoc{Tab: n.Tab, Inactive: Run(n.Inactive), Active: Run(n.Active)}

	case doctree.LetDocNode:
		return doctree.LetDocNode{Var: n.Var, Def: Run(n.Def), Body: Run(n.Body)}

	default:
		panic("blank: unhandled doctree.Doc node")
	}
}

func withLeadingBlanks(n doctree.TokenDoc) doctree.Doc {
	if !n.Flow.IsSet() {
		return n
	}
	prev, ok := token.PrevNonWhitespace(n.Tok)
	if !ok {
		return n
	}
	tab, ok := n.Flow.First()
	if !ok {
		return n
	}

	diff := clamp(token.LineDifference(prev, n.Tok)-1, 0, maxBlankLines)
	if diff == 0 {
		return n
	}

	var out doctree.Doc = n
	for i := 0; i < diff; i++ {
		out = doctree.Concat(doctree.Cond(tab, doctree.Empty, doctree.Doc(doctree.NewlineDoc{})), out)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
