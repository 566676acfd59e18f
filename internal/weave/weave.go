// Package weave implements the comment weaver: the pass that splices a token's leading and,
// where applicable, trailing comments into the document as siblings so they are laid out
// alongside the token they were attached to, rather than dropped.
//
// The weaver only rewrites [doctree.TokenDoc] leaves; it runs after the first flow-analyzer pass
// (so it can read each token's Flow) and must be followed by a second flow-analyzer pass (so the
// At nodes and comment tokens it introduces get their own flow sets). This mirrors the legacy
// printComments splicing the teacher repo's old root-level printer did by walking a
// position-ordered comment list alongside the node stream, generalized here to operate on the
// document tree directly instead of a separate comment index.
package weave

import (
	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/token"
)

// Run rewrites every TokenDoc leaf of d into its original token plus any woven-in comments.
func Run(d doctree.Doc) doctree.Doc {
	switch n := d.(type) {
	case doctree.EmptyDoc, doctree.SpaceDoc, doctree.NoSpaceDoc, doctree.NewlineDoc, doctree.TextDoc,
		doctree.VarDoc:
		return d

	case doctree.TokenDoc:
		return weaveToken(n)

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
		panic("weave: unhandled doctree.Doc node")
	}
}

// weaveToken splices n's comments in around it, per whether n carries an attributed flow.
//
// A token with no trailing comments to attach is left as a bare TokenDoc rather than re-wrapped
// in a fresh At(repTab, ...): since repTab is exactly the tab this token already flows from, it
// is overwhelmingly the token's existing direct enclosing At in the source document, and wrapping
// it again would nest a second At for the same tab with nothing in between — a spurious repeat of
// a single logical break once lowered. The wrap is only worth introducing when there is a trailing
// comment that actually needs anchoring alongside the token.
func weaveToken(n doctree.TokenDoc) doctree.Doc {
	leading := asPlainDocs(n.Tok.CommentsBefore())

	var trailing []token.Token
	if isLastNonCommentToken(n.Tok) {
		trailing = n.Tok.CommentsAfter()
	}

	orig := doctree.Doc(doctree.TokenDoc{Tok: n.Tok})

	repTab, ok := n.Flow.First()
	if !ok || len(trailing) == 0 {
		return doctree.ConcatAll(leading, orig, asPlainDocs(trailing))
	}

	wrapped := doctree.AtDoc{
		Tab:          repTab,
		Doc:          doctree.ConcatAll(orig, asPlainDocs(trailing)),
		MightBeFirst: false,
	}
	return doctree.Concat(leading, wrapped)
}

// asPlainDocs wraps each comment token as an unattributed TokenDoc sibling, in order.
func asPlainDocs(comments []token.Token) doctree.Doc {
	var out doctree.Doc = doctree.Empty
	for _, c := range comments {
		out = doctree.Concat(out, doctree.TokenDoc{Tok: c})
	}
	return out
}

func isLastNonCommentToken(tok token.Token) bool {
	_, ok := tok.NextNonCommentOrWhitespace()
	return !ok
}
