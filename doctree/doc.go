// Package doctree defines the input document algebra: the declarative tree a caller builds to
// describe how tokens should be laid out relative to tab anchors, plus the handful of
// smart-constructor invariants (like empty-absorbing concatenation) that keep that tree well
// formed. The core pipeline's passes (in the sibling internal packages) read trees built from
// these constructors and rewrite them into richer trees built from the same node types, adding
// information — a MightBeFirst flag here, a flow set there — as they go.
//
// Doc nodes are immutable values; every rewrite produces a new tree. Shared sub-documents
// ([LetDoc]/[Var]) are held by [DocVar] identity so a pass can visit a binding once and remember
// what it learned for every [Var] occurrence.
package doctree

import (
	"sync/atomic"

	"github.com/brandonspark/tabdoc/tab"
	"github.com/brandonspark/tabdoc/token"
)

// Doc is a node of the document IR. Every concrete type in this package implements it; the set is
// closed and callers are expected to type-switch exhaustively over it, as the internal passes do.
type Doc interface {
	isDoc()
}

// EmptyDoc contributes nothing to the layout. Concat absorbs it on either side.
type EmptyDoc struct{}

// SpaceDoc requests a mandatory space.
type SpaceDoc struct{}

// NoSpaceDoc is an explicit anti-space: it suppresses a space the space ensurer would otherwise
// insert at this position, and is elided entirely once lowered.
type NoSpaceDoc struct{}

// NewlineDoc is a hard newline. It only ever appears in an annotated document, introduced by the
// blank-line inserter (see the internal/blank package). One authored directly is emitted as is;
// the inserter counts source line gaps, not existing NewlineDocs, so it does not account for it.
type NewlineDoc struct{}

// TokenDoc wraps a source token. Flow is nil ("unattributed") until the flow analyzer has run.
type TokenDoc struct {
	Tok  token.Token
	Flow FlowSet
}

// TextDoc is a literal string fragment that is not a source token (so it carries no comments and
// contributes no position information). Flow is nil until the flow analyzer has run.
type TextDoc struct {
	Text string
	Flow FlowSet
}

// ConcatDoc sequences two documents. Use [Concat] to build one; it never actually constructs a
// ConcatDoc when either side is an [EmptyDoc].
type ConcatDoc struct {
	A, B Doc
}

// AtDoc requests that Doc be laid out beginning at the column [tab.Tab] resolves to, breaking onto
// a new line if the tab has already been broken onto. MightBeFirst is set by the annotator (see
// the internal/annotate package); freshly constructed AtDocs always start with MightBeFirst false,
// since the annotator — not the document's author — determines first-occurrence status.
type AtDoc struct {
	Tab          tab.Tab
	Doc          Doc
	MightBeFirst bool
}

// NewTabDoc introduces a freshly allocated tab into scope for Doc. Every AtDoc or CondDoc
// referring to Tab must lie within Doc (or refer to [tab.Root]).
type NewTabDoc struct {
	Tab tab.Tab
	Doc Doc
}

// CondDoc branches layout on whether Tab becomes active: Active is selected if the downstream
// layout engine breaks onto Tab, Inactive otherwise.
type CondDoc struct {
	Tab              tab.Tab
	Inactive, Active Doc
}

// LetDocNode binds Def to Var within Body, so that every Var occurrence in Body shares one
// analyzed copy of Def rather than duplicating it. Use [LetDoc] to build one.
type LetDocNode struct {
	Var  DocVar
	Def  Doc
	Body Doc
}

// VarDoc is an occurrence of a document bound by a [LetDocNode].
type VarDoc struct {
	Var DocVar
}

func (EmptyDoc) isDoc()   {}
func (SpaceDoc) isDoc()   {}
func (NoSpaceDoc) isDoc() {}
func (NewlineDoc) isDoc() {}
func (TokenDoc) isDoc()   {}
func (TextDoc) isDoc()    {}
func (ConcatDoc) isDoc()  {}
func (AtDoc) isDoc()      {}
func (NewTabDoc) isDoc()  {}
func (CondDoc) isDoc()    {}
func (LetDocNode) isDoc() {}
func (VarDoc) isDoc()     {}

// Empty, Space and NoSpace are the singleton values of their respective node types; there is never
// a reason to construct more than one of each.
var (
	Empty   Doc = EmptyDoc{}
	Space   Doc = SpaceDoc{}
	NoSpace Doc = NoSpaceDoc{}
)

// Token wraps a source token as a Doc leaf.
func Token(t token.Token) Doc {
	return TokenDoc{Tok: t}
}

// Text wraps a literal string fragment as a Doc leaf.
func Text(s string) Doc {
	return TextDoc{Text: s}
}

// Concat sequences a then b, absorbing either side if it is [Empty].
func Concat(a, b Doc) Doc {
	if isEmpty(a) {
		return b
	}
	if isEmpty(b) {
		return a
	}
	return ConcatDoc{A: a, B: b}
}

func isEmpty(d Doc) bool {
	_, ok := d.(EmptyDoc)
	return ok
}

// ConcatAll concatenates every document in ds in order, absorbing Empty values.
func ConcatAll(ds ...Doc) Doc {
	var out Doc = Empty
	for _, d := range ds {
		out = Concat(out, d)
	}
	return out
}

// At requests that d be laid out at tab's column.
func At(t tab.Tab, d Doc) Doc {
	return AtDoc{Tab: t, Doc: d}
}

// Cond branches on whether tab becomes active.
func Cond(t tab.Tab, inactive, active Doc) Doc {
	return CondDoc{Tab: t, Inactive: inactive, Active: active}
}

// NewTabScope allocates a fresh tab under parent with the given style from the process-wide
// default [tab.Registry], passes it to f, and wraps the result in a NewTabDoc.
func NewTabScope(parent tab.Tab, style tab.Style, f func(tab.Tab) Doc) Doc {
	t := tab.New(parent, style)
	return NewTabDoc{Tab: t, Doc: f(t)}
}

// NewTabScopeIn is like [NewTabScope] but allocates from an explicit registry, for reentrant use
// when multiple documents are built concurrently.
func NewTabScopeIn(r *tab.Registry, parent tab.Tab, style tab.Style, f func(tab.Tab) Doc) Doc {
	t := r.New(parent, style)
	return NewTabDoc{Tab: t, Doc: f(t)}
}

var docVarCounter int64

// NewDocVar allocates a fresh [DocVar] from the process-wide counter. Exported so a pass that
// needs to mint its own bindings (none currently do) can, but ordinary callers should use
// [LetDoc].
func NewDocVar() DocVar {
	return DocVar{id: atomic.AddInt64(&docVarCounter, 1)}
}

// LetDoc allocates a fresh [DocVar], applies f to obtain the body, and binds def to that variable
// within it.
func LetDoc(def Doc, f func(DocVar) Doc) Doc {
	v := NewDocVar()
	return LetDocNode{Var: v, Def: def, Body: f(v)}
}

// Var returns an occurrence of the document bound to v.
func Var(v DocVar) Doc {
	return VarDoc{Var: v}
}
