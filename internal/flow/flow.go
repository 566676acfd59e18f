// Package flow implements the flow analyzer: the pass that propagates, for every token and text
// node, the set of tab anchors that causally determine its horizontal position.
//
// The analyzer runs twice in the full pipeline (once straight after annotation, once again after
// the comment weaver introduces new token siblings); both runs use the same [Run] entry point.
package flow

import (
	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/tab"
)

// condState is the three-valued knowledge the recursion carries about a Cond's tab: whether the
// branch is known to be taken, known not to be taken, or not yet decided.
type condState int

const (
	unknown condState = iota
	active
	inactive
)

type ctx struct {
	states map[tab.Tab]condState
}

func newCtx() ctx {
	return ctx{states: map[tab.Tab]condState{}}
}

func (c ctx) with(t tab.Tab, s condState) ctx {
	out := ctx{states: make(map[tab.Tab]condState, len(c.states)+1)}
	for k, v := range c.states {
		out.states[k] = v
	}
	out.states[t] = s
	return out
}

func (c ctx) get(t tab.Tab) condState {
	return c.states[t]
}

// varFlow accumulates, per DocVar, the union of flow values seen at every Var occurrence in a
// body, so the binding can be revisited once under the accumulated flow instead of iterating to a
// fixed point.
type varFlow = map[doctree.DocVar]doctree.FlowSet

// Run propagates flow sets through d, starting from Some({tab.Root}) as the spec mandates, and
// returns the rewritten document. Each Token and Text node in the result carries the flow value
// pending when it was reached; since a Token or Text consumes that value, one that follows another
// in sequence with no At in between is left unset.
func Run(d doctree.Doc) doctree.Doc {
	initial := doctree.SomeFlow(tab.Root)
	vf := varFlow{}
	out, _ := analyze(d, initial, newCtx(), vf)
	return fixup(out, vf)
}

func analyze(d doctree.Doc, in doctree.FlowSet, c ctx, vf varFlow) (doctree.Doc, doctree.FlowSet) {
	switch n := d.(type) {
	case doctree.EmptyDoc, doctree.SpaceDoc, doctree.NoSpaceDoc, doctree.NewlineDoc:
		return d, in

	case doctree.TokenDoc:
		return doctree.TokenDoc{Tok: n.Tok, Flow: in}, doctree.UnsetFlow

	case doctree.TextDoc:
		return doctree.TextDoc{Text: n.Text, Flow: in}, doctree.UnsetFlow

	case doctree.ConcatDoc:
		a, flowA := analyze(n.A, in, c, vf)
		b, flowB := analyze(n.B, flowA, c, vf)
		return doctree.ConcatDoc{A: a, B: b}, flowB

	case doctree.AtDoc:
		extended := in.Union(doctree.SomeFlow(n.Tab))
		body, _ := analyze(n.Doc, extended, c, vf)
		return doctree.AtDoc{Tab: n.Tab, Doc: body, MightBeFirst: n.MightBeFirst}, doctree.UnsetFlow

	case doctree.NewTabDoc:
		body, out := analyze(n.Doc, in, c, vf)
		return doctree.NewTabDoc{Tab: n.Tab, Doc: body}, out

	case doctree.CondDoc:
		switch c.get(n.Tab) {
		case active:
			activeDoc, out := analyze(n.Active, in, c, vf)
			return doctree.CondDoc{Tab: n.Tab, Inactive: n.Inactive, Active: activeDoc}, out
		case inactive:
			inactiveDoc, out := analyze(n.Inactive, in, c, vf)
			return doctree.CondDoc{Tab: n.Tab, Inactive: inactiveDoc, Active: n.Active}, out
		default:
			inactiveDoc, outInactive := analyze(n.Inactive, in, c.with(n.Tab, inactive), vf)
			activeDoc, outActive := analyze(n.Active, in, c.with(n.Tab, active), vf)
			return doctree.CondDoc{Tab: n.Tab, Inactive: inactiveDoc, Active: activeDoc},
				outInactive.Union(outActive)
		}

	case doctree.LetDocNode:
		if _, ok := vf[n.Var]; !ok {
			vf[n.Var] = doctree.UnsetFlow
		}
		body, out := analyze(n.Body, in, c, vf)
		return doctree.LetDocNode{Var: n.Var, Def: n.Def, Body: body}, out

	case doctree.VarDoc:
		vf[n.Var] = vf[n.Var].Union(in)
		return n, doctree.UnsetFlow

	default:
		panic("flow: unhandled doctree.Doc node")
	}
}

// fixup revisits every LetDoc's binding under its accumulated flow, annotating the tokens inside
// it with the flow the body's Var occurrences settled on.
func fixup(d doctree.Doc, vf varFlow) doctree.Doc {
	switch n := d.(type) {
	case doctree.EmptyDoc, doctree.SpaceDoc, doctree.NoSpaceDoc, doctree.NewlineDoc,
		doctree.TokenDoc, doctree.TextDoc, doctree.VarDoc:
		return d

	case doctree.ConcatDoc:
		return doctree.ConcatDoc{A: fixup(n.A, vf), B: fixup(n.B, vf)}

	case doctree.AtDoc:
		return doctree.AtDoc{Tab: n.Tab, Doc: fixup(n.Doc, vf), MightBeFirst: n.MightBeFirst}

	case doctree.NewTabDoc:
		return doctree.NewTabDoc{Tab: n.Tab, Doc: fixup(n.Doc, vf)}

	case doctree.CondDoc:
		return doctree.CondDoc{
			Tab:      n.Tab,
			Inactive: fixup(n.Inactive, vf),
			Active:   fixup(n.Active, vf),
		}

	case doctree.LetDocNode:
		accumulated := vf[n.Var]
		def, _ := analyze(n.Def, accumulated, newCtx(), vf)
		return doctree.LetDocNode{Var: n.Var, Def: fixup(def, vf), Body: fixup(n.Body, vf)}

	default:
		panic("flow: unhandled doctree.Doc node")
	}
}
