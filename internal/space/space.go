// Package space implements the space ensurer: the pass that guarantees no two adjacent visible
// pieces that need separation are emitted without an intervening space.
//
// It works in two layers mirroring the teacher's own measure-then-render split in its layout
// package: an edge-kind analysis that classifies how a sub-document behaves at its left and right
// boundary, and a rewrite that threads a pair of "does something to my left/right need a space"
// flags through the tree, inserting explicit Space nodes where the edge analysis says two pieces
// could otherwise abut.
package space

import (
	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/tab"
)

type edgeKind int

const (
	edgeNone edgeKind = iota
	edgeSpacey
	edgeMaybeNotSpacey
)

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

type edgePair struct {
	left, right edgeKind
}

type varEdges = map[doctree.DocVar]edgePair

type spaceFlags struct {
	needLeft, needRight bool
}

type varSpace = map[doctree.DocVar]spaceFlags

// Run rewrites d, inserting explicit Space nodes wherever two adjacent pieces would otherwise
// abut without whitespace under some live branch.
func Run(d doctree.Doc) doctree.Doc {
	ve := varEdges{}
	edgesOf(d, newCtx(), ve)
	vs := varSpace{}
	return rewrite(d, false, false, newCtx(), ve, vs)
}

func edgesOf(d doctree.Doc, c ctx, ve varEdges) (left, right edgeKind) {
	switch n := d.(type) {
	case doctree.EmptyDoc:
		return edgeNone, edgeNone

	case doctree.SpaceDoc, doctree.NoSpaceDoc, doctree.NewlineDoc:
		return edgeSpacey, edgeSpacey

	case doctree.TokenDoc, doctree.TextDoc:
		return edgeMaybeNotSpacey, edgeMaybeNotSpacey

	case doctree.ConcatDoc:
		aLeft, aRight := edgesOf(n.A, c, ve)
		bLeft, bRight := edgesOf(n.B, c, ve)
		left := aLeft
		if left == edgeNone {
			left = bLeft
		}
		right := bRight
		if right == edgeNone {
			right = aRight
		}
		return left, right

	case doctree.AtDoc:
		dLeft, dRight := edgesOf(n.Doc, c, ve)
		var atEdge edgeKind
		if c.get(n.Tab) == active {
			if n.MightBeFirst {
				atEdge = edgeNone
			} else {
				atEdge = edgeSpacey
			}
		} else {
			atEdge = dLeft
		}
		right := dRight
		if right == edgeNone {
			right = atEdge
		}
		return atEdge, right

	case doctree.NewTabDoc:
		return edgesOf(n.Doc, c, ve)

	case doctree.CondDoc:
		switch c.get(n.Tab) {
		case active:
			return edgesOf(n.Active, c, ve)
		case inactive:
			return edgesOf(n.Inactive, c, ve)
		default:
			lInactive, rInactive := edgesOf(n.Inactive, c.with(n.Tab, inactive), ve)
			lActive, rActive := edgesOf(n.Active, c.with(n.Tab, active), ve)
			return combineEdge(lInactive, lActive), combineEdge(rInactive, rActive)
		}

	case doctree.LetDocNode:
		dl, dr := edgesOf(n.Def, newCtx(), ve)
		ve[n.Var] = edgePair{left: dl, right: dr}
		return edgesOf(n.Body, c, ve)

	case doctree.VarDoc:
		e, ok := ve[n.Var]
		if !ok {
			return edgeNone, edgeNone
		}
		return e.left, e.right

	default:
		panic("space: unhandled doctree.Doc node")
	}
}

func combineEdge(a, b edgeKind) edgeKind {
	if a == edgeMaybeNotSpacey || b == edgeMaybeNotSpacey {
		return edgeMaybeNotSpacey
	}
	if a == edgeSpacey && b == edgeSpacey {
		return edgeSpacey
	}
	return edgeNone
}

func rewrite(d doctree.Doc, needBefore, needAfter bool, c ctx, ve varEdges, vs varSpace) doctree.Doc {
	switch n := d.(type) {
	case doctree.EmptyDoc:
		if needBefore || needAfter {
			return doctree.Space
		}
		return doctree.Empty

	case doctree.SpaceDoc, doctree.NoSpaceDoc, doctree.NewlineDoc:
		return d

	case doctree.TokenDoc:
		return wrapWithSpaces(n, needBefore, needAfter)

	case doctree.TextDoc:
		return wrapWithSpaces(n, needBefore, needAfter)

	case doctree.ConcatDoc:
		aOut := rewrite(n.A, needBefore, false, c, ve, vs)
		_, aRight := edgesOf(n.A, c, ve)
		bNeedBefore := aRight == edgeMaybeNotSpacey
		bOut := rewrite(n.B, bNeedBefore, needAfter, c, ve, vs)
		return doctree.Concat(aOut, bOut)

	case doctree.AtDoc:
		suppressed := c.get(n.Tab) == active && !n.MightBeFirst
		bodyOut := rewrite(n.Doc, false, needAfter, c, ve, vs)
		atOut := doctree.Doc(doctree.AtDoc{Tab: n.Tab, Doc: bodyOut, MightBeFirst: n.MightBeFirst})
		if needBefore && !suppressed {
			return doctree.Concat(doctree.Space, atOut)
		}
		return atOut

	case doctree.NewTabDoc:
		out := rewrite(n.Doc, needBefore, needAfter, c, ve, vs)
		return doctree.NewTabDoc{Tab: n.Tab, Doc: out}

	case doctree.CondDoc:
		inactiveOut := rewrite(n.Inactive, needBefore, needAfter, c.with(n.Tab, inactive), ve, vs)
		activeOut := rewrite(n.Active, needBefore, needAfter, c.with(n.Tab, active), ve, vs)
		return doctree.CondDoc{Tab: n.Tab, Inactive: inactiveOut, Active: activeOut}

	case doctree.LetDocNode:
		bodyOut := rewrite(n.Body, needBefore, needAfter, c, ve, vs)
		flags := vs[n.Var]
		defOut := rewrite(n.Def, flags.needLeft, flags.needRight, newCtx(), ve, vs)
		return doctree.LetDocNode{Var: n.Var, Def: defOut, Body: bodyOut}

	case doctree.VarDoc:
		cur := vs[n.Var]
		cur.needLeft = cur.needLeft || needBefore
		cur.needRight = cur.needRight || needAfter
		vs[n.Var] = cur
		return n

	default:
		panic("space: unhandled doctree.Doc node")
	}
}

func wrapWithSpaces(leaf doctree.Doc, needBefore, needAfter bool) doctree.Doc {
	out := leaf
	if needBefore {
		out = doctree.Concat(doctree.Space, out)
	}
	if needAfter {
		out = doctree.Concat(out, doctree.Space)
	}
	return out
}
