// Package annotate implements the first pass of the pipeline: marking each AtDoc with whether it
// might be the first break onto its tab.
//
// The traversal carries a "broken" set of tabs already visibly broken onto, in textual order,
// bottom-up through Concat and top-down through the tree otherwise — the same "thread state
// through a sequence, fork state through a branch" shape the teacher's own internal/layout package
// uses for its two-phase measure/sumWidths passes, generalized here from "measured width" to "set
// of broken tabs".
package annotate

import "github.com/brandonspark/tabdoc/doctree"

// Run rewrites d into an annotated document where every AtDoc node carries an accurate
// MightBeFirst flag. It never fails: the pass is a total rewrite over any well-formed input.
func Run(d doctree.Doc) doctree.Doc {
	out, _ := annotate(d, newBrokenSet())
	return out
}

// brokenSet is the set of tabs known to have already been broken onto along the current spine.
// Represented as a map keyed by tab; every operation that extends or merges the set returns a
// fresh copy, so a branch never sees tabs added by its sibling.
type brokenSet struct {
	tabs map[tabKey]struct{}
}

type tabKey = interface{}

func newBrokenSet() brokenSet {
	return brokenSet{tabs: map[tabKey]struct{}{}}
}

func (b brokenSet) clone() brokenSet {
	out := newBrokenSet()
	for k := range b.tabs {
		out.tabs[k] = struct{}{}
	}
	return out
}

func (b brokenSet) has(t tabKey) bool {
	_, ok := b.tabs[t]
	return ok
}

func (b brokenSet) add(t tabKey) brokenSet {
	out := b.clone()
	out.tabs[t] = struct{}{}
	return out
}

func (b brokenSet) intersect(o brokenSet) brokenSet {
	out := newBrokenSet()
	for k := range b.tabs {
		if o.has(k) {
			out.tabs[k] = struct{}{}
		}
	}
	return out
}

// varBroken records, per DocVar, the broken set produced by analyzing its binding in isolation
// (an empty incoming broken set), so every Var occurrence can union it in without re-walking the
// binding.
type varBroken = map[interface{}]brokenSet

func annotate(d doctree.Doc, broken brokenSet) (doctree.Doc, brokenSet) {
	return annotateWith(d, broken, varBroken{})
}

func annotateWith(d doctree.Doc, broken brokenSet, vb varBroken) (doctree.Doc, brokenSet) {
	switch n := d.(type) {
	case doctree.EmptyDoc, doctree.SpaceDoc, doctree.NoSpaceDoc, doctree.NewlineDoc,
		doctree.TokenDoc, doctree.TextDoc:
		return d, broken

	case doctree.ConcatDoc:
		a, broken := annotateWith(n.A, broken, vb)
		b, broken := annotateWith(n.B, broken, vb)
		return doctree.ConcatDoc{A: a, B: b}, broken

	case doctree.AtDoc:
		mightBeFirst := !broken.has(n.Tab)
		// Being "at" tab is itself the break: nested occurrences of At(tab, ...) inside the body
		// see tab as already broken, whether or not this occurrence was the first one.
		body, bodyBroken := annotateWith(n.Doc, broken.add(n.Tab), vb)
		out := doctree.AtDoc{Tab: n.Tab, Doc: body, MightBeFirst: mightBeFirst}
		return out, bodyBroken

	case doctree.NewTabDoc:
		body, broken := annotateWith(n.Doc, broken, vb)
		return doctree.NewTabDoc{Tab: n.Tab, Doc: body}, broken

	case doctree.CondDoc:
		inactive, brokenInactive := annotateWith(n.Inactive, broken, vb)
		active, brokenActive := annotateWith(n.Active, broken, vb)
		out := doctree.CondDoc{Tab: n.Tab, Inactive: inactive, Active: active}
		return out, brokenInactive.intersect(brokenActive)

	case doctree.LetDocNode:
		def, defBroken := annotateWith(n.Def, newBrokenSet(), vb)
		vb2 := varBroken{}
		for k, v := range vb {
			vb2[k] = v
		}
		vb2[n.Var] = defBroken
		body, bodyBroken := annotateWith(n.Body, broken, vb2)
		return doctree.LetDocNode{Var: n.Var, Def: def, Body: body}, bodyBroken

	case doctree.VarDoc:
		if defBroken, ok := vb[n.Var]; ok {
			broken = unionBroken(broken, defBroken)
		}
		return n, broken

	default:
		panic("annotate: unhandled doctree.Doc node")
	}
}

func unionBroken(a, b brokenSet) brokenSet {
	out := a.clone()
	for k := range b.tabs {
		out.tabs[k] = struct{}{}
	}
	return out
}
