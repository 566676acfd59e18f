// Package lower implements the final pipeline pass: translating the fully annotated document to
// the downstream stringdoc algebra, highlighting each token's source text and stripping leading
// indentation off multi-line tokens.
package lower

import (
	"strings"

	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/highlight"
	"github.com/brandonspark/tabdoc/internal/invariant"
	"github.com/brandonspark/tabdoc/stringdoc"
	"github.com/brandonspark/tabdoc/tab"
	"github.com/brandonspark/tabdoc/token"
)

// Options configures lowering.
type Options struct {
	TabWidth    int
	Highlighter highlight.Highlighter
	MaxColumn   int
}

// Run lowers d, which must have already passed through the annotator, flow analyzer (twice),
// comment weaver, space ensurer and blank-line inserter, into a renderable [stringdoc.Doc].
func Run(d doctree.Doc, r *tab.Registry, opts Options) *stringdoc.Doc {
	hl := opts.Highlighter
	if hl == nil {
		hl = highlight.Plain{}
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 1
	}

	out := stringdoc.NewDoc(opts.MaxColumn)
	tabMap := map[tab.Tab]stringdoc.Tab{tab.Root: stringdoc.Root}
	lowerInto(out, d, r, tabMap, stringdoc.Root, tabWidth, hl)
	return out
}

// lowerInto appends the lowering of d to sd, using surrounding as the tab a bare Token (one with
// no attributed flow) is considered to belong to for the purposes of indentation stripping.
func lowerInto(
	sd *stringdoc.Doc,
	d doctree.Doc,
	r *tab.Registry,
	tabMap map[tab.Tab]stringdoc.Tab,
	surrounding stringdoc.Tab,
	tabWidth int,
	hl highlight.Highlighter,
) {
	switch n := d.(type) {
	case doctree.EmptyDoc, doctree.NoSpaceDoc:
		return

	case doctree.NewlineDoc:
		sd.Newline()

	case doctree.SpaceDoc:
		sd.Space()

	case doctree.TextDoc:
		sd.Text(n.Text)

	case doctree.TokenDoc:
		current := surrounding
		if first, ok := n.Flow.First(); ok {
			if mapped, ok := tabMap[first]; ok {
				current = mapped
			}
		}
		lowerToken(sd, n.Tok, current, tabWidth, hl)

	case doctree.ConcatDoc:
		lowerInto(sd, n.A, r, tabMap, surrounding, tabWidth, hl)
		lowerInto(sd, n.B, r, tabMap, surrounding, tabWidth, hl)

	case doctree.AtDoc:
		lowered, ok := tabMap[n.Tab]
		if !ok {
			panic(invariant.New("tab map", "At refers to tab %v with no corresponding lowered tab; it was never introduced by a NewTab in scope", n.Tab))
		}
		sd.At(lowered, func(sd *stringdoc.Doc) {
			lowerInto(sd, n.Doc, r, tabMap, lowered, tabWidth, hl)
		})

	case doctree.CondDoc:
		lowered, ok := tabMap[n.Tab]
		if !ok {
			panic(invariant.New("tab map", "Cond refers to tab %v with no corresponding lowered tab; it was never introduced by a NewTab in scope", n.Tab))
		}
		sd.Cond(lowered,
			func(sd *stringdoc.Doc) { lowerInto(sd, n.Inactive, r, tabMap, surrounding, tabWidth, hl) },
			func(sd *stringdoc.Doc) { lowerInto(sd, n.Active, r, tabMap, surrounding, tabWidth, hl) },
		)

	case doctree.NewTabDoc:
		parentLowered, ok := tabMap[r.Parent(n.Tab)]
		if !ok {
			panic(invariant.New("tab map", "NewTab's parent %v has no corresponding lowered tab; it was never introduced by an enclosing NewTab", r.Parent(n.Tab)))
		}
		style := lowerStyle(r.StyleOf(n.Tab))
		minIndent := r.MinIndent(n.Tab)
		sd.NewTabWithIndent(parentLowered, style, minIndent, func(sd *stringdoc.Doc, lowered stringdoc.Tab) {
			tabMap[n.Tab] = lowered
			lowerInto(sd, n.Doc, r, tabMap, lowered, tabWidth, hl)
		})

	case doctree.LetDocNode:
		// Every Var occurrence has already been rewritten in place by the earlier passes, so the
		// binding itself only needs its body lowered once, inline.
		lowerInto(sd, n.Body, r, tabMap, surrounding, tabWidth, hl)

	case doctree.VarDoc:
		return

	default:
		panic("lower: unhandled doctree.Doc node")
	}
}

// lowerToken highlights tok and, if its text spans multiple lines, strips each continuation
// line's leading indentation and re-emits it under a fresh RigidInplace sub-tab so every line
// lands at the same column.
func lowerToken(sd *stringdoc.Doc, tok token.Token, current stringdoc.Tab, tabWidth int, hl highlight.Highlighter) {
	highlighted := hl.Highlight(tok)
	lines := strings.Split(highlighted, "\n")
	if len(lines) == 1 {
		sd.Text(lines[0])
		return
	}

	sd.Text(lines[0])
	removeAtMost := effectiveColumn(tok, tabWidth) - 1
	if removeAtMost < 0 {
		removeAtMost = 0
	}

	sd.NewTabWithIndent(current, stringdoc.RigidInplace, 0, func(sd *stringdoc.Doc, sub stringdoc.Tab) {
		for _, line := range lines[1:] {
			stripped := hl.StripEffectiveWhitespace(highlight.Options{TabWidth: tabWidth, RemoveAtMost: removeAtMost}, line)
			sd.At(sub, func(sd *stringdoc.Doc) {
				sd.Text(stripped)
			})
		}
	})
}

// effectiveColumn returns the 1-based column tok's source text starts at, expanding any literal
// tabs preceding it on the same source line to tabWidth columns each.
func effectiveColumn(tok token.Token, tabWidth int) int {
	src := tok.Source()
	start := src.AbsoluteStart()
	ranges := src.LineRanges()
	if start.Line-1 >= len(ranges) || start.Line-1 < 0 {
		return start.Column
	}
	r := ranges[start.Line-1]
	line := src.Slice(r[0], r[1])

	col := 0
	for i := 0; i < len(line) && i < start.Column-1; i++ {
		if line[i] == '\t' {
			col += tabWidth
		} else {
			col++
		}
	}
	return col + 1
}

func lowerStyle(s tab.Style) stringdoc.Style {
	switch s {
	case tab.Inplace:
		return stringdoc.Inplace
	case tab.Indented:
		return stringdoc.Indented
	case tab.RigidInplace:
		return stringdoc.RigidInplace
	case tab.RigidIndented:
		return stringdoc.RigidIndented
	default:
		return stringdoc.Inplace
	}
}
