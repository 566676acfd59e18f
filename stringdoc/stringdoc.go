// Package stringdoc is the lowered string-document algebra the core pipeline targets: a small set
// of constructors (text, space, newline, at, cond, newTab) plus a renderer that decides, tab by
// tab, whether to break onto a new line.
//
// The renderer is adapted from the teacher's own internal/layout package: the same two-phase
// shape (a lazy flat-width measurement feeding a forward decision pass that tracks a running
// column) is generalized here from anonymous Group/Indent tags, each deciding independently, to
// named Tab identities whose activation decision is made once — at the first At occurrence
// textually reached — and shared by every later At or Cond referring to the same tab. A tab's
// decision, once made, is never revisited; this is what lets the core pipeline's annotator mark
// only the first occurrence of a tab as a possible decision point.
package stringdoc

import "io"

// Style controls how a tab behaves once its containing At decides to break.
type Style int

const (
	// Inplace aligns continuation lines under the column the tab's first occurrence started at.
	Inplace Style = iota
	// Indented moves continuation lines to the ambient indent plus the tab's MinIndent.
	Indented
	// RigidInplace is Inplace, but always active regardless of measured width.
	RigidInplace
	// RigidIndented is Indented, but always active regardless of measured width.
	RigidIndented
)

func (s Style) String() string {
	switch s {
	case Inplace:
		return "inplace"
	case Indented:
		return "indented"
	case RigidInplace:
		return "rigid-inplace"
	case RigidIndented:
		return "rigid-indented"
	default:
		return "style(?)"
	}
}

// IsRigid reports whether s forces its tab active unconditionally.
func (s Style) IsRigid() bool {
	return s == RigidInplace || s == RigidIndented
}

// IsIndented reports whether s indents continuation lines rather than aligning them in place.
func (s Style) IsIndented() bool {
	return s == Indented || s == RigidIndented
}

// DefaultMinIndent is the indentation width used by [Doc.NewTab] when the caller doesn't need a
// different one.
const DefaultMinIndent = 1

// Tab is a lowered tab identity, allocated by [Doc.NewTab]/[Doc.NewTabWithIndent]. It is distinct
// from the core pipeline's tab.Tab: the lowering pass maintains the mapping between the two.
type Tab struct {
	id int64
}

// Root is the sentinel tab every document is implicitly laid out under.
var Root = Tab{id: 0}

type tabInfo struct {
	parent    Tab
	style     Style
	minIndent int
}

type nodeKind int

const (
	kSeq nodeKind = iota
	kText
	kSpace
	kNewline
	kAt
	kCond
)

type node struct {
	kind     nodeKind
	text     string
	tab      Tab
	children []*node
}

// Doc is a lowered document under construction. Build it by chaining Text/Space/Newline/At/
// Cond/NewTab calls, then call [Doc.Render] once building is complete.
type Doc struct {
	maxColumn int
	nextTabID int64
	infos     map[Tab]tabInfo
	stack     []*node
}

// NewDoc creates an empty document that will wrap lines at maxColumn columns.
func NewDoc(maxColumn int) *Doc {
	root := &node{kind: kSeq}
	return &Doc{
		maxColumn: maxColumn,
		infos:     map[Tab]tabInfo{Root: {style: Inplace}},
		stack:     []*node{root},
	}
}

func (d *Doc) top() *node {
	return d.stack[len(d.stack)-1]
}

func (d *Doc) append(n *node) *Doc {
	top := d.top()
	top.children = append(top.children, n)
	return d
}

// Text appends a literal text fragment.
func (d *Doc) Text(s string) *Doc {
	if s == "" {
		return d
	}
	return d.append(&node{kind: kText, text: s})
}

// Space appends a single space.
func (d *Doc) Space() *Doc {
	return d.append(&node{kind: kSpace})
}

// Newline appends an unconditional line break.
func (d *Doc) Newline() *Doc {
	return d.append(&node{kind: kNewline})
}

// At lays body out beginning at tab's resolved position, breaking onto a new line if tab has
// already broken (or, for the first occurrence, if body doesn't fit in the remaining width).
func (d *Doc) At(t Tab, body func(*Doc)) *Doc {
	child := &node{kind: kSeq}
	d.append(&node{kind: kAt, tab: t, children: []*node{child}})
	d.stack = append(d.stack, child)
	body(d)
	d.stack = d.stack[:len(d.stack)-1]
	return d
}

// Cond selects inactive or active depending on whether tab ends up broken. If tab is never seen
// via [Doc.At] before this point, inactive is selected.
func (d *Doc) Cond(t Tab, inactive, active func(*Doc)) *Doc {
	inactiveChild := &node{kind: kSeq}
	activeChild := &node{kind: kSeq}
	d.append(&node{kind: kCond, tab: t, children: []*node{inactiveChild, activeChild}})

	d.stack = append(d.stack, inactiveChild)
	inactive(d)
	d.stack = d.stack[:len(d.stack)-1]

	d.stack = append(d.stack, activeChild)
	active(d)
	d.stack = d.stack[:len(d.stack)-1]
	return d
}

// NewTab allocates a fresh tab under parent with [DefaultMinIndent] and passes it to body.
func (d *Doc) NewTab(parent Tab, style Style, body func(*Doc, Tab)) *Doc {
	return d.NewTabWithIndent(parent, style, DefaultMinIndent, body)
}

// NewTabWithIndent is like [Doc.NewTab] but with an explicit indentation width.
func (d *Doc) NewTabWithIndent(parent Tab, style Style, minIndent int, body func(*Doc, Tab)) *Doc {
	t := d.allocTab(parent, style, minIndent)
	body(d, t)
	return d
}

func (d *Doc) allocTab(parent Tab, style Style, minIndent int) Tab {
	d.nextTabID++
	t := Tab{id: d.nextTabID}
	d.infos[t] = tabInfo{parent: parent, style: style, minIndent: minIndent}
	return t
}

// Render writes the laid-out document to w, deciding each tab's activation the first time it is
// reached and reusing that decision for every later At or Cond referencing it.
func (d *Doc) Render(w io.Writer) error {
	r := &renderer{w: w, maxColumn: d.maxColumn, infos: d.infos, runtime: map[Tab]*tabRuntime{}}
	return r.renderNode(d.stack[0])
}

type tabRuntime struct {
	decided      bool
	active       bool
	anchorColumn int
	anchorIndent int
}

type renderer struct {
	w            io.Writer
	maxColumn    int
	infos        map[Tab]tabInfo
	runtime      map[Tab]*tabRuntime
	column       int
	indent       int
	pendingSpace bool

	// lastBreakTab/lastBreakValid track the tab that most recently broke onto a new line, as long
	// as nothing has been emitted since. An At immediately re-entering that same tab (the shape a
	// token nested directly inside its own At produces) reuses the break instead of repeating it.
	lastBreakTab   Tab
	lastBreakValid bool
}

func (r *renderer) renderNode(n *node) error {
	switch n.kind {
	case kSeq:
		for _, c := range n.children {
			if err := r.renderNode(c); err != nil {
				return err
			}
		}
		return nil
	case kText:
		return r.writeText(n.text)
	case kSpace:
		r.pendingSpace = true
		return nil
	case kNewline:
		return r.writeNewline()
	case kAt:
		return r.renderAt(n)
	case kCond:
		return r.renderCond(n)
	default:
		panic("stringdoc: unhandled node kind")
	}
}

func (r *renderer) writeText(s string) error {
	if r.pendingSpace {
		if _, err := io.WriteString(r.w, " "); err != nil {
			return err
		}
		r.pendingSpace = false
		r.column++
	}
	if _, err := io.WriteString(r.w, s); err != nil {
		return err
	}
	r.column += len([]rune(s))
	r.lastBreakValid = false
	return nil
}

func (r *renderer) writeNewline() error {
	r.pendingSpace = false
	if _, err := io.WriteString(r.w, "\n"); err != nil {
		return err
	}
	r.column = 0
	r.lastBreakValid = false
	return nil
}

func (r *renderer) writeIndent(columns int) error {
	for i := 0; i < columns; i++ {
		if _, err := io.WriteString(r.w, " "); err != nil {
			return err
		}
	}
	r.column = columns
	return nil
}

func (r *renderer) runtimeFor(t Tab) *tabRuntime {
	rt, ok := r.runtime[t]
	if !ok {
		rt = &tabRuntime{}
		r.runtime[t] = rt
	}
	return rt
}

func (r *renderer) renderAt(n *node) error {
	info := r.infos[n.tab]
	rt := r.runtimeFor(n.tab)

	if !rt.decided {
		active := info.style.IsRigid()
		if !active {
			w := measureFlat(n.children[0], r.infos, r.runtime)
			active = w < 0 || r.column+w > r.maxColumn
		}
		rt.decided = true
		rt.active = active
		rt.anchorColumn = r.column
		rt.anchorIndent = r.indent
	}

	if !rt.active {
		return r.renderNode(n.children[0])
	}

	if r.lastBreakValid && r.lastBreakTab == n.tab {
		// This tab already broke onto a new line one frame up with nothing emitted since: a
		// token nested directly inside its own At (as the comment weaver produces when it
		// re-wraps a token that already sits under At(tab, ...) to attach a trailing comment).
		// Breaking again here would duplicate the newline and indent for a single logical break.
		return r.renderNode(n.children[0])
	}

	if err := r.writeNewline(); err != nil {
		return err
	}
	target := rt.anchorColumn
	if info.style.IsIndented() {
		target = rt.anchorIndent + info.minIndent
	}
	savedIndent := r.indent
	r.indent = target
	if err := r.writeIndent(target); err != nil {
		return err
	}
	r.lastBreakTab = n.tab
	r.lastBreakValid = true
	if err := r.renderNode(n.children[0]); err != nil {
		return err
	}
	r.indent = savedIndent
	return nil
}

func (r *renderer) renderCond(n *node) error {
	rt, ok := r.runtime[n.tab]
	if ok && rt.decided && rt.active {
		return r.renderNode(n.children[1])
	}
	return r.renderNode(n.children[0])
}

// measureFlat predicts the width n would occupy if nothing inside it broke, returning -1 if it
// necessarily contains a break (an unconditional Newline, or a tab already decided active).
// Tabs not yet decided are optimistically assumed to stay inactive; At bodies under a rigid style
// are assumed to break since rigid tabs are always active once reached.
func measureFlat(n *node, infos map[Tab]tabInfo, runtime map[Tab]*tabRuntime) int {
	switch n.kind {
	case kSeq:
		total := 0
		for _, c := range n.children {
			w := measureFlat(c, infos, runtime)
			if w < 0 {
				return -1
			}
			total += w
		}
		return total
	case kText:
		return len([]rune(n.text))
	case kSpace:
		return 1
	case kNewline:
		return -1
	case kAt:
		if rt, ok := runtime[n.tab]; ok && rt.decided {
			if rt.active {
				return -1
			}
			return measureFlat(n.children[0], infos, runtime)
		}
		if infos[n.tab].style.IsRigid() {
			return -1
		}
		return measureFlat(n.children[0], infos, runtime)
	case kCond:
		if rt, ok := runtime[n.tab]; ok && rt.decided && rt.active {
			return measureFlat(n.children[1], infos, runtime)
		}
		return measureFlat(n.children[0], infos, runtime)
	default:
		panic("stringdoc: unhandled node kind")
	}
}
