// Package tab implements the tab registry: the allocator for dynamic indentation anchors used
// throughout the tabbed pretty-printer pipeline.
//
// A [Tab] is an identity, not a value: two tabs are the same tab only if they were returned by the
// same allocation. Tabs are compared by the monotonically increasing id assigned at allocation
// time, which makes [Tab] safe to use as a map key and to sort deterministically (see
// [Tab.Less]), a property the flow analyzer and comment weaver rely on when picking "the first tab
// by id" out of a set.
package tab

import (
	"sync"
	"sync/atomic"

	"github.com/brandonspark/tabdoc/internal/invariant"
)

// Style describes how a [Tab] lays out the content anchored to it.
//
//   - Inplace: the tab's column is wherever it first appears; later breaks realign to that column.
//   - Indented: the tab's column is its parent's column plus a fixed indent, regardless of where
//     it first appears.
//   - RigidInplace, RigidIndented: like the above, but the tab always breaks onto a new line, even
//     on its first occurrence.
type Style int

const (
	Inplace Style = iota
	Indented
	RigidInplace
	RigidIndented
)

func (s Style) String() string {
	switch s {
	case Inplace:
		return "Inplace"
	case Indented:
		return "Indented"
	case RigidInplace:
		return "RigidInplace"
	case RigidIndented:
		return "RigidIndented"
	default:
		return "Style(?)"
	}
}

// IsRigid reports whether the style forces a line break on every occurrence, including the first.
func (s Style) IsRigid() bool {
	return s == RigidInplace || s == RigidIndented
}

// IsIndented reports whether the style's column is a fixed offset from its parent's column rather
// than wherever the tab first appears.
func (s Style) IsIndented() bool {
	return s == Indented || s == RigidIndented
}

// DefaultMinIndent is the indent width used by [Indented] and [RigidIndented] tabs when no
// explicit minimum indent is given at allocation time.
const DefaultMinIndent = 1

// Tab is either the sentinel Root or an allocated indentation anchor with a parent and a [Style].
// The zero value is Root.
type Tab struct {
	id int64
}

// Root is the sentinel tab that every tab tree is rooted at. It compares equal only to itself and
// orders below every allocated tab.
var Root = Tab{id: 0}

// IsRoot reports whether t is the Root sentinel.
func (t Tab) IsRoot() bool {
	return t.id == 0
}

// Less reports whether t was allocated before o, i.e. has a strictly smaller id. Root is less than
// every allocated tab.
func (t Tab) Less(o Tab) bool {
	return t.id < o.id
}

func (t Tab) String() string {
	if t.IsRoot() {
		return "Root"
	}
	return "Tab#" + itoa(t.id)
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type info struct {
	parent    Tab
	style     Style
	minIndent int
}

// Registry allocates tabs with strictly increasing ids. The zero value is not usable; construct
// one with [NewRegistry]. A Registry is safe for concurrent use by multiple goroutines, but the
// pipeline itself is single-threaded (see the core's concurrency model) — the safety is there so a
// driver that builds several documents concurrently, each against its own Registry, never needs to
// coordinate.
//
// A single process-wide default Registry backs the package-level [New] and related functions for
// simple sequential use; construct an explicit Registry with [NewRegistry] for reentrant use, e.g.
// running two independent pretty-print pipelines concurrently without their tab ids colliding in
// ways that would matter if they were ever compared (they never are, since flow sets only compare
// tabs allocated by the same Registry) but keeping a counter per engine is cheap and avoids
// surprise at debugging time.
type Registry struct {
	nextID int64
	infos  sync.Map // int64 -> info
}

// NewRegistry creates an empty tab registry. The first tab it allocates has id 1; id 0 is
// reserved for Root.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// New allocates a fresh tab with the given parent and style, using [DefaultMinIndent] for
// Indented and RigidIndented styles.
func (r *Registry) New(parent Tab, style Style) Tab {
	return r.NewWithIndent(parent, style, DefaultMinIndent)
}

// NewWithIndent allocates a fresh tab like [Registry.New] but with an explicit minimum indent for
// Indented and RigidIndented styles. minIndent is ignored for Inplace and RigidInplace.
func (r *Registry) NewWithIndent(parent Tab, style Style, minIndent int) Tab {
	id := atomic.AddInt64(&r.nextID, 1) - 1
	r.infos.Store(id, info{parent: parent, style: style, minIndent: minIndent})
	return Tab{id: id}
}

func (r *Registry) lookup(t Tab) info {
	if t.IsRoot() {
		return info{parent: Root, style: Inplace, minIndent: 0}
	}
	v, ok := r.infos.Load(t.id)
	if !ok {
		panic(invariant.New("registry", "%v was not allocated by this Registry", t))
	}
	return v.(info)
}

// Parent returns the tab t was allocated under.
func (r *Registry) Parent(t Tab) Tab { return r.lookup(t).parent }

// StyleOf returns the style t was allocated with.
func (r *Registry) StyleOf(t Tab) Style { return r.lookup(t).style }

// MinIndent returns the minimum indent t was allocated with, meaningful only when
// [Registry.StyleOf] reports an indented style.
func (r *Registry) MinIndent(t Tab) int { return r.lookup(t).minIndent }

var defaultRegistry = NewRegistry()

// New allocates a fresh tab from the process-wide default registry. See [Registry.New].
func New(parent Tab, style Style) Tab { return defaultRegistry.New(parent, style) }

// NewWithIndent allocates a fresh tab from the process-wide default registry. See
// [Registry.NewWithIndent].
func NewWithIndent(parent Tab, style Style, minIndent int) Tab {
	return defaultRegistry.NewWithIndent(parent, style, minIndent)
}

// Parent returns the parent of t as recorded by the process-wide default registry.
func Parent(t Tab) Tab { return defaultRegistry.Parent(t) }

// StyleOf returns the style of t as recorded by the process-wide default registry.
func StyleOf(t Tab) Style { return defaultRegistry.StyleOf(t) }

// MinIndent returns the minimum indent of t as recorded by the process-wide default registry.
func MinIndent(t Tab) int { return defaultRegistry.MinIndent(t) }
