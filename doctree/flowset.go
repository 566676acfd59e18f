package doctree

import "github.com/brandonspark/tabdoc/tab"

// FlowSet is the ordered set of tabs whose activation causally determines the position of a token
// or text piece. A nil FlowSet means "unattributed" (what the spec calls None); a non-nil, possibly
// empty FlowSet means "attributed to these tabs" (Some(S)). Tabs are kept sorted by id so
// [FlowSet.First] and equality comparisons are deterministic.
type FlowSet struct {
	tabs []tab.Tab
}

// UnsetFlow is the zero FlowSet, representing "not yet determined".
var UnsetFlow FlowSet

// SomeFlow builds a FlowSet out of the given tabs, deduplicating and sorting by id.
func SomeFlow(tabs ...tab.Tab) FlowSet {
	var out []tab.Tab
	for _, t := range tabs {
		if !containsTab(out, t) {
			out = append(out, t)
		}
	}
	sortTabs(out)
	if out == nil {
		out = []tab.Tab{}
	}
	return FlowSet{tabs: out}
}

// IsSet reports whether fs is attributed to some (possibly empty) set of tabs, as opposed to being
// unset.
func (fs FlowSet) IsSet() bool {
	return fs.tabs != nil
}

// Tabs returns the tabs in fs, in increasing id order. The returned slice must not be mutated.
func (fs FlowSet) Tabs() []tab.Tab {
	return fs.tabs
}

// Contains reports whether t is a member of fs.
func (fs FlowSet) Contains(t tab.Tab) bool {
	for _, x := range fs.tabs {
		if x == t {
			return true
		}
	}
	return false
}

// First returns the lowest-id tab in fs, the deterministic representative used by the comment
// weaver and blank-line inserter when a token's flow set contains more than one tab (see §9 of the
// design notes: this is a documented simplification, not a bug).
func (fs FlowSet) First() (tab.Tab, bool) {
	if len(fs.tabs) == 0 {
		return tab.Tab{}, false
	}
	return fs.tabs[0], true
}

// Union merges fs and other, treating an unset operand as the identity element. The result is set
// iff at least one operand is set.
func (fs FlowSet) Union(other FlowSet) FlowSet {
	if !fs.IsSet() {
		return other
	}
	if !other.IsSet() {
		return fs
	}
	merged := make([]tab.Tab, 0, len(fs.tabs)+len(other.tabs))
	merged = append(merged, fs.tabs...)
	for _, t := range other.tabs {
		if !containsTab(merged, t) {
			merged = append(merged, t)
		}
	}
	sortTabs(merged)
	return FlowSet{tabs: merged}
}

// Intersect returns the tabs present in both fs and other. An unset operand makes the result
// unset; two set operands with no tab in common give a set, empty result.
func (fs FlowSet) Intersect(other FlowSet) FlowSet {
	if !fs.IsSet() || !other.IsSet() {
		return UnsetFlow
	}
	out := []tab.Tab{}
	for _, t := range fs.tabs {
		if containsTab(other.tabs, t) {
			out = append(out, t)
		}
	}
	return FlowSet{tabs: out}
}

func containsTab(tabs []tab.Tab, t tab.Tab) bool {
	for _, x := range tabs {
		if x == t {
			return true
		}
	}
	return false
}

func sortTabs(tabs []tab.Tab) {
	for i := 1; i < len(tabs); i++ {
		for j := i; j > 0 && tabs[j].Less(tabs[j-1]); j-- {
			tabs[j], tabs[j-1] = tabs[j-1], tabs[j]
		}
	}
}
