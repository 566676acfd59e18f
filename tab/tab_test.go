package tab_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/brandonspark/tabdoc/tab"
)

func TestRegistryNewAssignsIncreasingIDs(t *testing.T) {
	r := tab.NewRegistry()

	a := r.New(tab.Root, tab.Inplace)
	b := r.New(tab.Root, tab.Indented)
	c := r.New(a, tab.RigidInplace)

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, tab.Root.Less(a))
	assert.True(t, !a.Less(tab.Root))
}

func TestRegistryParentAndStyle(t *testing.T) {
	r := tab.NewRegistry()

	parent := r.New(tab.Root, tab.Indented)
	child := r.NewWithIndent(parent, tab.RigidIndented, 4)

	assert.EqualValues(t, r.Parent(child), parent)
	assert.EqualValues(t, r.StyleOf(child), tab.RigidIndented)
	assert.EqualValues(t, r.MinIndent(child), 4)
	assert.True(t, tab.RigidIndented.IsRigid())
	assert.True(t, tab.RigidIndented.IsIndented())
	assert.True(t, !tab.Inplace.IsRigid())
}

func TestRegistryLookupOfUnknownTabPanics(t *testing.T) {
	r1 := tab.NewRegistry()
	r2 := tab.NewRegistry()
	foreign := r1.New(tab.Root, tab.Inplace)

	defer func() {
		require.Truef(t, recover() != nil, "expected StyleOf of a foreign tab to panic")
	}()
	r2.StyleOf(foreign)
}

func TestRootIsDistinguishedFromAllocatedTabs(t *testing.T) {
	r := tab.NewRegistry()
	t1 := r.New(tab.Root, tab.Inplace)

	assert.True(t, tab.Root.IsRoot())
	assert.True(t, !t1.IsRoot())
	assert.EqualValues(t, r.Parent(t1), tab.Root)
}
