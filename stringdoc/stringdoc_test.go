package stringdoc_test

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/brandonspark/tabdoc/stringdoc"
)

func render(t *testing.T, d *stringdoc.Doc) string {
	t.Helper()
	var sb strings.Builder
	err := d.Render(&sb)
	require.NoError(t, err)
	return sb.String()
}

func TestRenderKeepsShortContentInplace(t *testing.T) {
	d := stringdoc.NewDoc(80)
	d.NewTab(stringdoc.Root, stringdoc.Inplace, func(d *stringdoc.Doc, tab stringdoc.Tab) {
		d.Text("foo").At(tab, func(d *stringdoc.Doc) {
			d.Text("(").Text("bar").Text(")")
		})
	})

	got := render(t, d)
	assert.EqualValues(t, "foo(bar)", got)
}

func TestRenderBreaksWhenContentExceedsMaxColumn(t *testing.T) {
	d := stringdoc.NewDoc(5)
	d.NewTab(stringdoc.Root, stringdoc.Indented, func(d *stringdoc.Doc, tab stringdoc.Tab) {
		d.Text("head").At(tab, func(d *stringdoc.Doc) {
			d.Text("a very long tail that cannot fit")
		})
	})

	got := render(t, d)
	assert.True(t, strings.Contains(got, "\n"))
	assert.True(t, strings.HasPrefix(got, "head\n"))
}

func TestRenderRigidStyleAlwaysBreaks(t *testing.T) {
	d := stringdoc.NewDoc(80)
	d.NewTab(stringdoc.Root, stringdoc.RigidIndented, func(d *stringdoc.Doc, tab stringdoc.Tab) {
		d.Text("x").At(tab, func(d *stringdoc.Doc) {
			d.Text("y")
		})
	})

	got := render(t, d)
	assert.EqualValues(t, "x\n y", got)
}

func TestRenderNestedAtForSameTabDoesNotDuplicateTheBreak(t *testing.T) {
	// A token directly nested inside its own At (the shape the comment weaver used to produce
	// when it re-wrapped an already-anchored token) must not break twice: the inner At reuses the
	// break the outer At already made, rather than writing a second newline and indent.
	d := stringdoc.NewDoc(80)
	d.NewTab(stringdoc.Root, stringdoc.RigidIndented, func(d *stringdoc.Doc, tab stringdoc.Tab) {
		d.At(tab, func(d *stringdoc.Doc) {
			d.At(tab, func(d *stringdoc.Doc) {
				d.Text("x")
			})
		})
	})

	got := render(t, d)
	assert.EqualValues(t, 1, strings.Count(got, "\n"))
	assert.True(t, strings.HasSuffix(got, "x"))
}

func TestRenderSecondAtOccurrenceReusesFirstDecision(t *testing.T) {
	d := stringdoc.NewDoc(80)
	d.NewTab(stringdoc.Root, stringdoc.RigidInplace, func(d *stringdoc.Doc, tab stringdoc.Tab) {
		d.Text("a").
			At(tab, func(d *stringdoc.Doc) { d.Text("one") }).
			At(tab, func(d *stringdoc.Doc) { d.Text("two") })
	})

	got := render(t, d)
	// Both At occurrences break since the tab is rigid; the second reuses the already-decided
	// activation rather than re-measuring.
	assert.EqualValues(t, 2, strings.Count(got, "\n"))
}

func TestRenderCondSelectsActiveBranchOnlyWhenTabBroke(t *testing.T) {
	d := stringdoc.NewDoc(80)
	d.NewTab(stringdoc.Root, stringdoc.RigidIndented, func(d *stringdoc.Doc, tab stringdoc.Tab) {
		d.At(tab, func(d *stringdoc.Doc) { d.Text("body") }).
			Cond(tab, func(d *stringdoc.Doc) {}, func(d *stringdoc.Doc) { d.Text(",") })
	})

	got := render(t, d)
	assert.True(t, strings.HasSuffix(got, ","))
}

func TestRenderCondDefaultsToInactiveWhenTabUnseen(t *testing.T) {
	d := stringdoc.NewDoc(80)
	d.NewTab(stringdoc.Root, stringdoc.Inplace, func(d *stringdoc.Doc, tab stringdoc.Tab) {
		d.Cond(tab, func(d *stringdoc.Doc) { d.Text("inactive") }, func(d *stringdoc.Doc) { d.Text("active") })
	})

	got := render(t, d)
	assert.EqualValues(t, "inactive", got)
}
