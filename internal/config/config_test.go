package config_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/brandonspark/tabdoc"
	"github.com/brandonspark/tabdoc/internal/config"
	"github.com/brandonspark/tabdoc/tab"
)

func TestParseFillsInDefaultWidths(t *testing.T) {
	scn, err := config.Parse([]byte(`doc: {text: "x"}`))
	require.NoError(t, err)
	assert.EqualValues(t, 1, scn.TabWidth)
	assert.EqualValues(t, 80, scn.MaxColumn)
}

func TestBuildConcatenatesTokensWithASpace(t *testing.T) {
	src := []byte(`
tabwidth: 1
maxcolumn: 80
doc:
  concat:
    - token: "foo"
    - token: "bar"
`)
	scn, err := config.Parse(src)
	require.NoError(t, err)

	r := tab.NewRegistry()
	doc := scn.Build(r)
	got, err := tabdoc.Render(tabdoc.Options{TabWidth: scn.TabWidth, MaxColumn: scn.MaxColumn}, r, doc)
	require.NoError(t, err)
	assert.EqualValues(t, "foo bar", got)
}

func TestBuildWiresNewTabAtAndCondByName(t *testing.T) {
	src := []byte(`
tabwidth: 1
maxcolumn: 10
doc:
  newtab:
    name: body
    style: indented
    body:
      concat:
        - token: "head"
        - at:
            tab: body
            body:
              token: "a-token-too-long-to-fit-on-one-line"
`)
	scn, err := config.Parse(src)
	require.NoError(t, err)

	r := tab.NewRegistry()
	doc := scn.Build(r)
	got, err := tabdoc.Render(tabdoc.Options{TabWidth: scn.TabWidth, MaxColumn: scn.MaxColumn}, r, doc)
	require.NoError(t, err)
	assert.True(t, got[:4] == "head")
}
