// Package config decodes the YAML scenario documents the demo CLI renders, each describing a
// document tree built from the doctree package's constructors. It exists so the CLI has something
// concrete to drive the core pipeline from without needing a real source-language parser, which is
// explicitly out of scope for the core.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/sampletoken"
	"github.com/brandonspark/tabdoc/tab"
)

// Scenario is a YAML-decoded description of a document to render: the pipeline options it wants,
// plus its body.
type Scenario struct {
	TabWidth  int  `yaml:"tabwidth"`
	MaxColumn int  `yaml:"maxcolumn"`
	Doc       Node `yaml:"doc"`
}

// Node is one node of the scenario's document tree. Exactly one of its fields should be set; which
// one determines what kind of doctree.Doc it builds.
type Node struct {
	Text   string   `yaml:"text,omitempty"`
	Token  string   `yaml:"token,omitempty"`
	Space  bool     `yaml:"space,omitempty"`
	Concat []Node   `yaml:"concat,omitempty"`
	NewTab *TabNode `yaml:"newtab,omitempty"`
	At     *AtNode  `yaml:"at,omitempty"`
	Cond   *CondNode `yaml:"cond,omitempty"`
}

// TabNode allocates a fresh tab under the named parent (empty means [tab.Root]) and binds it to
// Name so later At/Cond nodes in the scenario can refer to it.
type TabNode struct {
	Name      string `yaml:"name"`
	Parent    string `yaml:"parent,omitempty"`
	Style     string `yaml:"style"`
	MinIndent int    `yaml:"minindent,omitempty"`
	Body      Node   `yaml:"body"`
}

// AtNode lays Body out at the column the named tab resolves to.
type AtNode struct {
	Tab  string `yaml:"tab"`
	Body Node   `yaml:"body"`
}

// CondNode branches on whether the named tab becomes active.
type CondNode struct {
	Tab      string `yaml:"tab"`
	Inactive Node   `yaml:"inactive"`
	Active   Node   `yaml:"active"`
}

// Parse decodes a scenario document from src.
func Parse(src []byte) (*Scenario, error) {
	var scn Scenario
	if err := yaml.Unmarshal(src, &scn); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if scn.TabWidth <= 0 {
		scn.TabWidth = 1
	}
	if scn.MaxColumn <= 0 {
		scn.MaxColumn = 80
	}
	return &scn, nil
}

// Build lowers the scenario's document tree into a [doctree.Doc], allocating tabs from r.
func (s *Scenario) Build(r *tab.Registry) doctree.Doc {
	names := map[string]tab.Tab{}
	return s.Doc.build(r, names)
}

func (n Node) build(r *tab.Registry, names map[string]tab.Tab) doctree.Doc {
	switch {
	case n.Space:
		return doctree.Space
	case n.Text != "":
		return doctree.Text(n.Text)
	case n.Token != "":
		return doctree.Token(sampletoken.New(n.Token, 1, 1))
	case len(n.Concat) > 0:
		var out doctree.Doc = doctree.Empty
		for _, child := range n.Concat {
			out = doctree.Concat(out, child.build(r, names))
		}
		return out
	case n.NewTab != nil:
		return n.NewTab.build(r, names)
	case n.At != nil:
		return n.At.build(r, names)
	case n.Cond != nil:
		return n.Cond.build(r, names)
	default:
		return doctree.Empty
	}
}

func (t *TabNode) build(r *tab.Registry, names map[string]tab.Tab) doctree.Doc {
	parent := tab.Root
	if t.Parent != "" {
		parent = names[t.Parent]
	}
	style := parseStyle(t.Style)
	minIndent := t.MinIndent
	if minIndent <= 0 {
		minIndent = tab.DefaultMinIndent
	}
	allocated := r.NewWithIndent(parent, style, minIndent)
	names[t.Name] = allocated
	return doctree.NewTabDoc{Tab: allocated, Doc: t.Body.build(r, names)}
}

func (a *AtNode) build(r *tab.Registry, names map[string]tab.Tab) doctree.Doc {
	return doctree.At(names[a.Tab], a.Body.build(r, names))
}

func (c *CondNode) build(r *tab.Registry, names map[string]tab.Tab) doctree.Doc {
	return doctree.Cond(names[c.Tab], c.Inactive.build(r, names), c.Active.build(r, names))
}

func parseStyle(s string) tab.Style {
	switch s {
	case "indented":
		return tab.Indented
	case "rigidinplace":
		return tab.RigidInplace
	case "rigidindented":
		return tab.RigidIndented
	default:
		return tab.Inplace
	}
}
