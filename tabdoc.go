// Package tabdoc is a tabbed pretty-printing core: a document algebra anchored on dynamic
// indentation tabs, and a seven-stage pipeline that turns a document built from it into a
// renderable [stringdoc.Doc].
//
// Callers build a [doctree.Doc] using the doctree package's constructors and the tab package's
// registry, then call [ToStringDoc] to run it through the pipeline. The result can be rendered
// with [stringdoc.Doc.Render].
package tabdoc

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/brandonspark/tabdoc/doctree"
	"github.com/brandonspark/tabdoc/highlight"
	"github.com/brandonspark/tabdoc/internal/annotate"
	"github.com/brandonspark/tabdoc/internal/blank"
	"github.com/brandonspark/tabdoc/internal/flow"
	"github.com/brandonspark/tabdoc/internal/lower"
	"github.com/brandonspark/tabdoc/internal/space"
	"github.com/brandonspark/tabdoc/internal/weave"
	"github.com/brandonspark/tabdoc/stringdoc"
	"github.com/brandonspark/tabdoc/tab"
)

// Doc is the document algebra's top type; it is an alias so callers can build documents with the
// doctree package's constructors without importing that package by a second name.
type Doc = doctree.Doc

// Options configures a single run of [ToStringDoc].
type Options struct {
	// TabWidth is the column width a literal tab character in source text expands to when
	// stripping indentation from multi-line tokens. Must be at least 1.
	TabWidth int
	// MaxColumn is the width the lowered document wraps at.
	MaxColumn int
	// Debug enables tracing of each pipeline stage to os.Stderr via log/slog. It must never
	// affect the rendered output, only what is logged alongside it.
	Debug bool
	// Highlighter highlights token source text during lowering. Defaults to [highlight.Plain].
	Highlighter highlight.Highlighter
}

// ToStringDoc runs doc through the full pipeline — annotate, flow-analyze, weave comments,
// flow-analyze again, ensure spaces, insert blank lines, lower — using r to resolve the tabs
// referenced within doc.
//
// It panics with an *[InvariantError] if doc violates one of the document algebra's structural
// invariants: a NewTab whose tab r didn't allocate panics out of r.Parent/StyleOf/MinIndent
// directly; an At or Cond whose tab no enclosing NewTab in doc introduced, or a NewTab whose
// parent none did, panics out of internal/lower, which resolves those tabs through its own
// lowered-tab map rather than through r.
func ToStringDoc(opts Options, r *tab.Registry, doc Doc) *stringdoc.Doc {
	if opts.TabWidth < 1 {
		panic(newInvariantError("TabWidth", "must be at least 1, got %d", opts.TabWidth))
	}

	logger := newLogger(opts.Debug)

	logger.Debug("pipeline stage", "stage", "annotate")
	d := annotate.Run(doc)

	logger.Debug("pipeline stage", "stage", "flow-analyze")
	d = flow.Run(d)

	logger.Debug("pipeline stage", "stage", "weave-comments")
	d = weave.Run(d)

	logger.Debug("pipeline stage", "stage", "flow-analyze-again")
	d = flow.Run(d)

	logger.Debug("pipeline stage", "stage", "ensure-spaces")
	d = space.Run(d)

	logger.Debug("pipeline stage", "stage", "insert-blank-lines")
	d = blank.Run(d)

	logger.Debug("pipeline stage", "stage", "lower")
	out := lower.Run(d, r, lower.Options{
		TabWidth:    opts.TabWidth,
		Highlighter: opts.Highlighter,
		MaxColumn:   opts.MaxColumn,
	})

	return out
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// Render runs doc through [ToStringDoc] and renders it to a string in one step, for callers that
// don't need to inspect the intermediate [stringdoc.Doc].
func Render(opts Options, r *tab.Registry, doc Doc) (string, error) {
	sd := ToStringDoc(opts, r, doc)
	var sb strings.Builder
	if err := sd.Render(&sb); err != nil {
		return "", fmt.Errorf("tabdoc: render: %w", err)
	}
	return sb.String(), nil
}
