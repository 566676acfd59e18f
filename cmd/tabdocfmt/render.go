package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/brandonspark/tabdoc"
	"github.com/brandonspark/tabdoc/highlight"
	"github.com/brandonspark/tabdoc/internal/fsfmt"
)

func newRenderCmd() *cobra.Command {
	var (
		write     bool
		maxColumn int
		tabWidth  int
		debug     bool
		color     bool
	)

	cmd := &cobra.Command{
		Use:   "render [path...]",
		Short: "render one or more YAML scenario documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := tabdoc.Options{
				TabWidth:  tabWidth,
				MaxColumn: maxColumn,
				Debug:     debug,
			}
			if opts.MaxColumn <= 0 {
				opts.MaxColumn = defaultMaxColumn()
			}
			if color || (term.IsTerminal(int(os.Stdout.Fd())) && !write) {
				opts.Highlighter = highlight.ANSI{}
			} else {
				opts.Highlighter = highlight.Plain{}
			}

			if len(args) == 0 {
				return fsfmt.Reader(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			}
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				if info.IsDir() {
					if err := fsfmt.Dir(path, opts); err != nil {
						return err
					}
					continue
				}
				if write {
					if err := fsfmt.File(path, opts); err != nil {
						return err
					}
					continue
				}
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				err = fsfmt.Reader(f, cmd.OutOrStdout(), opts)
				f.Close()
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result back to the source file instead of stdout")
	cmd.Flags().IntVar(&maxColumn, "max-column", 0, "column to wrap at (default: terminal width, or 80)")
	cmd.Flags().IntVar(&tabWidth, "tab-width", 1, "columns a literal source tab expands to")
	cmd.Flags().BoolVar(&debug, "debug", false, "trace pipeline stages to stderr")
	cmd.Flags().BoolVar(&color, "color", false, "force ANSI highlighting even when stdout is not a terminal")

	return cmd
}

func defaultMaxColumn() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
