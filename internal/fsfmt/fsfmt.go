// Package fsfmt provides file and directory formatting for scenario documents, writing results
// back atomically.
package fsfmt

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio"

	"github.com/brandonspark/tabdoc"
	"github.com/brandonspark/tabdoc/internal/config"
	"github.com/brandonspark/tabdoc/tab"
)

// Reader renders the scenario read from r and writes the result to w.
func Reader(r io.Reader, w io.Writer, opts tabdoc.Options) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading input: %v", err)
	}
	scn, err := config.Parse(src)
	if err != nil {
		return fmt.Errorf("error parsing scenario: %v", err)
	}
	reg := tab.NewRegistry()
	doc := scn.Build(reg)
	out, err := tabdoc.Render(opts, reg, doc)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Dir formats every scenario file (.yaml, .yml) in a directory tree in place.
func Dir(root string, opts tabdoc.Options) error {
	var errs []error
	if err := fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, fsErr error) error {
		if fsErr != nil {
			return fsErr
		}
		if d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(d.Name()); ext != ".yaml" && ext != ".yml" {
			return nil
		}

		file := filepath.Join(root, path)
		if err := File(file, opts); err != nil {
			errs = append(errs, err)
		}
		return nil
	}); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// File formats a single scenario file in place, replacing it atomically.
func File(path string, opts tabdoc.Options) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file: %v", err)
	}
	scn, err := config.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	reg := tab.NewRegistry()
	doc := scn.Build(reg)
	out, err := tabdoc.Render(opts, reg, doc)
	if err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}

	t, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("failed to create temp file for atomic rename: %v", err)
	}
	defer t.Cleanup()

	if _, err := io.WriteString(t, out); err != nil {
		return fmt.Errorf("failed to write temp file: %v", err)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace file: %v", err)
	}
	return nil
}
