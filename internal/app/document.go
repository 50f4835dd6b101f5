package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/tessera/internal/editor"
	"github.com/dshills/tessera/internal/engine/scene"
)

// Document tracks the scene file being edited.
type Document struct {
	Path  string
	saved scene.State
}

// NewDocument returns a document for path, which may be empty.
func NewDocument(path string) *Document {
	return &Document{Path: path}
}

// Name returns the file name, or "untitled".
func (d *Document) Name() string {
	if d.Path == "" {
		return "untitled"
	}
	return filepath.Base(d.Path)
}

// Open loads the file into e with a fresh history. A missing file starts
// an empty scene that is created on first save.
func (d *Document) Open(ctx context.Context, e *editor.Editor) error {
	if d.Path == "" {
		d.saved = e.Scene()
		return nil
	}
	data, err := os.ReadFile(d.Path)
	if errors.Is(err, fs.ErrNotExist) {
		d.saved = e.Scene()
		e.SetStatus("new file " + d.Name())
		return nil
	}
	if err != nil {
		return &FileError{Op: "open", Path: d.Path, Err: err}
	}
	if err := e.Open(ctx, data); err != nil {
		return &FileError{Op: "open", Path: d.Path, Err: err}
	}
	d.saved = e.Scene()
	return nil
}

// Save writes the scene of e to the document path. The file is replaced
// atomically.
func (d *Document) Save(e *editor.Editor) error {
	if d.Path == "" {
		return ErrNoFilePath
	}
	data, err := e.Save()
	if err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := writeFile(d.Path, data); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	d.saved = e.Scene()
	return nil
}

// Modified reports whether the scene of e differs from the file.
func (d *Document) Modified(e *editor.Editor) bool {
	return !e.Scene().Equal(d.saved)
}

// writeFile writes through a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
