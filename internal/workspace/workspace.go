// Package workspace enumerates and reads the note files of one directory
// tree. It is the only part of the system that touches the file system.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Lister enumerates every note file in the workspace with a stable order.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// Reader reads the text of a single file.
type Reader interface {
	ReadFile(ctx context.Context, path string) (string, error)
}

// Workspace combines enumeration and reads.
type Workspace interface {
	Lister
	Reader
}

// DirWorkspace is a Workspace over a directory tree. Entries whose name
// starts with a dot are skipped entirely; files are filtered by extension.
type DirWorkspace struct {
	root       string
	extensions []string
}

func NewDirWorkspace(root string, extensions []string) *DirWorkspace {
	return &DirWorkspace{root: root, extensions: extensions}
}

func (w *DirWorkspace) Root() string {
	return w.root
}

// List walks the tree under root and returns all note files, sorted so the
// enumeration order is stable across calls.
func (w *DirWorkspace) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if hidden(d.Name()) && path != w.root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if w.IsNoteFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace %s: %w", w.root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

func (w *DirWorkspace) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// IsNoteFile reports whether path carries one of the configured note
// extensions.
func (w *DirWorkspace) IsNoteFile(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range w.extensions {
		if strings.EqualFold(ext, known) {
			return true
		}
	}
	return false
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
