package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangent/internal/workspace"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.md"), "two")
	writeFile(t, filepath.Join(root, "a.md"), "one")
	writeFile(t, filepath.Join(root, "notes", "c.txt"), "three")
	writeFile(t, filepath.Join(root, "skip.org"), "wrong extension")
	writeFile(t, filepath.Join(root, ".hidden", "d.md"), "hidden dir")
	writeFile(t, filepath.Join(root, ".dot.md"), "hidden file")

	ws := workspace.NewDirWorkspace(root, []string{".md", ".txt"})
	paths, err := ws.List(context.Background())
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b.md"),
		filepath.Join(root, "notes", "c.txt"),
	}
	assert.Equal(t, want, paths)
}

func TestListIsStable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.md"), "")
	writeFile(t, filepath.Join(root, "y.md"), "")

	ws := workspace.NewDirWorkspace(root, []string{".md"})
	first, err := ws.List(context.Background())
	require.NoError(t, err)
	second, err := ws.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReadFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	writeFile(t, path, "hello #world")

	ws := workspace.NewDirWorkspace(root, []string{".md"})
	content, err := ws.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello #world", content)
}

func TestReadFileMissing(t *testing.T) {
	ws := workspace.NewDirWorkspace(t.TempDir(), []string{".md"})
	_, err := ws.ReadFile(context.Background(), "does-not-exist.md")
	assert.Error(t, err)
}

func TestReadFileCanceledContext(t *testing.T) {
	ws := workspace.NewDirWorkspace(t.TempDir(), []string{".md"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ws.ReadFile(ctx, "a.md")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsNoteFile(t *testing.T) {
	ws := workspace.NewDirWorkspace(".", []string{".md"})

	assert.True(t, ws.IsNoteFile("a.md"))
	assert.True(t, ws.IsNoteFile("a.MD"))
	assert.False(t, ws.IsNoteFile("a.org"))
	assert.False(t, ws.IsNoteFile("md"))
}
