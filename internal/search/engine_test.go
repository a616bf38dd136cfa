package search_test

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangent/internal/cache"
	"tangent/internal/note"
	"tangent/internal/search"
)

type fakeWorkspace struct {
	mu    sync.Mutex
	files map[string]string
}

func newFakeWorkspace(files map[string]string) *fakeWorkspace {
	return &fakeWorkspace{files: files}
}

func (w *fakeWorkspace) List(_ context.Context) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

func (w *fakeWorkspace) ReadFile(_ context.Context, path string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	content, ok := w.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return content, nil
}

func (w *fakeWorkspace) set(path, content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = content
}

func (w *fakeWorkspace) remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func newEngine(ws *fakeWorkspace) *search.Engine {
	patterns := note.Patterns{
		Tag:      regexp.MustCompile(`#[\p{L}\p{N}/_-]+`),
		WikiLink: regexp.MustCompile(`\[\[([^\]\[|#]+)(?:\|[^\]]*)?\]\]`),
	}
	matcher := note.NewNoteNameMatcher([]string{".md"})
	return search.NewEngine(cache.NewDocumentCache(ws, patterns), matcher)
}

func TestDistinctTagsAcrossDocuments(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{
		"one.md": "#a #a #b",
		"two.md": "#b #c",
	})
	engine := newEngine(ws)

	tags, err := engine.DistinctTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"#a", "#b", "#c"}, tags)
}

func TestSearchWikiLink(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{
		"note.md": "Hello #project\nSee [[Notes/Idea]] and [[Idea]]",
	})
	engine := newEngine(ws)

	hits, err := engine.Search(context.Background(), note.ContextWord{
		Kind: note.KindWikiLink,
		Word: "Idea",
	})
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// Both the path-qualified and the bare link resolve to "Idea".
	assert.Equal(t, "note.md", hits[0].Path)
	assert.Equal(t, note.Position{Line: 1, Character: 4}, hits[0].Range.Start)
	assert.Equal(t, note.Position{Line: 1, Character: 23}, hits[1].Range.Start)
}

func TestSearchTagOrdering(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{
		"b.md": "#todo\nx #todo",
		"a.md": "#todo",
	})
	engine := newEngine(ws)

	hits, err := engine.Search(context.Background(), note.ContextWord{
		Kind: note.KindTag,
		Word: "todo",
	})
	require.NoError(t, err)
	require.Len(t, hits, 3)

	// Enumeration order across files, candidate order within a file.
	assert.Equal(t, "a.md", hits[0].Path)
	assert.Equal(t, "b.md", hits[1].Path)
	assert.Equal(t, "b.md", hits[2].Path)
	assert.Less(t, hits[1].Range.Start.Line, hits[2].Range.Start.Line)
}

func TestSearchUnsupportedKind(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{"a.md": "#x"})
	engine := newEngine(ws)

	hits, err := engine.Search(context.Background(), note.ContextWord{
		Kind: note.KindUnknown,
		Word: "x",
	})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchTagExactness(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{
		"a.md": "#project #projects #Project",
	})
	engine := newEngine(ws)

	hits, err := engine.Search(context.Background(), note.ContextWord{
		Kind: note.KindTag,
		Word: "project",
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, note.Position{Line: 0, Character: 0}, hits[0].Range.Start)
}

func TestSearchBacklinksFor(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{
		"a.md": "see [[Target]]",
		"b.md": "also [[Notes/Target.md]]",
		"c.md": "unrelated [[Other]]",
	})
	engine := newEngine(ws)

	hits, err := engine.SearchBacklinksFor(context.Background(), "Target")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a.md", hits[0].Path)
	assert.Equal(t, "b.md", hits[1].Path)
}

func TestClearCacheForDeletedFile(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{
		"gone.md": "#keep",
		"stay.md": "#keep",
	})
	engine := newEngine(ws)

	word := note.ContextWord{Kind: note.KindTag, Word: "keep"}

	hits, err := engine.Search(context.Background(), word)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// File deleted on disk, editor reports it.
	ws.remove("gone.md")
	engine.ClearCacheFor("gone.md")

	hits, err = engine.Search(context.Background(), word)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "stay.md", hits[0].Path)

	// Restored file becomes visible again after the update hook.
	ws.set("gone.md", "#keep")
	require.NoError(t, <-engine.UpdateCacheFor("gone.md"))

	hits, err = engine.Search(context.Background(), word)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestHydrateCachePicksUpEdits(t *testing.T) {
	ws := newFakeWorkspace(map[string]string{"a.md": "#before"})
	engine := newEngine(ws)

	tags, err := engine.DistinctTags(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"#before"}, tags)

	ws.set("a.md", "#after")

	// Cached loads keep serving the old content until a full rebuild.
	tags, err = engine.DistinctTags(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"#before"}, tags)

	_, err = engine.HydrateCache(context.Background())
	require.NoError(t, err)

	tags, err = engine.DistinctTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"#after"}, tags)
}
