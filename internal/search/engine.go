// Package search resolves logical queries against the workspace: a tag name
// or a note name in, concrete text locations out.
package search

import (
	"context"

	"github.com/tliron/commonlog"

	"tangent/internal/cache"
	"tangent/internal/note"
)

var log = commonlog.GetLogger("tangent.search")

// Location is one hit: a file identity and the range of the matched
// candidate within it.
type Location struct {
	Path  string
	Range note.Range
}

// Engine drives document loading through the cache, per-document matching,
// and aggregation into flat, enumeration-ordered result lists.
type Engine struct {
	cache   *cache.DocumentCache
	matcher note.Matcher
}

func NewEngine(c *cache.DocumentCache, matcher note.Matcher) *Engine {
	return &Engine{cache: c, matcher: matcher}
}

// DistinctTags returns the union of every document's distinct tags, sigil
// included, deduplicated in first-seen order.
func (e *Engine) DistinctTags(ctx context.Context) ([]string, error) {
	docs, err := e.cache.LoadAll(ctx, true)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, doc := range docs {
		for _, tag := range doc.DistinctTags() {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// Search returns every location whose candidate matches the query, ordered
// by workspace enumeration across files and candidate order within a file.
// Queries of unsupported kind yield an empty result, not an error.
func (e *Engine) Search(ctx context.Context, word note.ContextWord) ([]Location, error) {
	if word.Kind != note.KindTag && word.Kind != note.KindWikiLink {
		log.Debugf("unsupported query kind: %s", word.Kind.String())
		return nil, nil
	}

	docs, err := e.cache.LoadAll(ctx, true)
	if err != nil {
		return nil, err
	}

	var locations []Location
	for _, doc := range docs {
		for _, r := range doc.LocationsFor(word, e.matcher) {
			locations = append(locations, Location{Path: doc.Path, Range: r})
		}
	}
	return locations, nil
}

// SearchBacklinksFor finds every wiki-link that refers to the note with the
// given basename.
func (e *Engine) SearchBacklinksFor(ctx context.Context, basename string) ([]Location, error) {
	return e.Search(ctx, note.ContextWord{
		Kind: note.KindWikiLink,
		Word: basename,
	})
}

// UpdateCacheFor is the invalidation hook for an edited file. The refresh
// runs asynchronously; the returned channel reports its completion.
func (e *Engine) UpdateCacheFor(path string) <-chan error {
	return e.cache.Refresh(path)
}

// ClearCacheFor is the invalidation hook for a deleted file.
func (e *Engine) ClearCacheFor(path string) {
	e.cache.Evict(path)
}

// HydrateCache rebuilds the whole index from disk, e.g. at startup.
func (e *Engine) HydrateCache(ctx context.Context) ([]*note.Document, error) {
	return e.cache.HydrateAll(ctx)
}
