// Package cache holds the process-wide table of parsed documents keyed by
// file path. Entries are created lazily, reused until invalidated, and live
// for the life of the process unless evicted.
package cache

import (
	"context"
	"sync"

	"github.com/tliron/commonlog"

	"tangent/internal/note"
	"tangent/internal/workspace"
)

var log = commonlog.GetLogger("tangent.cache")

// DocumentCache maps file paths to their parsed documents. The table is the
// only shared mutable resource; all accessors are safe under concurrent use
// and the last writer wins on an entry.
type DocumentCache struct {
	ws       workspace.Workspace
	patterns note.Patterns

	mu   sync.RWMutex
	docs map[string]*note.Document
}

func NewDocumentCache(ws workspace.Workspace, patterns note.Patterns) *DocumentCache {
	return &DocumentCache{
		ws:       ws,
		patterns: patterns,
		docs:     make(map[string]*note.Document),
	}
}

// Get returns the entry for path, creating and registering an empty unread
// document on first lookup. It never fails.
func (c *DocumentCache) Get(path string) *note.Document {
	c.mu.RLock()
	doc, exists := c.docs[path]
	c.mu.RUnlock()
	if exists {
		return doc
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if doc, exists := c.docs[path]; exists {
		return doc
	}
	doc = note.NewDocument(path)
	c.docs[path] = doc
	return doc
}

// LoadAll maps every workspace file to its cache entry, loads them
// concurrently and tokenizes each in enumeration order. A file whose read
// fails is logged and left out of the result; its entry keeps no parsed
// candidates, so later queries cannot see stale data. The returned slice
// follows the workspace enumeration order.
func (c *DocumentCache) LoadAll(ctx context.Context, useCache bool) ([]*note.Document, error) {
	paths, err := c.ws.List(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*note.Document, len(paths))
	loadErrs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		docs[i] = c.Get(path)

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loadErrs[i] = docs[i].Load(ctx, c.ws, useCache)
		}(i)
	}
	wg.Wait()

	result := make([]*note.Document, 0, len(docs))
	for i, doc := range docs {
		if loadErrs[i] != nil {
			log.Errorf("skipping unreadable note: %s", loadErrs[i].Error())
			continue
		}
		doc.Tokenize(c.patterns, useCache)
		result = append(result, doc)
	}

	return result, nil
}

// Refresh force-reloads and force-retokenizes a single path, replacing its
// table entry. It runs asynchronously; callers that need completion await
// the returned channel.
func (c *DocumentCache) Refresh(path string) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)

		doc := note.NewDocument(path)
		c.mu.Lock()
		c.docs[path] = doc
		c.mu.Unlock()

		if err := doc.Load(context.Background(), c.ws, false); err != nil {
			log.Errorf("refresh failed: %s", err.Error())
			done <- err
			return
		}
		doc.Tokenize(c.patterns, false)
		done <- nil
	}()

	return done
}

// Evict unconditionally removes the entry for path.
func (c *DocumentCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, path)
}

// HydrateAll rebuilds the whole cache from disk, bypassing every cached
// content and candidate list.
func (c *DocumentCache) HydrateAll(ctx context.Context) ([]*note.Document, error) {
	return c.LoadAll(ctx, false)
}

// Len returns the number of cached entries.
func (c *DocumentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}
