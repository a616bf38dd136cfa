package note

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tangent.note")

// Patterns holds the two externally configured tokenization patterns. Each
// pattern produces zero or more disjoint matches on a single line.
type Patterns struct {
	Tag      *regexp.Regexp
	WikiLink *regexp.Regexp
}

// ContentReader reads the text of a file at a given identity. Implemented by
// the workspace layer; kept as an interface so documents stay testable with
// synthetic content sources.
type ContentReader interface {
	ReadFile(ctx context.Context, path string) (string, error)
}

// Document owns the raw text of one file and its tokenized reference
// candidates. A document moves through three states: unloaded (never read),
// loaded-unparsed, and loaded-parsed. Load and Tokenize drive the
// transitions; queries never tokenize implicitly.
type Document struct {
	Path string

	mu         sync.RWMutex
	content    string
	loaded     bool
	parsed     bool
	candidates []ReferenceCandidate
}

func NewDocument(path string) *Document {
	return &Document{Path: path}
}

// Load reads the document's content. With useCache set and content already
// present it returns immediately without I/O. On a read failure the previous
// content is kept but the parsed flag is dropped, so stale candidates are
// never served for a file whose reload failed.
func (d *Document) Load(ctx context.Context, reader ContentReader, useCache bool) error {
	d.mu.Lock()
	if useCache && d.loaded {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	// The read happens outside the lock so a slow file cannot block
	// queries against other documents.
	content, err := reader.ReadFile(ctx, d.Path)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.parsed = false
		return fmt.Errorf("failed to load %s: %w", d.Path, err)
	}

	d.content = content
	d.loaded = true
	d.parsed = false
	return nil
}

// Tokenize splits the content into lines and runs both patterns over each
// line, collecting a candidate per match. Within a line all tag matches come
// before all wiki-link matches; the two passes are not merged by offset.
// With useCache set, an already parsed document is left untouched.
func (d *Document) Tokenize(patterns Patterns, useCache bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		log.Debugf("tokenize skipped, document never loaded: %s", d.Path)
		return
	}
	if d.content == "" {
		d.candidates = nil
		return
	}
	if useCache && d.parsed {
		return
	}

	d.candidates = nil
	for i, line := range splitLines(d.content) {
		lineNum := uint32(i)
		if patterns.Tag != nil {
			for _, loc := range patterns.Tag.FindAllStringIndex(line, -1) {
				d.candidates = append(d.candidates,
					NewReferenceCandidate(lineNum, loc[0], line[loc[0]:loc[1]], KindTag))
			}
		}
		if patterns.WikiLink != nil {
			for _, loc := range patterns.WikiLink.FindAllStringIndex(line, -1) {
				d.candidates = append(d.candidates,
					NewReferenceCandidate(lineNum, loc[0], line[loc[0]:loc[1]], KindWikiLink))
			}
		}
	}

	d.parsed = true
}

// LocationsFor returns the range of every candidate matching the query, in
// candidate order. Unloaded or empty documents and queries of unsupported
// kind yield no locations. Tokenize must have run already; this method never
// tokenizes on its own.
func (d *Document) LocationsFor(word ContextWord, matcher Matcher) []Range {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if word.Kind != KindTag && word.Kind != KindWikiLink {
		return nil
	}
	if !d.loaded {
		log.Debugf("query against unloaded document: %s", d.Path)
		return nil
	}
	if d.content == "" {
		return nil
	}

	var ranges []Range
	for _, c := range d.candidates {
		if c.Matches(word, matcher) {
			ranges = append(ranges, c.Range)
		}
	}
	return ranges
}

// DistinctTags returns the unique raw tag texts of this document, sigil
// included, in first-seen order.
func (d *Document) DistinctTags() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]struct{})
	var tags []string
	for _, c := range d.candidates {
		if c.Kind != KindTag {
			continue
		}
		if _, ok := seen[c.RawText]; ok {
			continue
		}
		seen[c.RawText] = struct{}{}
		tags = append(tags, c.RawText)
	}
	return tags
}

// Candidates returns a copy of the current candidate list.
func (d *Document) Candidates() []ReferenceCandidate {
	d.mu.RLock()
	defer d.mu.RUnlock()

	candidates := make([]ReferenceCandidate, len(d.candidates))
	copy(candidates, d.candidates)
	return candidates
}

// Loaded reports whether the document has ever been read. An empty file is
// loaded; a never-read one is not.
func (d *Document) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Parsed reports whether the candidate list reflects the current content.
func (d *Document) Parsed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.parsed
}

// splitLines splits on bare \n and \r\n alike.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
