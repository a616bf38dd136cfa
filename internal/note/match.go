package note

import (
	"path"
	"strings"
)

// Matcher decides whether a raw wiki-link text refers to a given note name.
// Implementations must be deterministic and side-effect free.
type Matcher interface {
	Equal(rawLink string, noteName string) bool
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(rawLink string, noteName string) bool

func (f MatcherFunc) Equal(rawLink string, noteName string) bool {
	return f(rawLink, noteName)
}

// NoteNameMatcher is the default fuzzy note-name predicate. It strips the
// wiki-link wrapping and display text, drops any of the configured file
// extensions, and compares basenames, so `[[Notes/Idea]]`, `[[Idea]]` and
// `[[Idea.md]]` all refer to the note name "Idea".
type NoteNameMatcher struct {
	Extensions []string
}

func NewNoteNameMatcher(extensions []string) *NoteNameMatcher {
	return &NoteNameMatcher{Extensions: extensions}
}

func (m *NoteNameMatcher) Equal(rawLink string, noteName string) bool {
	link := m.normalize(rawLink)
	name := m.normalize(noteName)
	if link == "" || name == "" {
		return false
	}
	return strings.EqualFold(path.Base(link), path.Base(name))
}

// normalize reduces a raw wiki-link or bare note name to a comparable name.
func (m *NoteNameMatcher) normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[[")
	s = strings.TrimSuffix(s, "]]")

	// Drop display text, keep the target.
	if i := strings.IndexByte(s, '|'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)

	ext := path.Ext(s)
	for _, known := range m.Extensions {
		if strings.EqualFold(ext, known) {
			s = strings.TrimSuffix(s, ext)
			break
		}
	}

	return s
}
