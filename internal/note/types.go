package note

// Position represents a zero-based position in a document
type Position struct {
	Line      uint32
	Character uint32
}

// Range represents a half-open range in a document
type Range struct {
	Start Position
	End   Position
}

// Kind classifies a reference candidate or a query
type Kind uint8

const (
	KindUnknown Kind = iota
	KindTag
	KindWikiLink
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindWikiLink:
		return "wikilink"
	default:
		return "unknown"
	}
}

// ReferenceCandidate is one textual occurrence of a potential tag or
// wiki-link. RawText keeps the exact matched substring including its sigil
// or brackets. Candidates are immutable values.
type ReferenceCandidate struct {
	RawText string
	Range   Range
	Kind    Kind
}

// NewReferenceCandidate builds a candidate from a single regex match on one
// line. The range spans [offset, offset+len(text)) on that line.
func NewReferenceCandidate(line uint32, offset int, text string, kind Kind) ReferenceCandidate {
	return ReferenceCandidate{
		RawText: text,
		Kind:    kind,
		Range: Range{
			Start: Position{Line: line, Character: uint32(offset)},
			End:   Position{Line: line, Character: uint32(offset + len(text))},
		},
	}
}

// Matches reports whether this candidate resolves the given query word.
// Tags compare exactly (sigil plus bare word, case-sensitive); wiki-links
// are compared by the injected note-name matcher.
func (c ReferenceCandidate) Matches(word ContextWord, matcher Matcher) bool {
	if c.Kind != word.Kind {
		return false
	}

	switch c.Kind {
	case KindTag:
		return c.RawText == "#"+word.Word
	case KindWikiLink:
		return matcher != nil && matcher.Equal(c.RawText, word.Word)
	default:
		return false
	}
}

// ContextWord is a caller-supplied logical query: either a bare tag name or
// a note name, possibly carrying a file extension. Range records where the
// word itself occurred and plays no part in matching.
type ContextWord struct {
	Kind         Kind
	Word         string
	HasExtension bool
	Range        *Range
}
