package config

import (
	"fmt"
	"regexp"

	"tangent/internal/note"
)

// Config carries the workspace settings and the two tokenization pattern
// slots. Patterns are configuration, not code: swapping them swaps what
// counts as a tag or a wiki-link.
type Config struct {
	Root            string   `json:"root" mapstructure:"root"`
	FileExtensions  []string `json:"file_extensions" mapstructure:"file_extensions"`
	TagPattern      string   `json:"tag_pattern" mapstructure:"tag_pattern"`
	WikiLinkPattern string   `json:"wikilink_pattern" mapstructure:"wikilink_pattern"`
	LogFile         string   `json:"log_file" mapstructure:"log_file"`
	Verbosity       int      `json:"verbosity" mapstructure:"verbosity"`
}

func DefaultConfig() *Config {
	return &Config{
		Root:            ".",
		FileExtensions:  []string{".md", ".txt"},
		TagPattern:      `#[\p{L}\p{N}/_-]+`,
		WikiLinkPattern: `\[\[([^\]\[|#]+)(?:\|[^\]]*)?\]\]`,
		Verbosity:       1,
	}
}

// CompilePatterns compiles the configured pattern slots. Invalid patterns
// are a configuration error, surfaced at load time rather than first use.
func (c *Config) CompilePatterns() (note.Patterns, error) {
	tag, err := regexp.Compile(c.TagPattern)
	if err != nil {
		return note.Patterns{}, fmt.Errorf("invalid tag pattern %q: %w", c.TagPattern, err)
	}
	wikiLink, err := regexp.Compile(c.WikiLinkPattern)
	if err != nil {
		return note.Patterns{}, fmt.Errorf("invalid wikilink pattern %q: %w", c.WikiLinkPattern, err)
	}
	return note.Patterns{Tag: tag, WikiLink: wikiLink}, nil
}
