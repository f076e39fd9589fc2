package editing

import (
	"strings"
	"unicode/utf8"

	"feedstudio/internal/domain/services"
)

// contentAnalyzer implements the ContentAnalyzer interface
type contentAnalyzer struct{}

// NewContentAnalyzer creates a new content analyzer
func NewContentAnalyzer() services.ContentAnalyzer {
	return &contentAnalyzer{}
}

// WordCount counts whitespace-delimited tokens. Any run of whitespace is
// one separator, leading and trailing whitespace is ignored, and an empty
// body counts zero words. No linguistic tokenization.
func (a *contentAnalyzer) WordCount(text string) int {
	return len(strings.Fields(text))
}

// CharCount returns the length of the raw body including whitespace,
// counted in runes so multi-byte text is not over-counted.
func (a *contentAnalyzer) CharCount(text string) int {
	return utf8.RuneCountInString(text)
}
