// Package summary derives short plain-text summaries from article bodies.
package summary

import (
	"strings"

	"aacrawler/pkg/utils"
)

// DefaultMaxLength is the summary length used when none is configured.
const DefaultMaxLength = 150

// CreditMarker separates the agency credit line from the story text.
const CreditMarker = "(DHA)"

// creditCutset is trimmed from the text following CreditMarker.
const creditCutset = " \t\n\r\x00\x0B-"

// Summarizer turns article text into a bounded plain-text summary.
type Summarizer struct {
	strings   *utils.StringHelper
	maxLength int
}

// New creates a summarizer. A non-positive maxLength selects DefaultMaxLength.
func New(maxLength int) *Summarizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	return &Summarizer{
		strings:   utils.NewStringHelper(),
		maxLength: maxLength,
	}
}

// MaxLength returns the configured summary length in characters.
func (s *Summarizer) MaxLength() int {
	return s.maxLength
}

// CreateSummary drops everything up to the first credit marker, strips markup
// and shortens the rest.
func (s *Summarizer) CreateSummary(text string) string {
	if _, after, found := strings.Cut(text, CreditMarker); found {
		text = strings.Trim(after, creditCutset)
	}

	text = s.strings.StripTags(text)

	return s.strings.Shorten(text, s.maxLength)
}
