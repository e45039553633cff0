package normalizer

import (
	"golang.org/x/text/language"

	"aacrawler/internal/models"
	"aacrawler/internal/summary"
	"aacrawler/pkg/utils"
)

// Transformer tidies article fields for presentation.
type Transformer struct {
	summarizer *summary.Summarizer
	strings    *utils.StringHelper
}

// NewTransformer creates a transformer whose summaries are at most
// summaryLength characters. Names are title-cased with Turkish rules.
func NewTransformer(summaryLength int) *Transformer {
	return &Transformer{
		summarizer: summary.New(summaryLength),
		strings:    utils.NewStringHelperFor(language.Turkish),
	}
}

// Transform returns a normalized copy of article.
//
// An empty summary is derived from the content. City and category are
// title-cased, and whitespace in the title is collapsed.
func (t *Transformer) Transform(article models.Article) models.Article {
	out := article
	out.Images = append([]string{}, article.Images...)

	out.Title = t.strings.NormalizeWhitespace(article.Title)
	out.City = t.strings.TitleCase(t.strings.NormalizeWhitespace(article.City))
	out.Category = t.strings.TitleCase(t.strings.NormalizeWhitespace(article.Category))

	if out.Summary == "" && out.Content != "" {
		out.Summary = t.summarizer.CreateSummary(out.Content)
	}

	return out
}
