// Package normalizer post-processes crawled articles: validation, derived
// summaries and name casing.
package normalizer

import (
	"fmt"

	"aacrawler/internal/models"
)

// Processor handles article validation and transformation.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor(summaryLength int) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(summaryLength),
	}
}

// Process validates articles and returns normalized copies in the same order.
func (p *Processor) Process(articles []models.Article) ([]models.Article, error) {
	// 1. Validate the input data
	if err := p.validator.ValidateAll(articles); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the data
	out := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		out = append(out, p.transformer.Transform(article))
	}

	return out, nil
}
