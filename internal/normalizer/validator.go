package normalizer

import (
	"errors"
	"fmt"
	"time"

	"aacrawler/internal/models"
	"aacrawler/internal/newsml"
)

// Validation errors.
var (
	ErrMissingTitle     = errors.New("article missing title")
	ErrTooManyImages    = errors.New("article links more than one image")
	ErrInvalidCreatedAt = errors.New("article created_at has unexpected format")
)

// MaxImages is the number of image links an article may carry.
const MaxImages = 1

// Validator handles article validation.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that an article meets output requirements.
func (v *Validator) Validate(article models.Article) error {
	if article.Title == "" {
		return ErrMissingTitle
	}

	if len(article.Images) > MaxImages {
		return fmt.Errorf("%w: %d", ErrTooManyImages, len(article.Images))
	}

	if article.CreatedAt != "" {
		if _, err := time.Parse(newsml.CreatedAtLayout, article.CreatedAt); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCreatedAt, article.CreatedAt)
		}
	}

	return nil
}

// ValidateAll validates every article and reports the first failure with its index.
func (v *Validator) ValidateAll(articles []models.Article) error {
	for i, article := range articles {
		if err := v.Validate(article); err != nil {
			return fmt.Errorf("%w at index %d", err, i)
		}
	}

	return nil
}
