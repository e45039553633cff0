package crawler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"aacrawler/internal/models"
)

// WriteArticlesJSON writes articles to w as an indented JSON array.
func WriteArticlesJSON(w io.Writer, articles []models.Article) error {
	if articles == nil {
		articles = []models.Article{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(articles); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return nil
}

// SaveArticlesJSON saves articles to a JSON file.
func SaveArticlesJSON(articles []models.Article, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteArticlesJSON(f, articles); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
