// Package models defines data structures produced by the crawler.
package models

// Article is the simplified record mapped from one NewsML document.
//
// Images holds at most one document link. City and Category are empty when the
// source document has no Turkish-language value for them.
type Article struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"created_at"`
	Category  string   `json:"category"`
	City      string   `json:"city"`
	Images    []string `json:"images"`
}

// HasImage reports whether the article links a related image.
func (a Article) HasImage() bool {
	return len(a.Images) > 0
}
