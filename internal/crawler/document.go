package crawler

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/antchfx/xmlquery"

	"aacrawler/internal/models"
	"aacrawler/internal/newsml"
)

// DocumentFormat is the rendition requested for every document.
const DocumentFormat = "newsml29"

// Bounds of the cache-busting value appended to document URLs.
const (
	nonceMin = 1000
	nonceMax = 9999
)

func randomNonce() int {
	return nonceMin + rand.IntN(nonceMax-nonceMin+1)
}

// Document fetches and parses one NewsML document. A missing document (any
// status other than 200, or an empty body) yields (nil, nil).
func (c *Client) Document(ctx context.Context, id string) (*xmlquery.Node, error) {
	doc, _, err := c.fetchDocument(ctx, id)

	return doc, err
}

// Article fetches one document and maps it. A missing document yields
// ErrNoDataFound.
func (c *Client) Article(ctx context.Context, id string) (*models.Article, error) {
	doc, err := c.Document(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", id, ErrNoDataFound)
	}

	article, err := c.mapper.ToArticle(doc)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}

	return &article, nil
}

// DocumentLink returns the public link of a document rendition.
func (c *Client) DocumentLink(id, format string) string {
	return c.mapper.DocumentLink(id, format)
}

func (c *Client) fetchDocument(ctx context.Context, id string) (*xmlquery.Node, Response, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, Response{}, fmt.Errorf("document %s: %w", id, err)
	}

	resp, err := c.scraper.Get(ctx, c.documentURL(id))
	if err != nil {
		c.recorder.ObserveDocument(OutcomeError, resp.Duration)

		return nil, resp, fmt.Errorf("document %s: %w", id, err)
	}

	if resp.Body == "" {
		c.recorder.ObserveDocument(OutcomeEmpty, resp.Duration)

		return nil, resp, nil
	}

	doc, err := newsml.ParseString(resp.Body)
	if err != nil {
		c.recorder.ObserveDocument(OutcomeMalformed, resp.Duration)

		return nil, resp, fmt.Errorf("document %s: %w", id, err)
	}

	c.recorder.ObserveDocument(OutcomeOK, resp.Duration)

	return doc, resp, nil
}

func (c *Client) documentURL(id string) string {
	return fmt.Sprintf("%s/abone/document/%s/%s?v=2%d", c.baseURL, id, DocumentFormat, c.nonce())
}
