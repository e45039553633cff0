package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Envelope codes returned in response.code.
const (
	CodeOK           = 200
	CodeUnauthorized = 401
)

// SearchResult is the JSON envelope returned by the search endpoint.
type SearchResult struct {
	Response *SearchResponse `json:"response"`
	Data     SearchData      `json:"data"`
}

// SearchResponse carries the outcome of a search.
type SearchResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Success bool   `json:"success"`
}

// SearchData holds the matched documents.
type SearchData struct {
	Result []SearchItem `json:"result"`
}

// SearchItem identifies one matched document.
type SearchItem struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	GroupID string `json:"group_id"`
}

// IDs returns the document identifiers in result order.
func (r *SearchResult) IDs() []string {
	ids := make([]string, 0, len(r.Data.Result))
	for _, item := range r.Data.Result {
		ids = append(ids, item.ID)
	}

	return ids
}

// Search runs one search with the client's filters.
//
// The envelope code decides the outcome: 200 returns the envelope, 401 fails
// with ErrAuthentication and any other code with ErrNoDataFound. A transport
// status other than 200 leaves the body empty, which is ErrNoDataFound.
func (c *Client) Search(ctx context.Context) (*SearchResult, error) {
	result, outcome, resp, err := c.search(ctx)
	c.recorder.ObserveSearch(outcome, resp.Duration)

	if err != nil {
		c.logger.Warn("search failed",
			"outcome", outcome,
			"status", resp.StatusCode,
			"error", err,
		)

		return nil, err
	}

	c.logger.Debug("search completed",
		"results", len(result.Data.Result),
		"duration", resp.Duration,
	)

	return result, nil
}

func (c *Client) search(ctx context.Context) (*SearchResult, string, Response, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, OutcomeError, Response{}, fmt.Errorf("search: %w", err)
	}

	form := url.Values{}
	for key, value := range c.attrs {
		form.Set(key, value)
	}

	resp, err := c.scraper.PostForm(ctx, c.searchURL(), form)
	if err != nil {
		return nil, OutcomeError, resp, fmt.Errorf("search: %w", err)
	}

	if resp.Body == "" {
		return nil, OutcomeNoData, resp, fmt.Errorf("search: empty response (status %d): %w", resp.StatusCode, ErrNoDataFound)
	}

	var result SearchResult
	if err := json.Unmarshal([]byte(resp.Body), &result); err != nil {
		return nil, OutcomeMalformed, resp, fmt.Errorf("search: %w: %w", ErrMalformedEnvelope, err)
	}

	if result.Response == nil {
		return nil, OutcomeMalformed, resp, fmt.Errorf("search: %w: missing response object", ErrMalformedEnvelope)
	}

	switch result.Response.Code {
	case CodeOK:
		return &result, OutcomeOK, resp, nil
	case CodeUnauthorized:
		return nil, OutcomeAuth, resp, fmt.Errorf("search: %w", ErrAuthentication)
	default:
		return nil, OutcomeNoData, resp, fmt.Errorf("search: code %d %q: %w",
			result.Response.Code, result.Response.Message, ErrNoDataFound)
	}
}

func (c *Client) searchURL() string {
	return c.baseURL + "/abone/search"
}
