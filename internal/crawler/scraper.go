package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aacrawler/internal/config"
	"aacrawler/pkg/utils"
)

// Default transport settings.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 10 * 1024 * 1024
)

// Response is the outcome of one request. Body is empty for any status other
// than 200. A 200 body larger than the limit is an ErrBodyTooLarge error.
type Response struct {
	URL        string
	Body       string
	StatusCode int
	Duration   time.Duration
}

// Scraper performs authenticated requests against the news-wire API.
type Scraper struct {
	client       *http.Client
	headers      *utils.HTTPHelper
	credentials  config.Credentials
	maxBodyBytes int64
}

// NewScraperWithClient creates a scraper on top of an existing HTTP client.
func NewScraperWithClient(client *http.Client, credentials config.Credentials, maxBodyBytes int64) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return &Scraper{
		client:       client,
		headers:      utils.NewHTTPHelper(),
		credentials:  credentials,
		maxBodyBytes: maxBodyBytes,
	}
}

// Get fetches rawURL.
func (s *Scraper) Get(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}

	return s.do(req, nil)
}

// PostForm posts form as an urlencoded body to rawURL.
func (s *Scraper) PostForm(ctx context.Context, rawURL string, form url.Values) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}

	return s.do(req, map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
}

func (s *Scraper) do(req *http.Request, custom map[string]string) (resp Response, err error) {
	req.Header = s.headers.BuildHeaders(custom)
	req.SetBasicAuth(s.credentials.UserName, s.credentials.Password)

	resp.URL = req.URL.String()
	startTime := time.Now()

	defer func() {
		resp.Duration = time.Since(startTime)
	}()

	httpResp, err := s.client.Do(req)
	if err != nil {
		return resp, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	resp.StatusCode = httpResp.StatusCode

	if httpResp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, s.maxBodyBytes))

		return resp, nil
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, s.maxBodyBytes+1))
	if err != nil {
		return resp, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > s.maxBodyBytes {
		return resp, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, s.maxBodyBytes, resp.URL)
	}

	resp.Body = string(body)

	return resp, nil
}
