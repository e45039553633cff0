// Package crawler talks to the news-wire API: one filtered search followed by
// a sequential, paced fetch of every matched NewsML document.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"aacrawler/internal/config"
	"aacrawler/internal/logger"
	"aacrawler/internal/models"
	"aacrawler/internal/newsml"
)

// Client manages HTTP communication and data flow for crawling.
//
// A Client is immutable after construction: WithAttributes and Crawl never
// change the receiver's filters, so one Client may serve concurrent callers.
type Client struct {
	scraper  *Scraper
	mapper   *newsml.Mapper
	pacer    Pacer
	recorder Recorder
	logger   *logger.Logger
	nonce    func() int
	attrs    config.Attributes
	baseURL  string
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient   *http.Client
	pacer        Pacer
	recorder     Recorder
	logger       *logger.Logger
	nonce        func() int
	attrs        config.Attributes
	credentials  config.Credentials
	maxBodyBytes int64
	err          error
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithCredentials sets the basic-auth account sent with every request.
func WithCredentials(creds config.Credentials) Option {
	return func(o *clientOptions) { o.credentials = creds }
}

// WithParameters sets the basic-auth account from a userName/password
// mapping. A mapping that is not key-value structured, or holds a non-string
// value, makes NewClient fail with ErrInvalidConfiguration.
func WithParameters(raw any) Option {
	return func(o *clientOptions) {
		creds, err := config.ParseCredentials(raw)
		if err != nil {
			o.err = err

			return
		}

		o.credentials = creds
	}
}

// WithFilters replaces the default search filters.
func WithFilters(attrs config.Attributes) Option {
	return func(o *clientOptions) { o.attrs = attrs.Clone() }
}

// WithPacer sets the gate consulted before every remote call.
func WithPacer(p Pacer) Option {
	return func(o *clientOptions) { o.pacer = p }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *clientOptions) { o.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithNonce sets the generator of the cache-busting URL value.
func WithNonce(fn func() int) Option {
	return func(o *clientOptions) { o.nonce = fn }
}

// WithMaxBodyBytes limits the size of response bodies read.
func WithMaxBodyBytes(n int64) Option {
	return func(o *clientOptions) { o.maxBodyBytes = n }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	o := clientOptions{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		pacer:        NewPacer(DefaultPacing),
		recorder:     nopRecorder{},
		logger:       logger.Nop(),
		nonce:        randomNonce,
		attrs:        config.DefaultAttributes(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.err != nil {
		return nil, fmt.Errorf("failed to configure client: %w", o.err)
	}

	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		scraper:  NewScraperWithClient(o.httpClient, o.credentials, o.maxBodyBytes),
		mapper:   newsml.NewMapper(baseURL),
		pacer:    o.pacer,
		recorder: o.recorder,
		logger:   o.logger,
		nonce:    o.nonce,
		attrs:    o.attrs,
		baseURL:  baseURL,
	}, nil
}

// NewClientFromConfig creates a client from loaded configuration. Extra
// options are applied after the configured ones.
func NewClientFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.GetTimeout()}),
		WithParameters(cfg.Parameters()),
		WithFilters(cfg.Crawler.Filters),
		WithPacer(NewPacer(cfg.GetPacing())),
		WithMaxBodyBytes(cfg.GetMaxBodyBytes()),
	}

	return NewClient(cfg.API.BaseURL, append(base, opts...)...)
}

// WithAttributes returns a copy of the client whose filters are the current
// filters merged with overrides. The receiver is unchanged.
func (c *Client) WithAttributes(overrides map[string]string) *Client {
	clone := *c
	clone.attrs = c.attrs.Merge(overrides)

	return &clone
}

// Attributes returns a copy of the client's search filters.
func (c *Client) Attributes() config.Attributes {
	return c.attrs.Clone()
}

// Stats summarizes one crawl run.
type Stats struct {
	RunID    string
	Found    int
	Fetched  int
	Skipped  int
	Duration time.Duration
}

// Report is the bookkeeping of one crawl run.
type Report struct {
	Log   *FetchLog
	Stats Stats
}

// Crawl searches with the client's filters merged with overrides, then
// fetches and maps every result in order. Results without a document are
// skipped. Any other failure aborts the crawl and no articles are returned.
func (c *Client) Crawl(ctx context.Context, overrides map[string]string) ([]models.Article, error) {
	articles, _, err := c.CrawlWithStats(ctx, overrides)

	return articles, err
}

// CrawlWithStats is Crawl that also returns the run report. The report is
// returned on failure too and covers the documents attempted so far.
func (c *Client) CrawlWithStats(ctx context.Context, overrides map[string]string) ([]models.Article, *Report, error) {
	run := c.WithAttributes(overrides)
	report := &Report{
		Log:   NewFetchLog(),
		Stats: Stats{RunID: uuid.NewString()},
	}
	log := c.logger.With("run_id", report.Stats.RunID)
	startTime := time.Now()

	log.Info("crawl started", "filters", map[string]string(run.attrs))

	articles, err := run.crawl(ctx, report, log)
	report.Stats.Duration = time.Since(startTime)

	c.recorder.ObserveCrawl(report.Stats, err)
	report.Log.LogSummary(log)

	if err != nil {
		log.Error("crawl aborted", "error", err, "fetched", report.Stats.Fetched)

		return nil, report, err
	}

	log.Info("crawl finished",
		"found", report.Stats.Found,
		"fetched", report.Stats.Fetched,
		"skipped", report.Stats.Skipped,
		"duration", report.Stats.Duration,
	)

	return articles, report, nil
}

func (c *Client) crawl(ctx context.Context, report *Report, log *logger.Logger) ([]models.Article, error) {
	result, err := c.Search(ctx)
	if err != nil {
		return nil, err
	}

	ids := result.IDs()
	report.Stats.Found = len(ids)
	articles := make([]models.Article, 0, len(ids))

	for _, id := range ids {
		doc, resp, err := c.fetchDocument(ctx, id)
		if err != nil {
			outcome := OutcomeError
			if errors.Is(err, ErrMalformedDocument) {
				outcome = OutcomeMalformed
			}

			report.Log.RecordAttempt(id, resp.URL, outcome, err, resp.StatusCode, resp.Duration)

			return nil, err
		}

		if doc == nil {
			report.Log.RecordAttempt(id, resp.URL, OutcomeEmpty, nil, resp.StatusCode, resp.Duration)
			report.Stats.Skipped++

			log.Debug("document skipped", "document_id", id, "status", resp.StatusCode)

			continue
		}

		article, err := c.mapper.ToArticle(doc)
		if err != nil {
			err = fmt.Errorf("document %s: %w", id, err)
			report.Log.RecordAttempt(id, resp.URL, OutcomeMalformed, err, resp.StatusCode, resp.Duration)

			return nil, err
		}

		report.Log.RecordAttempt(id, resp.URL, OutcomeOK, nil, resp.StatusCode, resp.Duration)
		report.Stats.Fetched++

		articles = append(articles, article)
	}

	return articles, nil
}
