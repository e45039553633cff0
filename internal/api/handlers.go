package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"aacrawler/internal/crawler"
	"aacrawler/internal/models"
)

// CrawlRequest is the body of POST /api/v1/crawl. Both fields are optional.
type CrawlRequest struct {
	Filters   map[string]string `json:"filters"`
	Normalize bool              `json:"normalize"`
}

// CrawlResponse is returned by a successful crawl.
type CrawlResponse struct {
	RunID    string           `json:"run_id"`
	Articles []models.Article `json:"articles"`
	Stats    CrawlStats       `json:"stats"`
}

// CrawlStats summarizes a crawl run.
type CrawlStats struct {
	Found      int   `json:"found"`
	Fetched    int   `json:"fetched"`
	Skipped    int   `json:"skipped"`
	DurationMs int64 `json:"duration_ms"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleCrawl(c *gin.Context) {
	var req CrawlRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

		return
	}

	articles, report, err := s.crawler.CrawlWithStats(c.Request.Context(), req.Filters)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if req.Normalize && s.processor != nil {
		articles, err = s.processor.Process(articles)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

			return
		}
	}

	c.JSON(http.StatusOK, CrawlResponse{
		RunID:    report.Stats.RunID,
		Articles: articles,
		Stats: CrawlStats{
			Found:      report.Stats.Found,
			Fetched:    report.Stats.Fetched,
			Skipped:    report.Stats.Skipped,
			DurationMs: report.Stats.Duration.Milliseconds(),
		},
	})
}

func (s *Server) handleDocument(c *gin.Context) {
	article, err := s.crawler.Article(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, article)
}

func (s *Server) respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// statusFor maps crawl errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, crawler.ErrNoDataFound):
		return http.StatusNotFound
	case errors.Is(err, crawler.ErrAuthentication),
		errors.Is(err, crawler.ErrMalformedEnvelope),
		errors.Is(err, crawler.ErrMalformedDocument):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
