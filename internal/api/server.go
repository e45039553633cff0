// Package api exposes the crawler over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"aacrawler/internal/crawler"
	"aacrawler/internal/logger"
	"aacrawler/internal/models"
	"aacrawler/internal/normalizer"
)

// Crawler is the part of crawler.Client served by the API.
type Crawler interface {
	CrawlWithStats(ctx context.Context, overrides map[string]string) ([]models.Article, *crawler.Report, error)
	Article(ctx context.Context, id string) (*models.Article, error)
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	crawler   Crawler
	processor *normalizer.Processor
	metrics   http.Handler
	logger    *logger.Logger
	version   string
}

// NewServer creates a server. metrics may be nil, in which case /metrics is
// not registered.
func NewServer(c Crawler, processor *normalizer.Processor, metrics http.Handler, l *logger.Logger, version string) *Server {
	if l == nil {
		l = logger.Nop()
	}

	return &Server{
		crawler:   c,
		processor: processor,
		metrics:   metrics,
		logger:    l,
		version:   version,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(s.logger))

	r.GET("/health", s.handleHealth)

	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}

	v1 := r.Group("/api/v1")
	v1.POST("/crawl", s.handleCrawl)
	v1.GET("/documents/:id", s.handleDocument)

	return r
}
