package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aacrawler/internal/logger"
)

// RequestIDHeader carries the request identifier.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps an inbound request ID or generates one, and
// echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// LoggerMiddleware logs one line per request with method, path, status and duration.
func LoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		}

		if len(c.Errors) > 0 {
			l.Error("HTTP request with errors", append(args, "errors", c.Errors.Errors())...)

			return
		}

		if strings.HasPrefix(path, "/health") || path == "/metrics" {
			l.Debug("HTTP request", args...)

			return
		}

		l.Info("HTTP request", args...)
	}
}
