package crawler

import (
	"errors"

	"aacrawler/internal/config"
	"aacrawler/internal/newsml"
)

// Crawl errors. Callers match them with errors.Is.
var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrNoDataFound       = errors.New("no data found")
	ErrMalformedEnvelope = errors.New("malformed search envelope")
	ErrBodyTooLarge      = errors.New("response body exceeds limit")

	ErrMalformedDocument    = newsml.ErrMalformedDocument
	ErrInvalidConfiguration = config.ErrInvalidConfiguration
)
