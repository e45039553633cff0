package crawler

import (
	"fmt"
	"sync"
	"time"

	"aacrawler/internal/logger"
)

// FetchAttempt records the result of one document fetch.
type FetchAttempt struct {
	Timestamp  time.Time
	DocumentID string
	URL        string
	Outcome    string
	Error      string
	Duration   time.Duration
	StatusCode int
}

// Success reports whether the attempt produced an article.
func (a FetchAttempt) Success() bool {
	return a.Outcome == OutcomeOK
}

// FetchLog keeps the document fetch attempts of one crawl run.
type FetchLog struct {
	attempts []FetchAttempt
	mu       sync.Mutex
}

// NewFetchLog creates an empty fetch log.
func NewFetchLog() *FetchLog {
	return &FetchLog{}
}

// RecordAttempt records the result of a fetch attempt.
func (fl *FetchLog) RecordAttempt(id, url, outcome string, err error, statusCode int, duration time.Duration) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	fl.attempts = append(fl.attempts, FetchAttempt{
		Timestamp:  time.Now(),
		DocumentID: id,
		URL:        url,
		Outcome:    outcome,
		Error:      errMsg,
		Duration:   duration,
		StatusCode: statusCode,
	})
}

// Attempts returns a copy of the recorded attempts in order.
func (fl *FetchLog) Attempts() []FetchAttempt {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	out := make([]FetchAttempt, len(fl.attempts))
	copy(out, fl.attempts)

	return out
}

// Stats returns statistics about fetch attempts.
func (fl *FetchLog) Stats() FetchStats {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	stats := FetchStats{Total: len(fl.attempts)}

	for _, a := range fl.attempts {
		stats.TotalDuration += a.Duration

		switch a.Outcome {
		case OutcomeOK:
			stats.Succeeded++
		case OutcomeEmpty:
			stats.Empty++
		default:
			stats.Failed++
		}
	}

	return stats
}

// FetchStats contains statistics about fetch attempts.
type FetchStats struct {
	Total         int
	Succeeded     int
	Empty         int
	Failed        int
	TotalDuration time.Duration
}

// String returns a string representation of fetch stats.
func (s FetchStats) String() string {
	return fmt.Sprintf(
		"Documents: %d total, %d fetched, %d empty, %d failed (%.2fs)",
		s.Total,
		s.Succeeded,
		s.Empty,
		s.Failed,
		s.TotalDuration.Seconds(),
	)
}

// LogSummary logs every attempt at debug level and the totals at info level.
func (fl *FetchLog) LogSummary(l *logger.Logger) {
	for i, a := range fl.Attempts() {
		args := []any{
			"n", i + 1,
			"document_id", a.DocumentID,
			"outcome", a.Outcome,
			"status", a.StatusCode,
			"duration", a.Duration,
		}

		if a.Error != "" {
			args = append(args, "error", a.Error)
		}

		l.Debug("fetch attempt", args...)
	}

	l.Info("fetch summary", "stats", fl.Stats().String())
}
