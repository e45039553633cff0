package crawler

import "time"

// Outcomes reported to a Recorder.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeAuth      = "auth_error"
	OutcomeNoData    = "no_data"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

// Recorder receives crawl observations, typically to export them as metrics.
type Recorder interface {
	ObserveSearch(outcome string, duration time.Duration)
	ObserveDocument(outcome string, duration time.Duration)
	ObserveCrawl(stats Stats, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, time.Duration)   {}
func (nopRecorder) ObserveDocument(string, time.Duration) {}
func (nopRecorder) ObserveCrawl(Stats, error)             {}
