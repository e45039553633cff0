package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPacing is the minimum gap between two calls to the remote API.
const DefaultPacing = 300 * time.Millisecond

// Pacer gates outbound calls. Wait blocks until the next call may start or
// ctx is done.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer returns a gate that lets one call through per interval. The first
// call passes immediately. A non-positive interval disables pacing.
func NewPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return Unpaced()
	}

	return rate.NewLimiter(rate.Every(interval), 1)
}

// Unpaced returns a gate that never blocks.
func Unpaced() Pacer {
	return rate.NewLimiter(rate.Inf, 1)
}
