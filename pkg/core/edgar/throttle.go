package edgar

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// MinRequestInterval is the smallest spacing allowed between two SEC requests.
const MinRequestInterval = 200 * time.Millisecond

// throttle spaces requests to SEC across every goroutine in the process.
// The limiter holds the only timestamp; it is safe for concurrent use and
// never blocks while a request is in flight.
type throttle struct {
	limiter *rate.Limiter
}

func newThrottle(interval time.Duration) *throttle {
	if interval < MinRequestInterval {
		interval = MinRequestInterval
	}
	return &throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (t *throttle) wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

func (t *throttle) setInterval(interval time.Duration) {
	if interval < MinRequestInterval {
		interval = MinRequestInterval
	}
	t.limiter.SetLimit(rate.Every(interval))
}

var secThrottle = newThrottle(MinRequestInterval)

// SetMinInterval widens the process-wide spacing between SEC requests.
// Values below MinRequestInterval are raised to it.
func SetMinInterval(interval time.Duration) {
	secThrottle.setInterval(interval)
}

func waitTurn(ctx context.Context) error {
	return secThrottle.wait(ctx)
}
