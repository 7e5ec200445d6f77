package http

import (
	"sync"
	"time"
)

// rateLimiter caps chat messages per connection per minute. A zero or
// negative limit disables it.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	counter int
}

func newRateLimiter(limit int) *rateLimiter {
	if limit <= 0 {
		limit = 0
	}
	return &rateLimiter{limit: limit}
}

func (r *rateLimiter) allow() bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter <= r.limit
}

// startReset begins the once-a-minute counter reset. The ticker lives
// only while the connection does.
func (r *rateLimiter) startReset(stop <-chan struct{}) {
	if r == nil || r.limit <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.mu.Lock()
				r.counter = 0
				r.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}
