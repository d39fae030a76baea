package admission

import (
	"sync"
	"time"
)

// window is one user's rate-limit accounting: a message count and the
// window start. warned marks that a slow-down notice already went out
// for this window so a flood is not answered with a flood.
type window struct {
	start  time.Time
	count  int
	warned bool
}

// RateLimiter is a per-user windowed counter. A window older than the
// configured duration is reset to count 1 on the next request; within a
// live window a request is admitted iff the count is below the ceiling.
// Check-and-increment is one atomic step under the limiter lock.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	window  time.Duration
	ceiling int

	now func() time.Time // injectable clock for tests
}

// NewRateLimiter creates a limiter admitting up to ceiling requests per
// user per windowDur.
func NewRateLimiter(windowDur time.Duration, ceiling int) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		window:  windowDur,
		ceiling: ceiling,
		now:     time.Now,
	}
}

// Admit records one request for userID and reports whether it is
// admitted, plus whether this is the first rejection of the current
// window (the caller sends the slow-down notice exactly once).
func (rl *RateLimiter) Admit(userID string) (admitted, firstReject bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[userID]
	if !ok || now.Sub(w.start) > rl.window {
		rl.windows[userID] = &window{start: now, count: 1}
		return true, false
	}
	if w.count < rl.ceiling {
		w.count++
		return true, false
	}
	if !w.warned {
		w.warned = true
		return false, true
	}
	return false, false
}

// Forget drops the accounting for userID. Called by the sweeper when the
// associated session expires.
func (rl *RateLimiter) Forget(userID string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.windows, userID)
}
