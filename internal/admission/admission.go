package admission

import (
	"context"
	"log/slog"
	"time"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// Default admission policy.
const (
	DefaultWindow        = time.Minute
	DefaultCeiling       = 30
	DefaultSweepInterval = 24 * time.Hour
	DefaultSessionTTL    = 7 * 24 * time.Hour
)

// Config tunes the admission policy.
type Config struct {
	Window        time.Duration
	Ceiling       int
	SweepInterval time.Duration
	SessionTTL    time.Duration
}

// Option adjusts the admission configuration.
type Option func(*Config)

// WithWindow overrides the rate-limit window duration.
func WithWindow(d time.Duration) Option {
	return func(c *Config) { c.Window = d }
}

// WithCeiling overrides the per-window message ceiling.
func WithCeiling(n int) Option {
	return func(c *Config) { c.Ceiling = n }
}

// WithSweepInterval overrides the expiry sweep period.
func WithSweepInterval(d time.Duration) Option {
	return func(c *Config) { c.SweepInterval = d }
}

// WithSessionTTL overrides the idle-session expiry threshold.
func WithSessionTTL(d time.Duration) Option {
	return func(c *Config) { c.SessionTTL = d }
}

// Controller combines the session store and the rate limiter and runs
// the idle-session expiry sweep. The two stores have independent locks
// but a shared lifecycle: a swept session takes its rate-limit window
// with it.
type Controller struct {
	Sessions *SessionStore
	limiter  *RateLimiter
	cfg      Config
}

// NewController creates an admission controller with the default policy,
// adjusted by opts.
func NewController(opts ...Option) *Controller {
	cfg := Config{
		Window:        DefaultWindow,
		Ceiling:       DefaultCeiling,
		SweepInterval: DefaultSweepInterval,
		SessionTTL:    DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Controller{
		Sessions: NewSessionStore(),
		limiter:  NewRateLimiter(cfg.Window, cfg.Ceiling),
		cfg:      cfg,
	}
}

// Admit checks and records one inbound event for userID. On admission
// the session is touched (created on first contact) and returned.
// firstReject is set on the first rejection of a window so the caller
// can send a single slow-down notice.
func (c *Controller) Admit(userID string) (s *models.Session, admitted, firstReject bool) {
	admitted, firstReject = c.limiter.Admit(userID)
	if !admitted {
		slog.Debug("Admission rejected", "user", userID, "firstReject", firstReject)
		return nil, false, firstReject
	}
	return c.Sessions.Touch(userID), true, false
}

// Sweep removes every session idle longer than the configured TTL along
// with its rate-limit window, returning the number removed. It iterates
// over a snapshot of the key set; each removal is independently safe and
// admission for unrelated users is never blocked.
func (c *Controller) Sweep() int {
	cutoff := time.Now().Add(-c.cfg.SessionTTL)
	removed := 0
	for _, userID := range c.Sessions.Keys() {
		s, ok := c.Sessions.Get(userID)
		if !ok {
			continue
		}
		s.Lock()
		idle := s.LastActivity.Before(cutoff)
		s.Unlock()
		if idle {
			c.Sessions.Remove(userID)
			c.limiter.Forget(userID)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("Admission sweep removed idle sessions", "removed", removed, "remaining", c.Sessions.Len())
	}
	return removed
}

// Run executes the expiry sweep on its configured period until the
// context is cancelled.
func (c *Controller) Run(ctx context.Context) {
	slog.Info("Admission sweeper starting", "interval", c.cfg.SweepInterval, "ttl", c.cfg.SessionTTL)
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Admission sweeper stopping")
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
