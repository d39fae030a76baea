// Package ledger tracks the lifecycle of outbound messages per session:
// which ids are ephemeral and must be retracted before the next prompt,
// and which single id is the active selector edited in place. Retraction
// is batched, retried with exponential backoff, and best-effort: a
// message whose retries are exhausted is logged and skipped, never
// aborting the batch or the session.
package ledger

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/zhenyakul/ghub-international/internal/messaging"
	"github.com/zhenyakul/ghub-international/internal/models"
)

// Config tunes retraction batching and per-message retries.
type Config struct {
	// BatchSize is how many deletions run back to back before pausing.
	BatchSize int
	// BatchPause is the delay between batches, respecting downstream
	// throughput limits.
	BatchPause time.Duration
	// MaxAttempts is the per-message deletion attempt ceiling.
	MaxAttempts int
	// RetryBase is the first retry delay; it doubles per attempt.
	RetryBase time.Duration
	// RetryCap bounds the backoff delay.
	RetryCap time.Duration
	// Jitter randomizes each delay by ±25% when set.
	Jitter bool
}

// DefaultConfig returns the production retraction policy.
func DefaultConfig() Config {
	return Config{
		BatchSize:   5,
		BatchPause:  time.Second,
		MaxAttempts: 3,
		RetryBase:   500 * time.Millisecond,
		RetryCap:    10 * time.Second,
		Jitter:      true,
	}
}

// Ledger performs message bookkeeping against a transport channel.
type Ledger struct {
	ch  messaging.Channel
	cfg Config
}

// New creates a ledger with the given retraction policy. Zero config
// fields fall back to the defaults.
func New(ch messaging.Channel, cfg Config) *Ledger {
	def := DefaultConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.BatchPause <= 0 {
		cfg.BatchPause = def.BatchPause
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = def.RetryBase
	}
	if cfg.RetryCap <= 0 {
		cfg.RetryCap = def.RetryCap
	}
	return &Ledger{ch: ch, cfg: cfg}
}

// MarkEphemeral records a message id for retraction before the next
// prompt. The caller must hold the session lock.
func (l *Ledger) MarkEphemeral(s *models.Session, messageID string) {
	s.PendingRetractionIDs = append(s.PendingRetractionIDs, messageID)
}

// SetActiveSelector records the message currently bearing the
// interactive keyboard. The caller must hold the session lock.
func (l *Ledger) SetActiveSelector(s *models.Session, messageID string) {
	s.ActiveSelectorMessageID = &messageID
}

// RetractAll deletes every pending ephemeral message, plus the active
// selector when includeSelector is set. The pending list and selector id
// are snapshotted and cleared under the session lock up front, so the
// invariant that a cleared selector id never points at a half-deleted
// message holds even if individual deletions fail. Deletion itself runs
// without the lock and suspends only the calling goroutine.
func (l *Ledger) RetractAll(ctx context.Context, s *models.Session, includeSelector bool) {
	s.Lock()
	ids := s.PendingRetractionIDs
	s.PendingRetractionIDs = nil
	if includeSelector && s.ActiveSelectorMessageID != nil {
		ids = append(ids, *s.ActiveSelectorMessageID)
		s.ActiveSelectorMessageID = nil
	}
	userID := s.UserID
	s.Unlock()

	if len(ids) == 0 {
		return
	}
	slog.Debug("Ledger retracting messages", "user", userID, "count", len(ids))

	for start := 0; start < len(ids); start += l.cfg.BatchSize {
		if start > 0 {
			if !l.sleep(ctx, l.cfg.BatchPause) {
				return
			}
		}
		end := start + l.cfg.BatchSize
		if end > len(ids) {
			end = len(ids)
		}
		for _, id := range ids[start:end] {
			l.deleteWithRetry(ctx, userID, id)
		}
	}
}

// deleteWithRetry attempts one deletion up to MaxAttempts times with
// exponential backoff. Exhausting the budget is logged and swallowed.
func (l *Ledger) deleteWithRetry(ctx context.Context, userID, messageID string) {
	var err error
	for attempt := 1; attempt <= l.cfg.MaxAttempts; attempt++ {
		err = l.ch.Delete(ctx, userID, messageID)
		if err == nil {
			if attempt > 1 {
				slog.Debug("Ledger delete succeeded after retry", "user", userID, "messageID", messageID, "attempt", attempt)
			}
			return
		}
		slog.Warn("Ledger delete attempt failed", "user", userID, "messageID", messageID, "attempt", attempt, "error", err)
		if attempt < l.cfg.MaxAttempts {
			if !l.sleep(ctx, l.backoff(attempt)) {
				return
			}
		}
	}
	slog.Error("Ledger delete retries exhausted", "user", userID, "messageID", messageID, "attempts", l.cfg.MaxAttempts, "error", err)
}

// ReplaceActiveSelector edits the active selector in place, falling back
// to a fresh send when the edit fails (message deleted externally or too
// old to edit). The old id is queued for retraction on the fallback path
// in case the edit actually landed server-side; either way the caller
// ends up with a valid current selector id. Returns whether the edit
// succeeded in place.
func (l *Ledger) ReplaceActiveSelector(ctx context.Context, s *models.Session, text string, actions []models.Action) (bool, error) {
	s.Lock()
	var oldID string
	if s.ActiveSelectorMessageID != nil {
		oldID = *s.ActiveSelectorMessageID
	}
	userID := s.UserID
	s.Unlock()

	if oldID != "" {
		err := l.ch.Edit(ctx, userID, oldID, text, actions)
		if err == nil {
			return true, nil
		}
		slog.Warn("Ledger selector edit failed, sending replacement", "user", userID, "messageID", oldID, "error", err)
	}

	newID, err := l.ch.Send(ctx, userID, text, actions)
	if err != nil {
		return false, err
	}
	s.Lock()
	if oldID != "" {
		// The failed edit may still have landed; retract the old message
		// with the next sweep instead of leaving a duplicate prompt.
		s.PendingRetractionIDs = append(s.PendingRetractionIDs, oldID)
	}
	s.ActiveSelectorMessageID = &newID
	s.Unlock()
	return false, nil
}

func (l *Ledger) backoff(attempt int) time.Duration {
	d := l.cfg.RetryBase << (attempt - 1)
	if d > l.cfg.RetryCap {
		d = l.cfg.RetryCap
	}
	if l.cfg.Jitter {
		// ±25%
		delta := time.Duration(rand.Int63n(int64(d)/2+1)) - d/4
		d += delta
	}
	return d
}

// sleep waits for d or until the context is done, reporting whether the
// full wait elapsed.
func (l *Ledger) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
