package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// SentMessage records one outbound message delivered through the
// in-memory channel.
type SentMessage struct {
	ID      string
	UserID  string
	Text    string
	Actions []models.Action
}

// EditRecord records one edit applied through the in-memory channel.
type EditRecord struct {
	MessageID string
	Text      string
	Actions   []models.Action
}

// MemoryChannel is an in-memory Channel used by tests. Failures can be
// scripted per operation to exercise retry, fallback, and
// commit-after-send paths.
type MemoryChannel struct {
	mu     sync.Mutex
	nextID int

	Sent    []SentMessage
	Edits   []EditRecord
	Deleted []string

	// FailSends makes the next n Send calls fail.
	FailSends int
	// FailEdits makes the next n Edit calls fail.
	FailEdits int
	// DeleteFailures maps a message id to the number of Delete attempts
	// that should fail before one succeeds. A negative count fails every
	// attempt.
	DeleteFailures map[string]int
	// DeleteAttempts counts Delete calls per message id.
	DeleteAttempts map[string]int
}

// NewMemoryChannel creates an empty in-memory channel.
func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{
		DeleteFailures: make(map[string]int),
		DeleteAttempts: make(map[string]int),
	}
}

// Send records the message and returns a fresh id, failing while
// FailSends is positive.
func (c *MemoryChannel) Send(ctx context.Context, userID, text string, actions []models.Action) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailSends > 0 {
		c.FailSends--
		return "", fmt.Errorf("send failed for user %s", userID)
	}
	c.nextID++
	id := fmt.Sprintf("m%d", c.nextID)
	c.Sent = append(c.Sent, SentMessage{ID: id, UserID: userID, Text: text, Actions: actions})
	slog.Debug("MemoryChannel Send", "to", userID, "id", id, "actions", len(actions))
	return id, nil
}

// Edit records the edit, failing while FailEdits is positive.
func (c *MemoryChannel) Edit(ctx context.Context, userID, messageID, text string, actions []models.Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailEdits > 0 {
		c.FailEdits--
		return fmt.Errorf("edit failed for message %s", messageID)
	}
	c.Edits = append(c.Edits, EditRecord{MessageID: messageID, Text: text, Actions: actions})
	return nil
}

// Delete records the deletion, consuming any scripted failures first.
func (c *MemoryChannel) Delete(ctx context.Context, userID, messageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeleteAttempts[messageID]++
	if n := c.DeleteFailures[messageID]; n != 0 {
		if n > 0 {
			c.DeleteFailures[messageID] = n - 1
		}
		return fmt.Errorf("delete failed for message %s", messageID)
	}
	c.Deleted = append(c.Deleted, messageID)
	return nil
}

// LastSent returns the most recently sent message, or nil when none.
func (c *MemoryChannel) LastSent() *SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Sent) == 0 {
		return nil
	}
	msg := c.Sent[len(c.Sent)-1]
	return &msg
}

// SentTo returns all messages sent to one user.
func (c *MemoryChannel) SentTo(userID string) []SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []SentMessage
	for _, m := range c.Sent {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out
}
