// Package messaging defines the transport boundary consumed by the
// workflow engine: a Channel for sending, editing and deleting messages,
// and a Notifier for the operator handoff. Concrete implementations live
// in internal/telegram; an in-memory channel is provided for tests.
package messaging

import (
	"context"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// Channel is the outbound side of the messaging transport. The engine
// treats it as a black box: no ordering guarantee is assumed between two
// independent sends beyond the order they are issued.
type Channel interface {
	// Send delivers a message and returns the transport message id.
	// Actions, when present, are rendered as an inline keyboard.
	Send(ctx context.Context, userID, text string, actions []models.Action) (string, error)

	// Edit replaces the text and keyboard of an existing message.
	Edit(ctx context.Context, userID, messageID, text string, actions []models.Action) error

	// Delete retracts a previously sent message.
	Delete(ctx context.Context, userID, messageID string) error
}

// Notifier delivers a completed intake record to a human operator.
// Failures are logged by the caller and never surfaced to the user.
type Notifier interface {
	Notify(ctx context.Context, rec models.IntakeRecord) error
}
