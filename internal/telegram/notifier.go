package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// OperatorNotifier posts completed intake records to the operators'
// group chat. It is fire-and-forget from the engine's point of view:
// errors are returned for logging only.
type OperatorNotifier struct {
	client *Client
	chatID string
}

// NewOperatorNotifier creates a notifier posting to chatID.
func NewOperatorNotifier(client *Client, chatID string) *OperatorNotifier {
	return &OperatorNotifier{client: client, chatID: chatID}
}

// Notify formats the record and sends it to the operator chat.
func (n *OperatorNotifier) Notify(ctx context.Context, rec models.IntakeRecord) error {
	text := fmt.Sprintf(
		"🆕 New intake for %s\nUser: tg://user?id=%s\nLanguage: %s\nVehicle: %s\nServices: %s\nPayment: %s",
		rec.Operator, rec.UserID, rec.Language, rec.ProductRequest, rec.ServiceNames(), rec.Payment,
	)
	if _, err := n.client.Send(ctx, n.chatID, text, nil); err != nil {
		return fmt.Errorf("operator notification failed: %w", err)
	}
	slog.Info("Operator notified of completed intake", "operator", rec.Operator, "user", rec.UserID)
	return nil
}
