// Package telegram adapts the Telegram Bot API to the messaging Channel
// contract, built on the telebot library: sendMessage/editMessageText/
// deleteMessage for the outbound side and telebot's long-poll loop for
// inbound events, decoded into workflow events at this boundary.
// Outbound calls share a rate limiter respecting Telegram's global
// throughput ceiling.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	"github.com/zhenyakul/ghub-international/internal/models"
)

// Defaults for the Bot API client.
const (
	// DefaultSendRate is Telegram's documented global ceiling of roughly
	// 30 messages per second.
	DefaultSendRate = 30
	// DefaultPollTimeout is the getUpdates long-poll timeout.
	DefaultPollTimeout = 30 * time.Second
	// DefaultUpdateBuffer is the inbound update channel buffer size.
	DefaultUpdateBuffer = 100
)

// Opts holds client configuration assembled from Options.
type Opts struct {
	BaseURL    string
	HTTPClient *http.Client
	SendRate   int
}

// Option configures the client.
type Option func(*Opts)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(o *Opts) { o.BaseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Opts) { o.HTTPClient = hc }
}

// WithSendRate overrides the outbound calls-per-second ceiling.
func WithSendRate(n int) Option {
	return func(o *Opts) { o.SendRate = n }
}

// Client talks to the Telegram Bot API through telebot. It implements
// messaging.Channel; user ids are decimal chat ids.
type Client struct {
	bot     *tele.Bot
	limiter *rate.Limiter
	updates chan models.Update
}

// NewClient creates a Bot API client for the given bot token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token not set")
	}
	cfg := Opts{
		HTTPClient: &http.Client{Timeout: DefaultPollTimeout + 10*time.Second},
		SendRate:   DefaultSendRate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		URL:    strings.TrimRight(cfg.BaseURL, "/"),
		Client: cfg.HTTPClient,
		Poller: &tele.LongPoller{
			Timeout:        DefaultPollTimeout,
			AllowedUpdates: []string{"message", "callback_query"},
		},
		OnError: func(err error, _ tele.Context) {
			slog.Error("Telegram update handling failed", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	c := &Client{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(cfg.SendRate), cfg.SendRate),
		updates: make(chan models.Update, DefaultUpdateBuffer),
	}
	c.registerHandlers()
	return c, nil
}

// registerHandlers routes telebot endpoints into the update stream.
func (c *Client) registerHandlers() {
	c.bot.Handle("/start", func(tc tele.Context) error {
		c.updates <- models.Update{
			UserID: strconv.FormatInt(tc.Chat().ID, 10),
			Event:  models.StartCommand{},
		}
		return nil
	})

	c.bot.Handle(tele.OnText, func(tc tele.Context) error {
		if u, ok := decodeText(tc.Chat().ID, tc.Text()); ok {
			c.updates <- u
		}
		return nil
	})

	c.bot.Handle(tele.OnCallback, func(tc tele.Context) error {
		// Always answer the callback so the client spinner clears, even
		// for stale tokens.
		if err := tc.Respond(); err != nil {
			slog.Debug("Telegram callback answer failed", "error", err)
		}
		if u, ok := decodeCallback(tc.Sender().ID, tc.Callback().Data); ok {
			c.updates <- u
		}
		return nil
	})
}

// decodeText converts a plain text message into a workflow event. Blank
// messages are dropped here, at the boundary.
func decodeText(chatID int64, text string) (models.Update, bool) {
	userID := strconv.FormatInt(chatID, 10)
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Update{}, false
	}
	if text == "/start" || strings.HasPrefix(text, "/start ") {
		return models.Update{UserID: userID, Event: models.StartCommand{}}, true
	}
	return models.Update{UserID: userID, Event: models.FreeText{Text: text}}, true
}

// decodeCallback converts callback data into a workflow event. Unknown
// tokens (stale buttons from an old prompt) are dropped.
func decodeCallback(senderID int64, data string) (models.Update, bool) {
	data = strings.TrimSpace(strings.TrimPrefix(data, "\f"))
	ev, ok := models.ParseToken(data)
	if !ok {
		slog.Debug("Telegram ignoring unknown callback token", "data", data)
		return models.Update{}, false
	}
	return models.Update{UserID: strconv.FormatInt(senderID, 10), Event: ev}, true
}

// inlineKeyboard renders actions as an inline keyboard, one button per
// row. Actions with a URL become link buttons.
func inlineKeyboard(actions []models.Action) *tele.ReplyMarkup {
	if len(actions) == 0 {
		return nil
	}
	rows := make([][]tele.InlineButton, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, []tele.InlineButton{{Text: a.Label, Data: a.Token, URL: a.URL}})
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func chatID(userID string) (int64, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chat id %q: %w", userID, err)
	}
	return id, nil
}

// Send delivers a message, returning the Telegram message id.
func (c *Client) Send(ctx context.Context, userID, text string, actions []models.Action) (string, error) {
	chat, err := chatID(userID)
	if err != nil {
		return "", err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}
	var opts []interface{}
	if kb := inlineKeyboard(actions); kb != nil {
		opts = append(opts, kb)
	}
	msg, err := c.bot.Send(tele.ChatID(chat), text, opts...)
	if err != nil {
		slog.Error("Telegram send failed", "to", userID, "error", err)
		return "", fmt.Errorf("sendMessage failed: %w", err)
	}
	return strconv.Itoa(msg.ID), nil
}

// Edit replaces the text and keyboard of an existing message.
func (c *Client) Edit(ctx context.Context, userID, messageID, text string, actions []models.Action) error {
	chat, err := chatID(userID)
	if err != nil {
		return err
	}
	if _, err := strconv.ParseInt(messageID, 10, 64); err != nil {
		return fmt.Errorf("invalid message id %q: %w", messageID, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}
	var opts []interface{}
	if kb := inlineKeyboard(actions); kb != nil {
		opts = append(opts, kb)
	}
	_, err = c.bot.Edit(&tele.StoredMessage{MessageID: messageID, ChatID: chat}, text, opts...)
	// The API reports a bare true for some edits; telebot surfaces that
	// as ErrTrueResult even though the edit succeeded.
	if err != nil && !errors.Is(err, tele.ErrTrueResult) {
		slog.Warn("Telegram edit failed", "to", userID, "messageID", messageID, "error", err)
		return fmt.Errorf("editMessageText failed: %w", err)
	}
	return nil
}

// Delete retracts a previously sent message.
func (c *Client) Delete(ctx context.Context, userID, messageID string) error {
	chat, err := chatID(userID)
	if err != nil {
		return err
	}
	if _, err := strconv.ParseInt(messageID, 10, 64); err != nil {
		return fmt.Errorf("invalid message id %q: %w", messageID, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}
	if err := c.bot.Delete(&tele.StoredMessage{MessageID: messageID, ChatID: chat}); err != nil {
		slog.Warn("Telegram delete failed", "to", userID, "messageID", messageID, "error", err)
		return fmt.Errorf("deleteMessage failed: %w", err)
	}
	return nil
}

// Updates returns the inbound event stream. Start must be running for
// events to arrive.
func (c *Client) Updates() <-chan models.Update {
	return c.updates
}

// Start runs the long-poll loop until the context is cancelled.
func (c *Client) Start(ctx context.Context) {
	slog.Info("Telegram update loop starting")
	go func() {
		<-ctx.Done()
		c.bot.Stop()
	}()
	c.bot.Start()
	slog.Info("Telegram update loop stopped")
	close(c.updates)
}
