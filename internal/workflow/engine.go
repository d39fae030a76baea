// Package workflow implements the intake state machine: the ordered
// states a session passes through, the transition for each inbound
// event, and the message side effects attached to each transition.
package workflow

import (
	"context"
	"log/slog"

	"github.com/zhenyakul/ghub-international/internal/admission"
	"github.com/zhenyakul/ghub-international/internal/ledger"
	"github.com/zhenyakul/ghub-international/internal/messaging"
	"github.com/zhenyakul/ghub-international/internal/models"
	"github.com/zhenyakul/ghub-international/internal/prompt"
)

// Archive receives completed intake records. Defined here so the engine
// depends on the behavior, not on a concrete store backend.
type Archive interface {
	SaveIntake(rec models.IntakeRecord) error
}

// Engine drives one state-machine transition per inbound event. Events
// for different users run fully concurrently; mutations to a single
// session happen under that session's lock, which is released around
// blocking transport calls and re-acquired to commit message ids.
type Engine struct {
	admission *admission.Controller
	ledger    *ledger.Ledger
	prompts   *prompt.Builder
	ch        messaging.Channel
	handoff   messaging.Notifier
	archive   Archive
}

// NewEngine wires the workflow engine. handoff and archive may be nil
// when no operator sink or archive is configured.
func NewEngine(ctrl *admission.Controller, led *ledger.Ledger, ch messaging.Channel, handoff messaging.Notifier, archive Archive) *Engine {
	return &Engine{
		admission: ctrl,
		ledger:    led,
		prompts:   prompt.NewBuilder(),
		ch:        ch,
		handoff:   handoff,
		archive:   archive,
	}
}

// Run consumes updates until the channel closes or the context is
// cancelled, processing each in its own goroutine.
func (e *Engine) Run(ctx context.Context, updates <-chan models.Update) {
	slog.Info("Workflow engine starting")
	for {
		select {
		case <-ctx.Done():
			slog.Info("Workflow engine stopping")
			return
		case u, ok := <-updates:
			if !ok {
				slog.Info("Workflow engine updates channel closed")
				return
			}
			go e.Process(ctx, u)
		}
	}
}

// Process runs admission control and dispatches one event. It is the
// outermost task boundary: a panic during a transition is recovered
// here, logged with full context, and answered with a generic notice,
// leaving the session in its pre-event state for a retry.
func (e *Engine) Process(ctx context.Context, u models.Update) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Workflow transition panicked", "user", u.UserID, "event", eventName(u.Event), "panic", r)
			e.sendNotice(ctx, u.UserID, prompt.KindGenericError, false)
		}
	}()

	if u.Event == nil {
		slog.Debug("Workflow ignoring empty event", "user", u.UserID)
		return
	}

	s, admitted, firstReject := e.admission.Admit(u.UserID)
	if !admitted {
		if firstReject {
			e.sendNotice(ctx, u.UserID, prompt.KindRateLimited, false)
		}
		return
	}

	e.dispatch(ctx, s, u.Event)
}

// dispatch routes an event to its handler for the session's current
// state. Stale buttons from an old prompt and events that do not fit the
// current state are ignored silently.
func (e *Engine) dispatch(ctx context.Context, s *models.Session, ev models.Event) {
	s.Lock()
	state := s.State
	s.Unlock()

	switch ev := ev.(type) {
	case models.StartCommand:
		e.handleStart(ctx, s)
	case models.LanguageChosen:
		if state != models.StateLanguageSelection {
			e.ignore(s, ev, state)
			return
		}
		e.handleLanguageChosen(ctx, s, ev.Language)
	case models.FreeText:
		e.handleFreeText(ctx, s, ev.Text)
	case models.ServiceToggled:
		if state != models.StateServiceSelection {
			e.ignore(s, ev, state)
			return
		}
		e.handleServiceToggled(ctx, s, ev.Service)
	case models.ServicesConfirmed:
		if state != models.StateServiceSelection {
			e.ignore(s, ev, state)
			return
		}
		e.handleServicesConfirmed(ctx, s)
	case models.BackToRequest:
		if state != models.StateServiceSelection {
			e.ignore(s, ev, state)
			return
		}
		e.handleBackToRequest(ctx, s)
	case models.PaymentChosen:
		if state != models.StatePaymentSelection {
			e.ignore(s, ev, state)
			return
		}
		e.handlePaymentChosen(ctx, s, ev.Payment)
	case models.BackToServices:
		if state != models.StatePaymentSelection {
			e.ignore(s, ev, state)
			return
		}
		e.handleBackToServices(ctx, s)
	default:
		e.ignore(s, ev, state)
	}
}

func (e *Engine) ignore(s *models.Session, ev models.Event, state models.State) {
	slog.Debug("Workflow ignoring event for state", "user", s.UserID, "event", eventName(ev), "state", state)
}

func eventName(ev models.Event) string {
	switch ev.(type) {
	case models.StartCommand:
		return "start"
	case models.LanguageChosen:
		return "language_chosen"
	case models.FreeText:
		return "free_text"
	case models.ServiceToggled:
		return "service_toggled"
	case models.ServicesConfirmed:
		return "services_confirmed"
	case models.BackToRequest:
		return "back_to_request"
	case models.PaymentChosen:
		return "payment_chosen"
	case models.BackToServices:
		return "back_to_services"
	default:
		return "unknown"
	}
}

// sendNotice sends a standalone notice in the user's selected language
// (or the default if none), optionally marking it ephemeral.
func (e *Engine) sendNotice(ctx context.Context, userID string, kind prompt.Kind, ephemeral bool) {
	s, ok := e.admission.Sessions.Get(userID)
	if !ok {
		s = models.NewSession(userID)
	}
	p, err := e.prompts.Build(kind, s)
	if err != nil {
		slog.Error("Workflow notice build failed", "user", userID, "kind", kind, "error", err)
		return
	}
	id, err := e.ch.Send(ctx, userID, p.Text, p.Actions)
	if err != nil {
		slog.Error("Workflow notice send failed", "user", userID, "kind", kind, "error", err)
		return
	}
	if ephemeral && ok {
		s.Lock()
		e.ledger.MarkEphemeral(s, id)
		s.Unlock()
	}
}
