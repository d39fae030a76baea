package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/zhenyakul/ghub-international/internal/catalog"
	"github.com/zhenyakul/ghub-international/internal/models"
	"github.com/zhenyakul/ghub-international/internal/prompt"
)

// handleStart resets the session to defaults, retracts anything left on
// screen from a previous run, and opens the flow with the bilingual
// welcome plus the language prompt. The language prompt is ephemeral: it
// is retracted once a language has been chosen.
func (e *Engine) handleStart(ctx context.Context, s *models.Session) {
	s.Lock()
	s.Reset()
	s.Unlock()

	e.ledger.RetractAll(ctx, s, true)

	welcome, err := e.prompts.Build(prompt.KindWelcome, s)
	if err != nil {
		slog.Error("Workflow welcome build failed", "user", s.UserID, "error", err)
		return
	}
	if _, err := e.ch.Send(ctx, s.UserID, welcome.Text, nil); err != nil {
		slog.Error("Workflow welcome send failed", "user", s.UserID, "error", err)
		return
	}

	langPrompt, err := e.prompts.Build(prompt.KindLanguageSelect, s)
	if err != nil {
		slog.Error("Workflow language prompt build failed", "user", s.UserID, "error", err)
		return
	}
	id, err := e.ch.Send(ctx, s.UserID, langPrompt.Text, langPrompt.Actions)
	if err != nil {
		slog.Error("Workflow language prompt send failed", "user", s.UserID, "error", err)
		return
	}

	s.Lock()
	e.ledger.MarkEphemeral(s, id)
	s.AwaitingKeyboardInput = true
	s.State = models.StateLanguageSelection
	s.Unlock()
	slog.Info("Workflow session started", "user", s.UserID)
}

// handleLanguageChosen stores the language, derives the assigned
// operator, retracts the language prompt, and asks for the product
// request. The request prompt takes free text, so no selector is
// tracked.
func (e *Engine) handleLanguageChosen(ctx context.Context, s *models.Session, lang catalog.Language) {
	s.Lock()
	l := lang
	s.Language = &l
	op := catalog.OperatorFor(lang)
	s.AssignedOperator = op
	s.AwaitingKeyboardInput = false
	s.State = models.StateProductRequest
	p, err := e.prompts.Build(prompt.KindProductRequest, s)
	s.Unlock()
	if err != nil {
		slog.Error("Workflow request prompt build failed", "user", s.UserID, "error", err)
		return
	}

	e.ledger.RetractAll(ctx, s, false)

	if _, err := e.ch.Send(ctx, s.UserID, p.Text, nil); err != nil {
		slog.Error("Workflow request prompt send failed", "user", s.UserID, "error", err)
	}
	slog.Info("Workflow language chosen", "user", s.UserID, "language", lang, "operator", op.Name)
}

// handleFreeText routes plain text by session state. While a selector is
// on screen the text is rejected with an ephemeral warning; after
// completion the user is pointed at their operator; in the product
// request state the text is stored verbatim and the service selector
// opens. Everything else is ignored.
func (e *Engine) handleFreeText(ctx context.Context, s *models.Session, text string) {
	s.Lock()
	state := s.State
	awaiting := s.AwaitingKeyboardInput
	s.Unlock()

	if state == models.StateCompleted {
		e.sendNotice(ctx, s.UserID, prompt.KindAskOperator, false)
		return
	}
	if awaiting {
		e.sendNotice(ctx, s.UserID, prompt.KindUseButtons, true)
		return
	}
	if state != models.StateProductRequest {
		slog.Debug("Workflow ignoring free text for state", "user", s.UserID, "state", state)
		return
	}

	s.Lock()
	s.ProductRequest = text
	p, err := e.prompts.Build(prompt.KindServiceSelect, s)
	s.Unlock()
	if err != nil {
		slog.Error("Workflow service prompt build failed", "user", s.UserID, "error", err)
		return
	}

	e.ledger.RetractAll(ctx, s, false)

	id, err := e.ch.Send(ctx, s.UserID, p.Text, p.Actions)
	if err != nil {
		slog.Error("Workflow service prompt send failed", "user", s.UserID, "error", err)
		return
	}

	s.Lock()
	s.State = models.StateServiceSelection
	s.AwaitingKeyboardInput = true
	e.ledger.SetActiveSelector(s, id)
	s.Unlock()
	slog.Info("Workflow product request stored", "user", s.UserID, "length", len(text))
}

// handleServiceToggled flips one service and re-renders the selector in
// place so the checkmarks reflect the new membership.
func (e *Engine) handleServiceToggled(ctx context.Context, s *models.Session, id catalog.ServiceID) {
	s.Lock()
	s.ToggleService(id)
	selected := s.SelectedServices[id]
	p, err := e.prompts.Build(prompt.KindServiceSelect, s)
	s.Unlock()
	if err != nil {
		slog.Error("Workflow service prompt rebuild failed", "user", s.UserID, "error", err)
		return
	}

	editedInPlace, err := e.ledger.ReplaceActiveSelector(ctx, s, p.Text, p.Actions)
	if err != nil {
		slog.Error("Workflow selector update failed", "user", s.UserID, "service", id, "error", err)
		return
	}
	slog.Debug("Workflow service toggled", "user", s.UserID, "service", id, "selected", selected, "editedInPlace", editedInPlace)
}

// handleServicesConfirmed moves to payment selection, or warns when
// nothing is selected yet (no transition in that case). The transition
// is committed only after the payment prompt is delivered, so a failed
// send leaves the session in service selection and the confirmation can
// simply be retried.
func (e *Engine) handleServicesConfirmed(ctx context.Context, s *models.Session) {
	s.Lock()
	empty := len(s.SelectedServices) == 0
	p, err := e.prompts.Build(prompt.KindPaymentSelect, s)
	s.Unlock()

	if empty {
		e.sendNotice(ctx, s.UserID, prompt.KindServicesEmpty, true)
		return
	}
	if err != nil {
		slog.Error("Workflow payment prompt build failed", "user", s.UserID, "error", err)
		return
	}

	e.ledger.RetractAll(ctx, s, true)

	id, err := e.ch.Send(ctx, s.UserID, p.Text, p.Actions)
	if err != nil {
		slog.Error("Workflow payment prompt send failed", "user", s.UserID, "error", err)
		return
	}

	s.Lock()
	s.State = models.StatePaymentSelection
	s.AwaitingKeyboardInput = true
	e.ledger.SetActiveSelector(s, id)
	s.Unlock()
	slog.Info("Workflow services confirmed", "user", s.UserID)
}

// handleBackToRequest leaves service selection backwards: selected
// services and payment are cleared, the selector is retracted, and the
// product request prompt is asked again.
func (e *Engine) handleBackToRequest(ctx context.Context, s *models.Session) {
	s.Lock()
	s.SelectedServices = make(map[catalog.ServiceID]bool)
	s.PaymentMethod = nil
	s.AwaitingKeyboardInput = false
	s.State = models.StateProductRequest
	p, err := e.prompts.Build(prompt.KindProductRequest, s)
	s.Unlock()
	if err != nil {
		slog.Error("Workflow request prompt build failed", "user", s.UserID, "error", err)
		return
	}

	e.ledger.RetractAll(ctx, s, true)

	if _, err := e.ch.Send(ctx, s.UserID, p.Text, nil); err != nil {
		slog.Error("Workflow request prompt send failed", "user", s.UserID, "error", err)
	}
	slog.Info("Workflow back to product request", "user", s.UserID)
}

// handlePaymentChosen completes the intake: summary, operator handoff,
// operator-connect prompt with the outbound link, and the closing note.
// The handoff and archive writes are fire-and-forget: their failure is
// logged and never surfaced to the user.
func (e *Engine) handlePaymentChosen(ctx context.Context, s *models.Session, id catalog.PaymentID) {
	s.Lock()
	pm := id
	s.PaymentMethod = &pm
	rec := models.IntakeRecord{
		UserID:         s.UserID,
		Language:       s.Lang(),
		Operator:       s.AssignedOperator.Name,
		ProductRequest: s.ProductRequest,
		Services:       s.ServiceList(),
		Payment:        id,
		CompletedAt:    time.Now(),
	}
	summary, err := e.prompts.Build(prompt.KindSummary, s)
	s.Unlock()
	if err != nil {
		slog.Error("Workflow summary build failed", "user", s.UserID, "error", err)
		return
	}

	e.ledger.RetractAll(ctx, s, true)

	if msgID, err := e.ch.Send(ctx, s.UserID, summary.Text, nil); err != nil {
		slog.Error("Workflow summary send failed", "user", s.UserID, "error", err)
	} else {
		s.Lock()
		e.ledger.MarkEphemeral(s, msgID)
		s.Unlock()
	}

	if e.handoff != nil {
		if err := e.handoff.Notify(ctx, rec); err != nil {
			slog.Error("Workflow operator handoff failed", "user", s.UserID, "operator", rec.Operator, "error", err)
		}
	}
	if e.archive != nil {
		if err := e.archive.SaveIntake(rec); err != nil {
			slog.Error("Workflow intake archive failed", "user", s.UserID, "error", err)
		}
	}

	for _, kind := range []prompt.Kind{prompt.KindOperatorConnect, prompt.KindClosing} {
		p, err := e.prompts.Build(kind, s)
		if err != nil {
			slog.Error("Workflow completion prompt build failed", "user", s.UserID, "kind", kind, "error", err)
			continue
		}
		msgID, err := e.ch.Send(ctx, s.UserID, p.Text, p.Actions)
		if err != nil {
			slog.Error("Workflow completion prompt send failed", "user", s.UserID, "kind", kind, "error", err)
			continue
		}
		s.Lock()
		e.ledger.MarkEphemeral(s, msgID)
		s.Unlock()
	}

	s.Lock()
	s.WorkflowCompleted = true
	s.State = models.StateCompleted
	s.AwaitingKeyboardInput = false
	s.Unlock()
	slog.Info("Workflow intake completed", "user", s.UserID, "payment", id, "operator", rec.Operator)
}

// handleBackToServices leaves payment selection backwards: the service
// selector reopens with the previous selections intact and payment is
// cleared. Committed only after the selector is delivered; a failed send
// leaves the session in payment selection.
func (e *Engine) handleBackToServices(ctx context.Context, s *models.Session) {
	e.ledger.RetractAll(ctx, s, true)

	s.Lock()
	p, err := e.prompts.Build(prompt.KindServiceSelect, s)
	s.Unlock()
	if err != nil {
		slog.Error("Workflow service prompt build failed", "user", s.UserID, "error", err)
		return
	}

	id, err := e.ch.Send(ctx, s.UserID, p.Text, p.Actions)
	if err != nil {
		slog.Error("Workflow service prompt send failed", "user", s.UserID, "error", err)
		return
	}

	s.Lock()
	s.PaymentMethod = nil
	s.State = models.StateServiceSelection
	s.AwaitingKeyboardInput = true
	e.ledger.SetActiveSelector(s, id)
	s.Unlock()
	slog.Info("Workflow back to service selection", "user", s.UserID)
}
