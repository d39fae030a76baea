// Package models defines the core data structures for the GHUB intake
// bot: the per-user session, the closed set of inbound events, and the
// intake record handed to operators.
package models

import (
	"sync"
	"time"

	"github.com/zhenyakul/ghub-international/internal/catalog"
)

// State identifies a step of the intake workflow.
type State string

const (
	// StateInit is the state of a freshly created session, before /start.
	StateInit State = "init"
	// StateLanguageSelection waits for the user to pick a language.
	StateLanguageSelection State = "language_selection"
	// StateProductRequest waits for the free-text vehicle request.
	StateProductRequest State = "product_request"
	// StateServiceSelection waits for service toggles and confirmation.
	StateServiceSelection State = "service_selection"
	// StatePaymentSelection waits for the payment method choice.
	StatePaymentSelection State = "payment_selection"
	// StateCompleted is terminal; the record has been handed to an operator.
	StateCompleted State = "completed"
)

// Session holds the conversation state and collected answers for one
// user. It is created lazily on first contact and mutated only under its
// own lock; the workflow engine releases the lock around network calls
// and re-acquires it to commit resulting message ids.
type Session struct {
	mu sync.Mutex

	UserID string
	State  State
	// Language is nil until the user has made a selection, which keeps
	// "never selected" distinguishable from any concrete value.
	Language         *catalog.Language
	AssignedOperator catalog.Operator
	ProductRequest   string
	SelectedServices map[catalog.ServiceID]bool
	PaymentMethod    *catalog.PaymentID

	// ActiveSelectorMessageID is the single message currently bearing an
	// interactive keyboard, nil when none is on screen.
	ActiveSelectorMessageID *string
	// PendingRetractionIDs are message ids slated for deletion before the
	// next prompt is shown.
	PendingRetractionIDs []string

	AwaitingKeyboardInput bool
	// WorkflowCompleted is monotonic: once set it never reverts within
	// the session's lifetime.
	WorkflowCompleted bool

	LastActivity time.Time
}

// NewSession creates a session in the initial state.
func NewSession(userID string) *Session {
	return &Session{
		UserID:           userID,
		State:            StateInit,
		SelectedServices: make(map[catalog.ServiceID]bool),
		LastActivity:     time.Now(),
	}
}

// Lock acquires the session's exclusive lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's exclusive lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Reset returns the session to its initial collected-data state while
// keeping identity, liveness and the completion marker. Pending message
// bookkeeping is kept so stale prompts can still be retracted.
func (s *Session) Reset() {
	s.State = StateInit
	s.Language = nil
	s.AssignedOperator = catalog.Operator{}
	s.ProductRequest = ""
	s.SelectedServices = make(map[catalog.ServiceID]bool)
	s.PaymentMethod = nil
	s.AwaitingKeyboardInput = false
}

// Lang returns the selected language, or the catalog default if none has
// been chosen yet.
func (s *Session) Lang() catalog.Language {
	if s.Language == nil {
		return catalog.DefaultLanguage
	}
	return *s.Language
}

// ToggleService flips membership of id in the selected-services set.
func (s *Session) ToggleService(id catalog.ServiceID) {
	if s.SelectedServices[id] {
		delete(s.SelectedServices, id)
	} else {
		s.SelectedServices[id] = true
	}
}

// ServiceList returns the selected services in catalog display order.
func (s *Session) ServiceList() []catalog.ServiceID {
	var out []catalog.ServiceID
	for _, id := range catalog.Services() {
		if s.SelectedServices[id] {
			out = append(out, id)
		}
	}
	return out
}
