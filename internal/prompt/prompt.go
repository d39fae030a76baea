// Package prompt builds outbound prompts from workflow state. Building
// is a pure function of (kind, session): it composes catalog lookups
// into text plus an action set and performs no sends and no session
// mutation.
package prompt

import (
	"fmt"
	"log/slog"

	"github.com/zhenyakul/ghub-international/internal/catalog"
	"github.com/zhenyakul/ghub-international/internal/models"
)

// Kind selects which prompt to build.
type Kind string

const (
	KindWelcome         Kind = "welcome"
	KindLanguageSelect  Kind = "language_select"
	KindProductRequest  Kind = "product_request"
	KindServiceSelect   Kind = "service_select"
	KindPaymentSelect   Kind = "payment_select"
	KindSummary         Kind = "summary"
	KindOperatorConnect Kind = "operator_connect"
	KindClosing         Kind = "closing"
	KindUseButtons      Kind = "use_buttons"
	KindServicesEmpty   Kind = "services_empty"
	KindAskOperator     Kind = "ask_operator"
	KindRateLimited     Kind = "rate_limited"
	KindGenericError    Kind = "generic_error"
)

// Prompt is an outbound message body plus its selectable actions.
type Prompt struct {
	Text    string
	Actions []models.Action
}

// Builder composes catalog lookups into prompts.
type Builder struct{}

// NewBuilder creates a prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build produces the prompt of the given kind for the session's
// language. The only error source is a catalog key missing for the
// fallback language, which is a configuration defect.
func (b *Builder) Build(kind Kind, s *models.Session) (Prompt, error) {
	lang := s.Lang()
	switch kind {
	case KindWelcome:
		return b.static(catalog.DefaultLanguage, catalog.KeyWelcome)
	case KindLanguageSelect:
		return b.languageSelect(lang)
	case KindProductRequest:
		return b.static(lang, catalog.KeyRequestPrompt)
	case KindServiceSelect:
		return b.serviceSelect(lang, s)
	case KindPaymentSelect:
		return b.paymentSelect(lang)
	case KindSummary:
		return b.summary(lang, s)
	case KindOperatorConnect:
		return b.operatorConnect(lang, s.AssignedOperator)
	case KindClosing:
		return b.static(lang, catalog.KeyClosing)
	case KindUseButtons:
		return b.static(lang, catalog.KeyUseButtons)
	case KindServicesEmpty:
		return b.static(lang, catalog.KeyServicesEmpty)
	case KindAskOperator:
		return b.static(lang, catalog.KeyAskOperator)
	case KindRateLimited:
		return b.static(lang, catalog.KeyRateLimited)
	case KindGenericError:
		return b.static(lang, catalog.KeyGenericError)
	default:
		return Prompt{}, fmt.Errorf("unknown prompt kind %q", kind)
	}
}

func (b *Builder) static(lang catalog.Language, key catalog.StringKey) (Prompt, error) {
	text, err := catalog.Lookup(lang, key, nil)
	if err != nil {
		slog.Error("Prompt catalog lookup failed", "key", key, "language", lang, "error", err)
		return Prompt{}, err
	}
	return Prompt{Text: text}, nil
}

func (b *Builder) languageSelect(lang catalog.Language) (Prompt, error) {
	p, err := b.static(lang, catalog.KeyLanguagePrompt)
	if err != nil {
		return Prompt{}, err
	}
	for _, l := range catalog.Languages() {
		p.Actions = append(p.Actions, models.Action{
			Label: catalog.LanguageName(l),
			Token: models.LanguageToken(l),
		})
	}
	return p, nil
}

// serviceSelect renders the intro and title strings with one toggle
// button per service; a checkmark reflects current membership in the
// selection set.
func (b *Builder) serviceSelect(lang catalog.Language, s *models.Session) (Prompt, error) {
	intro, err := catalog.Lookup(lang, catalog.KeyServicesIntro, nil)
	if err != nil {
		return Prompt{}, err
	}
	title, err := catalog.Lookup(lang, catalog.KeyServicesTitle, nil)
	if err != nil {
		return Prompt{}, err
	}
	p := Prompt{Text: intro + "\n\n" + title}
	for _, id := range catalog.Services() {
		label := catalog.ServiceName(lang, id)
		if s.SelectedServices[id] {
			label = "✅ " + label
		}
		p.Actions = append(p.Actions, models.Action{Label: label, Token: models.ToggleToken(id)})
	}
	confirm, err := catalog.Lookup(lang, catalog.KeyServicesConfirm, nil)
	if err != nil {
		return Prompt{}, err
	}
	back, err := catalog.Lookup(lang, catalog.KeyBack, nil)
	if err != nil {
		return Prompt{}, err
	}
	p.Actions = append(p.Actions,
		models.Action{Label: confirm, Token: models.TokenConfirm},
		models.Action{Label: back, Token: models.TokenBackToRequest},
	)
	return p, nil
}

func (b *Builder) paymentSelect(lang catalog.Language) (Prompt, error) {
	p, err := b.static(lang, catalog.KeyPaymentPrompt)
	if err != nil {
		return Prompt{}, err
	}
	for _, id := range catalog.Payments() {
		p.Actions = append(p.Actions, models.Action{
			Label: catalog.PaymentLabel(id),
			Token: models.PaymentToken(id),
		})
	}
	back, err := catalog.Lookup(lang, catalog.KeyBack, nil)
	if err != nil {
		return Prompt{}, err
	}
	p.Actions = append(p.Actions, models.Action{Label: back, Token: models.TokenBackToPayment})
	return p, nil
}

func (b *Builder) summary(lang catalog.Language, s *models.Session) (Prompt, error) {
	var payment string
	if s.PaymentMethod != nil {
		payment = catalog.PaymentLabel(*s.PaymentMethod)
	}
	rec := models.IntakeRecord{Language: lang, Services: s.ServiceList()}
	text, err := catalog.Lookup(lang, catalog.KeySummary, map[string]string{
		"request":  s.ProductRequest,
		"services": rec.ServiceNames(),
		"payment":  payment,
	})
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{Text: text}, nil
}

// operatorConnect renders the handoff prompt with an outbound link
// action pointing at the assigned operator's transport handle.
func (b *Builder) operatorConnect(lang catalog.Language, op catalog.Operator) (Prompt, error) {
	params := map[string]string{"operator": op.Name}
	text, err := catalog.Lookup(lang, catalog.KeyOperatorConnect, params)
	if err != nil {
		return Prompt{}, err
	}
	label, err := catalog.Lookup(lang, catalog.KeyOperatorButton, params)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Text: text,
		Actions: []models.Action{
			{Label: label, URL: "https://t.me/" + op.Handle},
		},
	}, nil
}
