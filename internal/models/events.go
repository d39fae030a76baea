package models

import (
	"strings"

	"github.com/zhenyakul/ghub-international/internal/catalog"
)

// Event is one inbound user action, decoded once at the transport
// boundary into a closed set of variants. Handlers never re-parse raw
// tokens.
type Event interface {
	isEvent()
}

// StartCommand is the /start command resetting the conversation.
type StartCommand struct{}

// FreeText is a plain text message, accepted verbatim.
type FreeText struct {
	Text string
}

// LanguageChosen carries a language selection button press.
type LanguageChosen struct {
	Language catalog.Language
}

// ServiceToggled flips one service in the selection set.
type ServiceToggled struct {
	Service catalog.ServiceID
}

// ServicesConfirmed confirms the current service selection.
type ServicesConfirmed struct{}

// BackToRequest returns from service selection to the product request.
type BackToRequest struct{}

// PaymentChosen carries a payment method button press.
type PaymentChosen struct {
	Payment catalog.PaymentID
}

// BackToServices returns from payment selection to service selection.
type BackToServices struct{}

func (StartCommand) isEvent()      {}
func (FreeText) isEvent()          {}
func (LanguageChosen) isEvent()    {}
func (ServiceToggled) isEvent()    {}
func (ServicesConfirmed) isEvent() {}
func (BackToRequest) isEvent()     {}
func (PaymentChosen) isEvent()     {}
func (BackToServices) isEvent()    {}

// Update pairs an event with the user it came from.
type Update struct {
	UserID string
	Event  Event
}

// Callback token layout used in inline keyboards.
const (
	tokenLangPrefix    = "lang_"
	tokenTogglePrefix  = "toggle_"
	tokenPaymentPrefix = "payment_"
	TokenConfirm       = "confirm_services"
	TokenBackToRequest = "back_to_request"
	TokenBackToPayment = "back_to_services"
)

// LanguageToken builds the callback token for a language button.
func LanguageToken(lang catalog.Language) string {
	return tokenLangPrefix + string(lang)
}

// ToggleToken builds the callback token for a service toggle button.
func ToggleToken(id catalog.ServiceID) string {
	return tokenTogglePrefix + string(id)
}

// PaymentToken builds the callback token for a payment button.
func PaymentToken(id catalog.PaymentID) string {
	return tokenPaymentPrefix + string(id)
}

// ParseToken decodes a callback token into its event. Unknown or
// malformed tokens (stale buttons from an old prompt) return ok=false
// and are ignored by the caller rather than raising an error.
func ParseToken(token string) (Event, bool) {
	switch {
	case token == TokenConfirm:
		return ServicesConfirmed{}, true
	case token == TokenBackToRequest:
		return BackToRequest{}, true
	case token == TokenBackToPayment:
		return BackToServices{}, true
	case strings.HasPrefix(token, tokenLangPrefix):
		lang := catalog.Language(strings.TrimPrefix(token, tokenLangPrefix))
		if !catalog.IsLanguage(lang) {
			return nil, false
		}
		return LanguageChosen{Language: lang}, true
	case strings.HasPrefix(token, tokenTogglePrefix):
		id := catalog.ServiceID(strings.TrimPrefix(token, tokenTogglePrefix))
		if !catalog.IsService(id) {
			return nil, false
		}
		return ServiceToggled{Service: id}, true
	case strings.HasPrefix(token, tokenPaymentPrefix):
		id := catalog.PaymentID(strings.TrimPrefix(token, tokenPaymentPrefix))
		if !catalog.IsPayment(id) {
			return nil, false
		}
		return PaymentChosen{Payment: id}, true
	default:
		return nil, false
	}
}
