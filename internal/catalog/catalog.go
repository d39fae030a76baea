// Package catalog provides the static lookup tables for the intake bot:
// supported languages, selectable services and payment methods, the
// operator roster, and localized display strings with named-placeholder
// interpolation.
//
// Everything in this package is read-only data; lookups are pure
// functions of their inputs.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Language identifies one of the supported locales.
type Language string

const (
	LangEnglish   Language = "en"
	LangGerman    Language = "de"
	LangRussian   Language = "ru"
	LangUkrainian Language = "uk"
	LangPolish    Language = "pl"
)

// DefaultLanguage is the fallback for unknown languages and the language
// used before a user has made a selection.
const DefaultLanguage = LangEnglish

// ServiceID identifies a selectable service.
type ServiceID string

const (
	ServiceTuning     ServiceID = "tuning"
	ServiceCustoms    ServiceID = "customs"
	ServiceDelivery   ServiceID = "delivery"
	ServiceInsurance  ServiceID = "insurance"
	ServiceInspection ServiceID = "inspection"
)

// PaymentID identifies a payment method.
type PaymentID string

const (
	PaymentEUR    PaymentID = "eur"
	PaymentUSD    PaymentID = "usd"
	PaymentCrypto PaymentID = "crypto"
)

// ErrMissingTranslation is returned when a string key is unknown even for
// the fallback language. This indicates a misconfigured catalog, not a
// runtime condition.
var ErrMissingTranslation = errors.New("missing translation key")

// Operator is the human agent assigned to a language.
type Operator struct {
	Name   string
	Handle string // transport handle used for the contact link
}

var languages = []Language{LangEnglish, LangGerman, LangRussian, LangUkrainian, LangPolish}

var languageNames = map[Language]string{
	LangEnglish:   "English 🇬🇧",
	LangGerman:    "Deutsch 🇩🇪",
	LangRussian:   "Русский 🇷🇺",
	LangUkrainian: "Українська 🇺🇦",
	LangPolish:    "Polski 🇵🇱",
}

var services = []ServiceID{ServiceTuning, ServiceCustoms, ServiceDelivery, ServiceInsurance, ServiceInspection}

var payments = []PaymentID{PaymentEUR, PaymentUSD, PaymentCrypto}

var paymentLabels = map[PaymentID]string{
	PaymentEUR:    "EUR",
	PaymentUSD:    "USD",
	PaymentCrypto: "Crypto",
}

var operators = map[Language]Operator{
	LangEnglish:   {Name: "Daniel", Handle: "ghub_daniel"},
	LangGerman:    {Name: "Jacob", Handle: "ghub_jacob"},
	LangRussian:   {Name: "Artem", Handle: "ghub_artem"},
	LangUkrainian: {Name: "Olena", Handle: "ghub_olena"},
	LangPolish:    {Name: "Marek", Handle: "ghub_marek"},
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Services returns the selectable services in display order.
func Services() []ServiceID {
	out := make([]ServiceID, len(services))
	copy(out, services)
	return out
}

// Payments returns the payment methods in display order.
func Payments() []PaymentID {
	out := make([]PaymentID, len(payments))
	copy(out, payments)
	return out
}

// IsLanguage reports whether code is a supported language.
func IsLanguage(code Language) bool {
	_, ok := languageNames[code]
	return ok
}

// IsService reports whether id is a known service.
func IsService(id ServiceID) bool {
	for _, s := range services {
		if s == id {
			return true
		}
	}
	return false
}

// IsPayment reports whether id is a known payment method.
func IsPayment(id PaymentID) bool {
	_, ok := paymentLabels[id]
	return ok
}

// LanguageName returns the native display name for a language button.
func LanguageName(lang Language) string {
	return languageNames[lang]
}

// PaymentLabel returns the display label for a payment method ("EUR").
func PaymentLabel(id PaymentID) string {
	return paymentLabels[id]
}

// OperatorFor returns the operator assigned to a language. Unknown
// languages get the default language's operator.
func OperatorFor(lang Language) Operator {
	if op, ok := operators[lang]; ok {
		return op
	}
	return operators[DefaultLanguage]
}

// Lookup resolves a localized string. Unknown languages fall back to
// DefaultLanguage; a key missing for the fallback language returns
// ErrMissingTranslation. Named {placeholder} occurrences are substituted
// from params; a placeholder with no matching param is left literally in
// place so a missing parameter never blocks message delivery.
func Lookup(lang Language, key StringKey, params map[string]string) (string, error) {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLanguage]
	}
	text, ok := table[key]
	if !ok {
		// Per-language gap: fall back to the default language.
		text, ok = translations[DefaultLanguage][key]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingTranslation, key)
		}
	}
	return interpolate(text, params), nil
}

// ServiceName resolves the localized display name of a service.
func ServiceName(lang Language, id ServiceID) string {
	name, err := Lookup(lang, StringKey("service."+string(id)), nil)
	if err != nil {
		return string(id)
	}
	return name
}

func interpolate(text string, params map[string]string) string {
	if len(params) == 0 {
		return text
	}
	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}
