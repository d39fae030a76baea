package models

import (
	"testing"

	"github.com/zhenyakul/ghub-international/internal/catalog"
)

func TestParseToken_Valid(t *testing.T) {
	cases := []struct {
		token string
		want  Event
	}{
		{"lang_de", LanguageChosen{Language: catalog.LangGerman}},
		{"toggle_tuning", ServiceToggled{Service: catalog.ServiceTuning}},
		{"payment_eur", PaymentChosen{Payment: catalog.PaymentEUR}},
		{TokenConfirm, ServicesConfirmed{}},
		{TokenBackToRequest, BackToRequest{}},
		{TokenBackToPayment, BackToServices{}},
	}
	for _, tc := range cases {
		ev, ok := ParseToken(tc.token)
		if !ok {
			t.Errorf("ParseToken(%q) not recognized", tc.token)
			continue
		}
		if ev != tc.want {
			t.Errorf("ParseToken(%q) = %#v, want %#v", tc.token, ev, tc.want)
		}
	}
}

func TestParseToken_Unknown(t *testing.T) {
	for _, token := range []string{
		"", "lang_xx", "toggle_detailing", "payment_barter", "noise", "lang_", "confirm",
	} {
		if ev, ok := ParseToken(token); ok {
			t.Errorf("ParseToken(%q) unexpectedly recognized as %#v", token, ev)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for _, lang := range catalog.Languages() {
		ev, ok := ParseToken(LanguageToken(lang))
		if !ok || ev != (LanguageChosen{Language: lang}) {
			t.Errorf("language token round trip failed for %q", lang)
		}
	}
	for _, id := range catalog.Services() {
		ev, ok := ParseToken(ToggleToken(id))
		if !ok || ev != (ServiceToggled{Service: id}) {
			t.Errorf("toggle token round trip failed for %q", id)
		}
	}
	for _, id := range catalog.Payments() {
		ev, ok := ParseToken(PaymentToken(id))
		if !ok || ev != (PaymentChosen{Payment: id}) {
			t.Errorf("payment token round trip failed for %q", id)
		}
	}
}
