package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestLookup_KnownLanguage(t *testing.T) {
	text, err := Lookup(LangGerman, KeyRequestPrompt, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Fahrzeug") {
		t.Errorf("expected German request prompt, got %q", text)
	}
}

func TestLookup_UnknownLanguageFallsBack(t *testing.T) {
	text, err := Lookup(Language("xx"), KeyRequestPrompt, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := Lookup(DefaultLanguage, KeyRequestPrompt, nil)
	if text != want {
		t.Errorf("expected fallback text %q, got %q", want, text)
	}
}

func TestLookup_KeyGapFallsBackToDefault(t *testing.T) {
	// The bilingual welcome is only defined for the fallback language.
	text, err := Lookup(LangGerman, KeyWelcome, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "GHUB International") {
		t.Errorf("expected fallback welcome, got %q", text)
	}
}

func TestLookup_MissingKey(t *testing.T) {
	_, err := Lookup(DefaultLanguage, StringKey("no.such.key"), nil)
	if !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestLookup_Interpolation(t *testing.T) {
	text, err := Lookup(LangEnglish, KeyOperatorConnect, map[string]string{"operator": "Jacob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Jacob") {
		t.Errorf("expected interpolated operator name, got %q", text)
	}
}

func TestLookup_UnresolvedPlaceholderStaysLiteral(t *testing.T) {
	text, err := Lookup(LangEnglish, KeySummary, map[string]string{"request": "BMW M3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "BMW M3") {
		t.Errorf("expected request substituted, got %q", text)
	}
	if !strings.Contains(text, "{services}") || !strings.Contains(text, "{payment}") {
		t.Errorf("expected unresolved placeholders left literal, got %q", text)
	}
}

func TestFallbackLanguageCoversEveryKey(t *testing.T) {
	def := translations[DefaultLanguage]
	for lang, table := range translations {
		for key := range table {
			if _, ok := def[key]; !ok {
				t.Errorf("key %q of language %q missing from fallback language", key, lang)
			}
		}
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 5 {
		t.Fatalf("expected 5 languages, got %d", len(langs))
	}
	for _, l := range langs {
		if !IsLanguage(l) {
			t.Errorf("language %q not recognized by IsLanguage", l)
		}
		if LanguageName(l) == "" {
			t.Errorf("language %q has no display name", l)
		}
	}
}

func TestOperatorFor(t *testing.T) {
	if op := OperatorFor(LangGerman); op.Name != "Jacob" {
		t.Errorf("expected Jacob for German, got %q", op.Name)
	}
	def := OperatorFor(DefaultLanguage)
	if op := OperatorFor(Language("xx")); op != def {
		t.Errorf("expected default operator for unknown language, got %+v", op)
	}
}

func TestCatalogMembership(t *testing.T) {
	if !IsService(ServiceTuning) || !IsService(ServiceCustoms) {
		t.Error("expected tuning and customs to be known services")
	}
	if IsService(ServiceID("detailing")) {
		t.Error("unexpected service admitted")
	}
	if !IsPayment(PaymentEUR) || !IsPayment(PaymentCrypto) {
		t.Error("expected eur and crypto to be known payments")
	}
	if IsPayment(PaymentID("barter")) {
		t.Error("unexpected payment admitted")
	}
	if PaymentLabel(PaymentEUR) != "EUR" {
		t.Errorf("expected EUR label, got %q", PaymentLabel(PaymentEUR))
	}
}
