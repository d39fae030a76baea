package models

import (
	"testing"

	"github.com/zhenyakul/ghub-international/internal/catalog"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("42")
	if s.State != StateInit {
		t.Errorf("expected init state, got %q", s.State)
	}
	if s.Language != nil {
		t.Error("expected language unset")
	}
	if s.Lang() != catalog.DefaultLanguage {
		t.Errorf("expected default language, got %q", s.Lang())
	}
	if s.PaymentMethod != nil {
		t.Error("expected payment unset")
	}
	if s.LastActivity.IsZero() {
		t.Error("expected liveness timestamp set")
	}
}

func TestToggleService_DoubleToggleRestores(t *testing.T) {
	s := NewSession("42")
	s.SelectedServices[catalog.ServiceCustoms] = true

	s.ToggleService(catalog.ServiceTuning)
	if !s.SelectedServices[catalog.ServiceTuning] {
		t.Fatal("expected tuning selected after first toggle")
	}
	s.ToggleService(catalog.ServiceTuning)
	if s.SelectedServices[catalog.ServiceTuning] {
		t.Fatal("expected tuning deselected after second toggle")
	}
	if !s.SelectedServices[catalog.ServiceCustoms] {
		t.Error("expected unrelated selection untouched")
	}
}

func TestServiceList_CatalogOrder(t *testing.T) {
	s := NewSession("42")
	s.ToggleService(catalog.ServiceCustoms)
	s.ToggleService(catalog.ServiceTuning)

	got := s.ServiceList()
	want := []catalog.ServiceID{catalog.ServiceTuning, catalog.ServiceCustoms}
	if len(got) != len(want) {
		t.Fatalf("expected %d services, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSession("42")
	lang := catalog.LangGerman
	s.Language = &lang
	s.AssignedOperator = catalog.OperatorFor(lang)
	s.ProductRequest = "BMW M3"
	s.ToggleService(catalog.ServiceTuning)
	pm := catalog.PaymentEUR
	s.PaymentMethod = &pm
	s.State = StateCompleted
	s.WorkflowCompleted = true
	s.PendingRetractionIDs = []string{"m1"}

	s.Reset()

	if s.State != StateInit {
		t.Errorf("expected init state after reset, got %q", s.State)
	}
	if s.Language != nil || s.PaymentMethod != nil || s.ProductRequest != "" {
		t.Error("expected collected data cleared")
	}
	if len(s.SelectedServices) != 0 {
		t.Error("expected services cleared")
	}
	if !s.WorkflowCompleted {
		t.Error("completion marker must stay set within the session lifetime")
	}
	if len(s.PendingRetractionIDs) != 1 {
		t.Error("pending retractions must survive a reset so stale prompts can still be cleaned up")
	}
}
