package admission

import (
	"testing"
	"time"
)

func TestRateLimiter_CeilingAndFirstReject(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		admitted, firstReject := rl.Admit("u1")
		if !admitted || firstReject {
			t.Fatalf("request %d: expected admission, got admitted=%v firstReject=%v", i+1, admitted, firstReject)
		}
	}
	admitted, firstReject := rl.Admit("u1")
	if admitted || !firstReject {
		t.Fatalf("expected first rejection with warning, got admitted=%v firstReject=%v", admitted, firstReject)
	}
	admitted, firstReject = rl.Admit("u1")
	if admitted || firstReject {
		t.Fatalf("expected silent rejection, got admitted=%v firstReject=%v", admitted, firstReject)
	}
}

func TestRateLimiter_PerUserIsolation(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1)

	rl.Admit("u1")
	if admitted, _ := rl.Admit("u1"); admitted {
		t.Fatal("expected u1 over ceiling")
	}
	if admitted, _ := rl.Admit("u2"); !admitted {
		t.Fatal("expected u2 unaffected by u1's window")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.Admit("u1")
	if admitted, _ := rl.Admit("u1"); admitted {
		t.Fatal("expected rejection within window")
	}

	now = now.Add(time.Minute + time.Second)
	admitted, firstReject := rl.Admit("u1")
	if !admitted || firstReject {
		t.Fatalf("expected fresh window after expiry, got admitted=%v firstReject=%v", admitted, firstReject)
	}
	// The warned flag must reset with the window too.
	if admitted, _ := rl.Admit("u1"); admitted {
		t.Fatal("expected rejection again at new window ceiling")
	}
	if _, firstReject := rl.Admit("u1"); firstReject {
		t.Fatal("warning already sent this window")
	}
}

func TestSessionStore_TouchCreatesAndRefreshes(t *testing.T) {
	st := NewSessionStore()

	if _, ok := st.Get("u1"); ok {
		t.Fatal("expected no session before first contact")
	}
	s := st.Touch("u1")
	if s == nil || st.Len() != 1 {
		t.Fatal("expected session created on first touch")
	}
	s.Lock()
	s.LastActivity = time.Now().Add(-time.Hour)
	s.Unlock()

	again := st.Touch("u1")
	if again != s {
		t.Fatal("expected the same session instance")
	}
	s.Lock()
	fresh := time.Since(s.LastActivity) < time.Minute
	s.Unlock()
	if !fresh {
		t.Error("expected liveness timestamp refreshed")
	}
}

func TestController_AdmitCreatesSession(t *testing.T) {
	c := NewController(WithCeiling(2), WithWindow(time.Minute))

	s, admitted, firstReject := c.Admit("u1")
	if !admitted || firstReject || s == nil {
		t.Fatalf("expected admission with session, got %v %v %v", s, admitted, firstReject)
	}
	c.Admit("u1")
	s, admitted, firstReject = c.Admit("u1")
	if admitted || !firstReject || s != nil {
		t.Fatalf("expected first rejection without session, got %v %v %v", s, admitted, firstReject)
	}
}

func TestController_SweepRemovesIdleKeepsActive(t *testing.T) {
	c := NewController(WithSessionTTL(time.Hour))

	idle, _, _ := c.Admit("idle")
	c.Admit("active")

	idle.Lock()
	idle.LastActivity = time.Now().Add(-2 * time.Hour)
	idle.Unlock()

	if removed := c.Sweep(); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := c.Sessions.Get("idle"); ok {
		t.Error("expected idle session removed")
	}
	if _, ok := c.Sessions.Get("active"); !ok {
		t.Error("expected active session kept")
	}
	// Rate-limit accounting goes with the session.
	if _, ok := c.limiter.windows["idle"]; ok {
		t.Error("expected limiter window forgotten for swept session")
	}
}
