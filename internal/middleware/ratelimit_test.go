package middleware

import (
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(t *testing.T, opts Options) (*IPRateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts.Now = clock.now
	rl := NewIPRateLimiter(opts)
	t.Cleanup(rl.Close)
	return rl, clock
}

func TestConnectionLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, Options{MaxConnsPerIP: 2, MsgRate: 10})
	if !rl.ConnectAllowed("1.1.1.1") || !rl.ConnectAllowed("1.1.1.1") {
		t.Fatal("first two connections rejected")
	}
	if rl.ConnectAllowed("1.1.1.1") {
		t.Fatal("third connection allowed")
	}
	if !rl.ConnectAllowed("2.2.2.2") {
		t.Fatal("limit leaked across IPs")
	}
	rl.Disconnect("1.1.1.1")
	if rl.Connections("1.1.1.1") != 1 || !rl.ConnectAllowed("1.1.1.1") {
		t.Fatal("disconnect did not free a slot")
	}
	rl.Disconnect("9.9.9.9")
}

func TestMessageTokenBucket(t *testing.T) {
	rl, clock := newTestLimiter(t, Options{MaxConnsPerIP: 1, MsgRate: 3, MsgWindow: time.Second})
	rl.ConnectAllowed("1.1.1.1")
	for i := 0; i < 3; i++ {
		if !rl.MessageAllowed("1.1.1.1") {
			t.Fatalf("message %d rejected", i)
		}
	}
	if rl.MessageAllowed("1.1.1.1") {
		t.Fatal("bucket did not run dry")
	}
	clock.t = clock.t.Add(999 * time.Millisecond)
	if rl.MessageAllowed("1.1.1.1") {
		t.Fatal("refilled before the window elapsed")
	}
	clock.t = clock.t.Add(5 * time.Second)
	for i := 0; i < 3; i++ {
		if !rl.MessageAllowed("1.1.1.1") {
			t.Fatalf("message %d after refill rejected", i)
		}
	}
	if rl.MessageAllowed("1.1.1.1") {
		t.Fatal("refill exceeded the bucket size")
	}
}

func TestSweepDropsIdleVisitors(t *testing.T) {
	rl, _ := newTestLimiter(t, Options{MaxConnsPerIP: 1, MsgRate: 1})
	rl.ConnectAllowed("1.1.1.1")
	rl.MessageAllowed("2.2.2.2")
	rl.sweep()
	rl.mu.Lock()
	_, kept := rl.visitors["1.1.1.1"]
	_, dropped := rl.visitors["2.2.2.2"]
	rl.mu.Unlock()
	if !kept || dropped {
		t.Fatalf("kept=%v dropped=%v", kept, dropped)
	}
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws", nil)
	r.RemoteAddr = "10.0.0.5:4321"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	strict, _ := newTestLimiter(t, Options{MaxConnsPerIP: 1, MsgRate: 1})
	if got := strict.RealIP(r); got != "10.0.0.5" {
		t.Errorf("untrusted RealIP = %q", got)
	}
	proxied, _ := newTestLimiter(t, Options{MaxConnsPerIP: 1, MsgRate: 1, TrustProxy: true})
	if got := proxied.RealIP(r); got != "203.0.113.7" {
		t.Errorf("trusted RealIP = %q", got)
	}
	if got := RealIP(r); got != "203.0.113.7" {
		t.Errorf("package RealIP = %q", got)
	}
	r.Header.Del("X-Forwarded-For")
	if got := proxied.RealIP(r); got != "10.0.0.5" {
		t.Errorf("trusted RealIP without header = %q", got)
	}
}
