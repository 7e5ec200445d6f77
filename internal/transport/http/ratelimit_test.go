package http

import "testing"

func TestRateLimiterDisabled(t *testing.T) {
	r := newRateLimiter(0)
	for i := 0; i < 100; i++ {
		if !r.allow() {
			t.Fatal("disabled limiter must always allow")
		}
	}
}

func TestRateLimiterEnforcesLimit(t *testing.T) {
	r := newRateLimiter(3)
	for i := 0; i < 3; i++ {
		if !r.allow() {
			t.Fatalf("message %d should be allowed", i+1)
		}
	}
	if r.allow() {
		t.Fatal("message over the limit must be refused")
	}
}

func TestRateLimiterNilAllows(t *testing.T) {
	var r *rateLimiter
	if !r.allow() {
		t.Fatal("nil limiter must allow")
	}
	r.startReset(nil) // must not panic
}
