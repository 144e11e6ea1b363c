package middleware

import (
	"testing"
)

func TestIPRateLimiter_BurstThenBlock(t *testing.T) {
	// 1 req/s with a burst of 3
	l := NewIPRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("request over burst should be blocked")
	}

	// a different client has its own bucket
	if !l.Allow("10.0.0.2") {
		t.Error("separate IP should not share the exhausted bucket")
	}
}

func TestIPRateLimiter_Defaults(t *testing.T) {
	l := NewIPRateLimiter(0, 0)
	if !l.Allow("10.0.0.1") {
		t.Error("limiter with defaulted settings should allow the first request")
	}
}
