package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := clientIP(r); got != r.RemoteAddr {
		t.Fatalf("got %q", got)
	}

	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := clientIP(r); got != "10.0.0.2" {
		t.Fatalf("got %q", got)
	}

	// X-Forwarded-For wins over X-Real-IP.
	r.Header.Set("X-Forwarded-For", "10.0.0.1")
	if got := clientIP(r); got != "10.0.0.1" {
		t.Fatalf("got %q", got)
	}
}

func TestGenerateRequestID(t *testing.T) {
	a, b := generateRequestID(), generateRequestID()
	if !strings.HasPrefix(a, "req_") {
		t.Fatalf("id=%q", a)
	}
	if a == b {
		t.Fatalf("ids not unique: %q", a)
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  hello  ", "hello"},
		{"with\x00null", "withnull"},
		{"keep\ttabs", "keep\ttabs"},
		{"bell\x07gone", "bellgone"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := sanitizeInput(tc.in); got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)
	defer rl.stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d denied under limit", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("request over limit allowed")
	}
	// Other clients are counted separately.
	if !rl.allow("5.6.7.8") {
		t.Fatal("separate client denied")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1, 10*time.Millisecond)
	defer rl.stop()

	if !rl.allow("1.2.3.4") {
		t.Fatal("first request denied")
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("second request in window allowed")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.allow("1.2.3.4") {
		t.Fatal("request after window reset denied")
	}
}
