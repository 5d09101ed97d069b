// ABOUTME: Unit tests for rate limiting middleware
// ABOUTME: Tests core limiter, key extraction, and middleware factory

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// frozen pins the limiter clock so refill never interferes with counting
func frozen(rl *RateLimiter) *time.Time {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return &now
}

// --- RateLimiter core tests ---

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	frozen(rl)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("test-key")
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	frozen(rl)

	rl.Allow("test-key")
	rl.Allow("test-key")

	allowed, retryAfter := rl.Allow("test-key")
	if allowed {
		t.Fatal("Third request should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("Expected retryAfter between 0 and 60s, got %v", retryAfter)
	}
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	frozen(rl)

	allowed, _ := rl.Allow("key-a")
	if !allowed {
		t.Fatal("First request for key-a should be allowed")
	}

	allowed, _ = rl.Allow("key-b")
	if !allowed {
		t.Fatal("First request for key-b should be allowed (separate quota)")
	}

	allowed, _ = rl.Allow("key-a")
	if allowed {
		t.Fatal("Second request for key-a should be rejected")
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := frozen(rl)

	if allowed, _ := rl.Allow("test-key"); !allowed {
		t.Fatal("First request should be allowed")
	}
	if allowed, _ := rl.Allow("test-key"); allowed {
		t.Fatal("Second request should be rejected")
	}

	*now = now.Add(time.Minute)

	if allowed, _ := rl.Allow("test-key"); !allowed {
		t.Fatal("Request after refill should be allowed")
	}
}

func TestRateLimiter_RejectionDoesNotConsume(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := frozen(rl)

	rl.Allow("test-key")
	rl.Allow("test-key")
	for i := 0; i < 5; i++ {
		rl.Allow("test-key")
	}

	// one token refills every 30s regardless of the rejected attempts
	*now = now.Add(30 * time.Second)
	if allowed, _ := rl.Allow("test-key"); !allowed {
		t.Fatal("Rejected requests should not delay the refill")
	}
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(100, time.Minute)
	frozen(rl)

	var wg sync.WaitGroup
	allowed := make([]bool, 200)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			allowed[idx], _ = rl.Allow("concurrent-key")
		}(i)
	}

	wg.Wait()

	allowedCount := 0
	for _, a := range allowed {
		if a {
			allowedCount++
		}
	}

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestRateLimiter_IdleEntriesSwept(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := frozen(rl)

	for i := 0; i < 5; i++ {
		rl.Allow(fmt.Sprintf("stale-%d", i))
	}

	*now = now.Add(idleAfter + time.Minute)

	// the 100th new bucket triggers a sweep
	for i := 0; i < 95; i++ {
		rl.Allow(fmt.Sprintf("fresh-%d", i))
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for i := 0; i < 5; i++ {
		if _, ok := rl.limiters[fmt.Sprintf("stale-%d", i)]; ok {
			t.Errorf("Expected stale-%d to be swept", i)
		}
	}
	if len(rl.limiters) != 95 {
		t.Errorf("Expected 95 live entries, got %d", len(rl.limiters))
	}
}

func TestRateLimiter_ConcurrentMultiKey(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	frozen(rl)
	keys := []string{"key-a", "key-b", "key-c", "key-d"}

	var wg sync.WaitGroup
	results := make(map[string]int)
	var mu sync.Mutex

	for _, key := range keys {
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(k string) {
				defer wg.Done()
				allowed, _ := rl.Allow(k)
				if allowed {
					mu.Lock()
					results[k]++
					mu.Unlock()
				}
			}(key)
		}
	}

	wg.Wait()

	for _, key := range keys {
		if results[key] != 5 {
			t.Errorf("Key %q: expected 5 allowed, got %d", key, results[key])
		}
	}
}

// --- Key extraction tests ---

func TestClientIP_XForwardedFor(t *testing.T) {
	tests := []struct {
		name     string
		xff      string
		remote   string
		expected string
	}{
		{
			name:     "single IP",
			xff:      "203.0.113.1",
			expected: "ip:203.0.113.1",
		},
		{
			name:     "multiple IPs takes leftmost",
			xff:      "203.0.113.1, 198.51.100.1, 10.0.0.1",
			expected: "ip:203.0.113.1",
		},
		{
			name:     "no XFF falls back to RemoteAddr",
			remote:   "192.168.1.1:12345",
			expected: "ip:192.168.1.1",
		},
		{
			name:     "RemoteAddr without port",
			remote:   "192.168.1.1",
			expected: "ip:192.168.1.1",
		},
		{
			name:     "garbage XFF falls back to RemoteAddr",
			xff:      "not-an-ip",
			remote:   "10.0.0.9:80",
			expected: "ip:10.0.0.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}

			key := ClientIP(r)
			if key != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", key, tt.expected)
			}
		})
	}
}

// --- Middleware factory tests ---

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_NilLimiter(t *testing.T) {
	called := false
	wrapped := RateLimit(nil, ClientIP)(okHandler(&called))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)

	if !called {
		t.Fatal("Handler should be called when limiter is nil (disabled mode)")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestRateLimitMiddleware_EmptyKey(t *testing.T) {
	called := false
	emptyKey := func(r *http.Request) string { return "" }
	wrapped := RateLimit(NewRateLimiter(1, time.Minute), emptyKey)(okHandler(&called))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), r)

	if !called {
		t.Fatal("Handler should be called when key is empty (unidentifiable client)")
	}
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	frozen(rl)
	wrapped := RateLimit(rl, ClientIP)(okHandler(nil))

	r := httptest.NewRequest(http.MethodPost, "/api/sign/now", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("First request should be 200, got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/api/sign/now", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Second request should be 429, got %d", w.Code)
	}

	if got := w.Header().Get("Retry-After"); got == "" || got == "0" {
		t.Errorf("Retry-After = %q, want a positive number of seconds", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", ct)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	if body.Success || body.Message != "rate limit exceeded" {
		t.Errorf("Unexpected body %+v", body)
	}
}
