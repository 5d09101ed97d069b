// ABOUTME: Shared test helpers for CLI command tests
// ABOUTME: Fake API server that answers with canned envelopes per route

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeAPI serves canned envelopes keyed by "METHOD /path" and records hits
type fakeAPI struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]map[string]any
	hits   map[string]int
	bodies map[string]map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{
		t:      t,
		routes: make(map[string]map[string]any),
		hits:   make(map[string]int),
		bodies: make(map[string]map[string]any),
	}
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)
	return f, server
}

func (f *fakeAPI) on(route string, success bool, message string, data any) {
	env := map[string]any{"success": success, "message": message}
	if data != nil {
		env["data"] = data
	}
	f.routes[route] = env
}

func (f *fakeAPI) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[route]
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.hits[route]++
	if r.Body != nil && r.ContentLength != 0 {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			f.bodies[route] = body
		}
	}
	env, ok := f.routes[route]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected request %s", route)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

func (f *fakeAPI) healthyStatus() {
	f.on("GET /api/token/status", true, "", map[string]any{
		"linux_do_token":  map[string]any{"exists": true, "masked": "abcdef***uvwxyz"},
		"bohe_sign_token": map[string]any{"exists": true, "valid": true, "masked": "ab***yz"},
		"newapi":          map[string]any{"configured": true, "authorization_masked": "sk***12", "user_id": "42"},
	})
	f.on("GET /api/sign/status", true, "", map[string]any{
		"signed_today": true, "last_sign_time": "2026-10-18T08:30:00Z", "continuous_days": 3, "total_signs": 12,
	})
	f.on("GET /api/schedule", true, "", map[string]any{
		"enabled": true, "time": "08:30", "next_run": "2026-10-19T08:30:00Z",
	})
}
