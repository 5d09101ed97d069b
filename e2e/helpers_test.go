// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds the full server from environment configuration against a fake upstream

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/viper"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/config"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/server"
)

// fakeUpstream plays the lottery, user info, top-up and login services
type fakeUpstream struct {
	mu      sync.Mutex
	replies map[string]any
	hits    map[string]int
	headers map[string]http.Header
}

func (f *fakeUpstream) reply(path string, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[path] = body
}

func (f *fakeUpstream) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeUpstream) header(path, key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h, ok := f.headers[path]; ok {
		return h.Get(key)
	}
	return ""
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.headers[r.URL.Path] = r.Header.Clone()
	body, ok := f.replies[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

type stack struct {
	upstream *fakeUpstream
	api      *httptest.Server
	client   *client.Client
}

// newStack configures the server through environment variables, as serve does,
// and returns a client pointed at it. extra overrides or adds variables.
func newStack(t *testing.T, extra map[string]string) *stack {
	t.Helper()

	up := &fakeUpstream{
		replies: make(map[string]any),
		hits:    make(map[string]int),
		headers: make(map[string]http.Header),
	}
	upServer := httptest.NewServer(up)
	t.Cleanup(upServer.Close)

	env := map[string]string{
		config.KeyDatabasePath:     filepath.Join(t.TempDir(), "bohe.db"),
		config.KeyLogLevel:         "error",
		config.KeyRateLimitEnabled: "false",
		config.KeyLotteryURL:       upServer.URL + "/lottery",
		config.KeyUserInfoURL:      upServer.URL + "/userinfo",
		config.KeyTopupURL:         upServer.URL + "/topup",
		config.KeyLoginURL:         upServer.URL + "/login",
	}
	for k, v := range extra {
		env[k] = v
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.Load(viper.New())
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	srv, err := server.New(cfg)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	api := httptest.NewServer(srv.Handler())
	t.Cleanup(api.Close)

	return &stack{upstream: up, api: api, client: client.New(api.URL)}
}

func ok(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}
