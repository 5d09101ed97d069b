// ABOUTME: Shared fixtures for services tests
// ABOUTME: In-memory store and a scriptable fake upstream server

package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:services-%s?mode=memory&cache=shared", store.NewID()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fakeUpstream serves /lottery, /userinfo, /topup and /login with scripted replies
type fakeUpstream struct {
	mu       sync.Mutex
	replies  map[string]upstreamReply
	calls    map[string]int
	requests map[string]*http.Request
	bodies   map[string]map[string]any
}

type upstreamReply struct {
	status int
	body   any
}

func newFakeUpstream(t *testing.T) (*fakeUpstream, *Upstream) {
	t.Helper()
	f := &fakeUpstream{
		replies:  make(map[string]upstreamReply),
		calls:    make(map[string]int),
		requests: make(map[string]*http.Request),
		bodies:   make(map[string]map[string]any),
	}
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)

	return f, NewUpstream(UpstreamConfig{
		LotteryURL:  server.URL + "/lottery",
		UserInfoURL: server.URL + "/userinfo",
		TopupURL:    server.URL + "/topup",
		LoginURL:    server.URL + "/login",
		Timeout:     2 * time.Second,
	})
}

func (f *fakeUpstream) reply(path string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[path] = upstreamReply{status: status, body: body}
}

func (f *fakeUpstream) ok(path string, data any) {
	f.reply(path, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (f *fakeUpstream) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.requests[r.URL.Path] = r
	f.bodies[r.URL.Path] = body
	reply, ok := f.replies[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.status)
	json.NewEncoder(w).Encode(reply.body)
}
