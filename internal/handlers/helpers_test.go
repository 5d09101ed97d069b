package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/cache"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/services"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/store"
)

// upstreamStub answers the four upstream endpoints with canned envelopes
type upstreamStub struct {
	mu      sync.Mutex
	replies map[string]any
	calls   map[string]int
}

func (u *upstreamStub) set(path string, body any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.replies[path] = body
}

func (u *upstreamStub) count(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[path]
}

func (u *upstreamStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.calls[r.URL.Path]++
	body, ok := u.replies[r.URL.Path]
	u.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

type testEnv struct {
	store    *store.Store
	upstream *upstreamStub
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.Open(fmt.Sprintf("file:handlers-%s?mode=memory&cache=shared", store.NewID()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	stub := &upstreamStub{replies: make(map[string]any), calls: make(map[string]int)}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	upstream := services.NewUpstream(services.UpstreamConfig{
		LotteryURL:  server.URL + "/lottery",
		UserInfoURL: server.URL + "/userinfo",
		TopupURL:    server.URL + "/topup",
		LoginURL:    server.URL + "/login",
		Timeout:     2 * time.Second,
	})
	validity := cache.New[bool](time.Minute)
	t.Cleanup(validity.Stop)

	h := NewHandler(
		services.NewTokenService(s, upstream, validity),
		services.NewSignService(s, upstream),
		services.NewScheduleService(s),
		s,
	)
	return &testEnv{
		store:    s,
		upstream: stub,
		router:   h.Router(RouterOptions{}),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
