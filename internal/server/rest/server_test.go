package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(h *harness, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	h.pinger.err = errBoom
	rec = h.do(http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/nope", "", false)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRequestID(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/healthz", "", false)
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	rec = serve(h, req)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid\nInjected: yes")
	rec = serve(h, req)
	assert.NotEqual(t, "not-a-uuid\nInjected: yes", rec.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	h := newHarness(t)

	t.Run("preflight from portal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
		req.Header.Set("Origin", testOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := serve(h, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := serve(h, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request from portal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", testOrigin)
		rec := serve(h, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestPanicIsRecovered(t *testing.T) {
	h := newHarness(t)
	h.jobs.panicOn = "stats"

	rec := h.do(http.MethodGet, "/jobs/stats", "", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestCompression(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(h, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestTrustProxy(t *testing.T) {
	lim := &fakeLimiter{allowed: true}
	s := NewServer(Options{CookieName: testCookie, PortalOrigin: testOrigin, TrustProxy: true},
		logging.Nop{}, &fakeAccounts{}, &fakeSessions{}, newFakeJobs(), fakePinger{}, lim)

	req := newJSONRequest(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"Passw0rd!"}`)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"login:203.0.113.7"}, lim.keys)
}

func TestForwardedForIgnoredWithoutTrust(t *testing.T) {
	h := newHarness(t)

	req := newJSONRequest(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"Passw0rd!"}`)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	serve(h, req)

	assert.Equal(t, []string{"login:192.0.2.1"}, h.limiter.keys)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := NewServer(Options{Address: "127.0.0.1:0", CookieName: testCookie, PortalOrigin: testOrigin},
		logging.Nop{}, &fakeAccounts{}, &fakeSessions{}, newFakeJobs(), fakePinger{}, &fakeLimiter{allowed: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
