package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/validation"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func TestSignup_CreatedWithCookie(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/auth/signup", `{"email":" User@Test.com ","password":"Passw0rd!"}`, false)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[userResponse](t, rec)
	assert.Equal(t, userResponse{ID: testUserID, Email: "user@test.com"}, body)

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, goodToken, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)

	assert.Equal(t, []string{"signup:192.0.2.1"}, h.limiter.keys)
	assert.Equal(t, "192.0.2.1", h.accounts.gotMeta.IPAddress)
}

func TestSignup_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"bad json", `{"email":`, nil, http.StatusBadRequest, "Invalid request body"},
		{"invalid email", `{"email":"x","password":"Passw0rd!"}`,
			validation.FieldErrors{{Field: "email", Message: "Invalid email address"}},
			http.StatusBadRequest, "Invalid email address"},
		{"duplicate", `{"email":"a@x.com","password":"Passw0rd!"}`, common.ErrAlreadyExists,
			http.StatusConflict, "Email already registered"},
		{"store down", `{"email":"a@x.com","password":"Passw0rd!"}`, errBoom,
			http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.accounts.signupErr = tt.err

			rec := h.do(http.MethodPost, "/auth/signup", tt.body, false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decode[errorResponse](t, rec).Error)
			assert.Nil(t, sessionCookie(rec))
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestSignup_FieldIsReported(t *testing.T) {
	h := newHarness(t)
	h.accounts.signupErr = validation.FieldErrors{{Field: "password", Message: validation.PasswordRuleMessage}}

	rec := h.do(http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"short"}`, false)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errorResponse{Error: validation.PasswordRuleMessage, Field: "password"}, decode[errorResponse](t, rec))
}

func TestLogin(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := newHarness(t)
		rec := h.do(http.MethodPost, "/auth/login", `{"email":"user@test.com","password":"Passw0rd!"}`, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, sessionCookie(rec))
	})

	t.Run("bad credentials", func(t *testing.T) {
		h := newHarness(t)
		h.accounts.loginErr = common.ErrorUnauthorized
		rec := h.do(http.MethodPost, "/auth/login", `{"email":"user@test.com","password":"nope"}`, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("missing fields", func(t *testing.T) {
		h := newHarness(t)
		h.accounts.loginErr = validation.FieldErrors{{Field: "email", Message: "Email and password are required"}}
		rec := h.do(http.MethodPost, "/auth/login", `{}`, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		h := newHarness(t)
		h.limiter.allowed = false
		h.limiter.retry = 1500 * time.Millisecond
		rec := h.do(http.MethodPost, "/auth/login", `{"email":"user@test.com","password":"Passw0rd!"}`, false)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Empty(t, h.accounts.gotEmail, "service must not be reached")
	})

	t.Run("limiter outage fails open", func(t *testing.T) {
		h := newHarness(t)
		h.limiter.err = errBoom
		rec := h.do(http.MethodPost, "/auth/login", `{"email":"user@test.com","password":"Passw0rd!"}`, false)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMe(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/auth/me", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decode[errorResponse](t, rec).Error)

	rec = h.do(http.MethodGet, "/auth/me", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userResponse{ID: testUserID, Email: "user@test.com"}, decode[userResponse](t, rec))
}

func TestMe_SessionStoreFailureIs500(t *testing.T) {
	h := newHarness(t)
	h.sessions.authErr = errBoom

	rec := h.do(http.MethodGet, "/auth/me", "", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/auth/logout", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{goodToken}, h.sessions.revoked)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestLogout_ForeignOriginIsForbidden(t *testing.T) {
	h := newHarness(t)

	for _, origin := range []string{"", "http://evil.test", testOrigin + "/"} {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: goodToken})
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		h.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, "origin %q", origin)
	}
	assert.Empty(t, h.sessions.revoked)
}

func TestLogout_RequiresSession(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(""))
	req.Header.Set("Origin", testOrigin)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
