package portal

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/gorilla/handlers"
)

type ctxKey string

const sessionKey ctxKey = "session"

func sessionFrom(ctx context.Context) string {
	token, _ := ctx.Value(sessionKey).(string)
	return token
}

func (s *Server) accessLog(_ io.Writer, p handlers.LogFormatterParams) {
	ctx := p.Request.Context()
	s.logger.Info(ctx, "request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"duration", time.Since(p.TimeStamp).String(),
	)
}

type recoveryLogger struct {
	l logging.Logger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.l.Error(context.Background(), "panic recovered", "panic", fmt.Sprint(v...))
}

// withClientIP tags the request context with the browser's address for the
// API client to forward.
func withClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		next.ServeHTTP(w, r.WithContext(api.WithClientIP(r.Context(), host)))
	})
}

// requireSession sends visitors without a session cookie to the login page.
// The cookie is only checked for presence; the API decides whether it is
// still valid.
func (s *Server) requireSession(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(s.opts.CookieName)
		if err != nil || c.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		fn(w, r.WithContext(context.WithValue(r.Context(), sessionKey, c.Value)))
	}
}

// sameOrigin rejects form posts that did not come from the dashboard itself.
// Origin is preferred; Referer is the fallback for browsers that omit it.
func (s *Server) sameOrigin(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			if ref, err := url.Parse(r.Referer()); err == nil && ref.Host != "" {
				origin = ref.Scheme + "://" + ref.Host
			}
		}
		if origin != s.opts.PortalOrigin {
			s.renderError(w, r, http.StatusForbidden, "Forbidden")
			return
		}
		fn(w, r)
	}
}

func (s *Server) setSession(w http.ResponseWriter, session *api.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
