package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const requestIDHeader = "X-Request-ID"

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// withRequestID tags the request with an id and a child logger carrying it.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logging.WithLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accessLog(_ io.Writer, p handlers.LogFormatterParams) {
	ctx := p.Request.Context()
	logging.FromContext(ctx, s.logger).Info(ctx, "request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"bytes", p.Size,
		"duration", time.Since(p.TimeStamp).String(),
		"remote", clientIP(p.Request),
	)
}

// recoveryLogger adapts logging.Logger to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	l logging.Logger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.l.Error(context.Background(), "panic recovered", "panic", fmt.Sprint(v...))
}

// authenticate resolves the session cookie to a user id and stores it in the
// request context. Requests without a valid session get a 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var token string
		if c, err := r.Cookie(s.opts.CookieName); err == nil {
			token = c.Value
		}

		userID, err := s.sessions.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			s.internalError(ctx, w, err)
			return
		}

		ctx = context.WithValue(ctx, userIDKey, userID)
		ctx = logging.WithLogger(ctx, logging.FromContext(ctx, s.logger).With("user_id", userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// checkOrigin rejects state-changing requests whose Origin is not exactly
// the portal origin.
func (s *Server) checkOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if r.Header.Get("Origin") != s.opts.PortalOrigin {
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimited caps attempts per client IP on one route. Limiter failures
// are logged and the request goes through.
func (s *Server) rateLimited(scope string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		allowed, retryAfter, err := s.limiter.Allow(ctx, scope+":"+clientIP(r))
		if err != nil {
			logging.FromContext(ctx, s.logger).Warn(ctx, "rate limiter unavailable", "error", err)
		}
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the host part of RemoteAddr. Behind a trusted proxy
// handlers.ProxyHeaders has already replaced it with the first
// X-Forwarded-For hop.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
