package rest

import (
	"net/http"

	"github.com/dmitrijs2005/loggy/internal/server/auth"
	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/server/services"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, session, err := s.accounts.Signup(r.Context(), req.Email, req.Password, sessionMeta(r))
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	s.startSession(w, http.StatusCreated, user, session)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, session, err := s.accounts.Login(r.Context(), req.Email, req.Password, sessionMeta(r))
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	s.startSession(w, http.StatusOK, user, session)
}

func (s *Server) startSession(w http.ResponseWriter, status int, user *models.User, session *services.IssuedSession) {
	http.SetCookie(w, auth.NewSessionCookie(s.opts.CookieName, session.Token, session.ExpiresAt, s.opts.CookieSecure))
	writeJSON(w, status, toUserResponse(user))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		if err := s.sessions.Revoke(r.Context(), c.Value); err != nil {
			s.internalError(r.Context(), w, err)
			return
		}
	}

	http.SetCookie(w, auth.ClearSessionCookie(s.opts.CookieName, s.opts.CookieSecure))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, err := s.accounts.Me(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func sessionMeta(r *http.Request) services.SessionMeta {
	return services.SessionMeta{UserAgent: r.UserAgent(), IPAddress: clientIP(r)}
}
