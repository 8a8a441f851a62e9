package portal

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/logging"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

type authView struct {
	Signup   bool
	Email    string
	Error    string
	Hint     string
	Problems []string
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "auth", authView{})
}

func (s *Server) signupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "auth", authView{Signup: true, Hint: validation.PasswordRuleMessage})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	email, password := credentialsFrom(r)
	view := authView{Email: email}

	switch {
	case !validation.ValidEmail(email):
		view.Error = "Invalid email address"
	case strings.TrimSpace(password) == "":
		view.Error = "Password is required"
	}
	if view.Error != "" {
		s.render(w, r, http.StatusBadRequest, "auth", view)
		return
	}

	_, session, err := s.api.Login(r.Context(), email, password)
	if err != nil {
		if api.IsUnauthorized(err) {
			view.Error = "Invalid email or password"
		} else {
			view.Error = s.apiMessage(r.Context(), err)
		}
		s.render(w, r, statusFor(err), "auth", view)
		return
	}

	s.setSession(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	email, password := credentialsFrom(r)
	view := authView{Signup: true, Email: email, Hint: validation.PasswordRuleMessage}

	switch {
	case !validation.ValidEmail(email):
		view.Error = "Invalid email address"
	case !validation.ValidPassword(password):
		view.Error = validation.PasswordRuleMessage
		view.Problems = validation.PasswordProblems(password)
	}
	if view.Error != "" {
		s.render(w, r, http.StatusBadRequest, "auth", view)
		return
	}

	_, session, err := s.api.Signup(r.Context(), email, password)
	if err != nil {
		view.Error = s.apiMessage(r.Context(), err)
		s.render(w, r, statusFor(err), "auth", view)
		return
	}

	s.setSession(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout revokes the session upstream when there is one. The local cookie
// is cleared even if the API call fails.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if c, err := r.Cookie(s.opts.CookieName); err == nil && c.Value != "" {
		if err := s.api.Logout(ctx, c.Value); err != nil && !api.IsUnauthorized(err) {
			logging.FromContext(ctx, s.logger).Warn(ctx, "logout failed", "error", err)
		}
	}
	s.clearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func credentialsFrom(r *http.Request) (email, password string) {
	return validation.NormalizeEmail(r.PostFormValue("email")), r.PostFormValue("password")
}

// apiMessage turns an API failure into text for the page. Client errors
// carry the API's own message; anything else is logged and summarized.
func (s *Server) apiMessage(ctx context.Context, err error) string {
	var e *api.Error
	switch {
	case errors.As(err, &e) && e.Status == http.StatusTooManyRequests:
		return "Too many attempts, please try again later"
	case errors.As(err, &e) && e.Status < http.StatusInternalServerError:
		return e.Message
	case errors.Is(err, api.ErrUnavailable):
		logging.FromContext(ctx, s.logger).Error(ctx, "api unavailable", "error", err)
		return "Service unavailable, please try again"
	default:
		logging.FromContext(ctx, s.logger).Error(ctx, "api call failed", "error", err)
		return "Something went wrong"
	}
}

// statusFor picks the page status for an API failure.
func statusFor(err error) int {
	var e *api.Error
	switch {
	case errors.As(err, &e) && e.Status < http.StatusInternalServerError:
		return e.Status
	case errors.Is(err, api.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
