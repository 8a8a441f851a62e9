package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/cryptox"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

// getSimpleText, getPassword and getMultiline are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Signup prompts for an email and password, checks them locally against the
// same rules the API applies, creates the account and keeps the session.
func (a *App) Signup(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	email = validation.NormalizeEmail(email)
	if !validation.ValidEmail(email) {
		printlnFn("Invalid email address")
		return nil
	}
	if !validation.ValidPassword(string(password)) {
		printlnFn(validation.PasswordRuleMessage)
		return nil
	}

	u, s, err := a.api.Signup(ctx, email, string(password))
	if err != nil {
		return userFacing(err)
	}

	return a.startSession(u, s)
}

// Login prompts for credentials and keeps the session on success.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	u, s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if api.IsUnauthorized(err) {
			printlnFn("Invalid email or password")
			return nil
		}
		return userFacing(err)
	}

	return a.startSession(u, s)
}

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) startSession(u *api.User, s *api.Session) error {
	a.session = s.Token
	a.email = u.Email
	printlnFn("Logged in as", u.Email)

	if err := a.store.Save(s.Token); err != nil {
		return fmt.Errorf("session not saved: %w", err)
	}
	return nil
}

// Logout revokes the session on the server and forgets it locally. The
// local copy is dropped even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx, a.session)

	a.session = ""
	a.email = ""
	if cerr := a.store.Clear(); cerr != nil {
		return cerr
	}

	if err != nil && !api.IsUnauthorized(err) {
		return userFacing(err)
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u, err := a.api.Me(ctx, a.session)
	if err != nil {
		return a.handleAPIError(err)
	}
	printlnFn(u.Email, u.ID)
	return nil
}

// handleAPIError drops an expired session so the prompt reflects it.
func (a *App) handleAPIError(err error) error {
	if api.IsUnauthorized(err) {
		a.session = ""
		a.email = ""
		_ = a.store.Clear()
		printlnFn("Session expired, please login again")
		return nil
	}
	return userFacing(err)
}

// userFacing turns transport failures into a short message.
func userFacing(err error) error {
	if errors.Is(err, api.ErrUnavailable) {
		return errors.New("server unavailable")
	}
	return err
}
