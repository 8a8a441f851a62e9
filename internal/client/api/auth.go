package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, email, password string) (*User, *Session, error) {
	return c.startSession(ctx, "/auth/signup", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, *Session, error) {
	return c.startSession(ctx, "/auth/login", email, password)
}

func (c *Client) startSession(ctx context.Context, path, email, password string) (*User, *Session, error) {
	var u User
	resp, err := c.do(ctx, http.MethodPost, path, nil, "", credentials{Email: email, Password: password}, &u)
	if err != nil {
		return nil, nil, err
	}

	s := c.sessionFrom(resp)
	if s == nil {
		return nil, nil, fmt.Errorf("no %s cookie in response", c.cookieName)
	}
	return &u, s, nil
}

func (c *Client) sessionFrom(resp *http.Response) *Session {
	for _, ck := range resp.Cookies() {
		if ck.Name != c.cookieName || ck.Value == "" {
			continue
		}
		s := &Session{Token: ck.Value, ExpiresAt: ck.Expires}
		if s.ExpiresAt.IsZero() && ck.MaxAge > 0 {
			s.ExpiresAt = time.Now().Add(time.Duration(ck.MaxAge) * time.Second)
		}
		return s
	}
	return nil
}

// Logout revokes session on the server.
func (c *Client) Logout(ctx context.Context, session string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, session, nil, nil)
	return err
}

func (c *Client) Me(ctx context.Context, session string) (*User, error) {
	var u User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, session, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
