// Package api is a typed HTTP client for the Loggy API. It is used by the
// dashboard, which forwards each browser's session, and by the terminal
// client.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/loggy/internal/netx"
	"github.com/goccy/go-json"
)

type Client struct {
	baseURL    string
	origin     string
	cookieName string
	http       *http.Client
}

// New returns a client for the API at baseURL. origin is sent as the Origin
// header on state-changing requests and must match the API's configured
// portal origin.
func New(baseURL, origin, cookieName string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		origin:     origin,
		cookieName: cookieName,
		http:       &http.Client{Timeout: timeout},
	}
}

// CookieName is the session cookie the API sets and expects.
func (c *Client) CookieName() string { return c.cookieName }

// do sends one request. A non-empty session is attached as the session
// cookie; body, when non-nil, is encoded as JSON; out, when non-nil,
// receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, session string, body, out any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}
	if ip := clientIPFrom(ctx); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return resp, errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

func errorFromResponse(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if raw := netx.ReadErrorBody(resp); len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		e.Message = body.Error
		e.Field = body.Field
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}
