// Package transport sends API calls to the backend on behalf of an already
// guarded browser request, so handlers never attach credentials manually.
package transport

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hiregate/internal/middleware"
	"hiregate/internal/session"
)

// ErrSessionExpired is returned by Client.Do when the backend answered 401
// and the caller's session has been torn down. The response writer already
// carries the cookie deletions and the login redirect; handlers should stop
// producing output.
var ErrSessionExpired = &sessionExpiredError{}

type sessionExpiredError struct{}

func (*sessionExpiredError) Error() string { return "session expired" }

// Client forwards requests with the caller's script-readable bearer token,
// mirroring the CSRF cookie into a header on state-changing methods
// (double-submit: the backend accepts only if header and its own cookie
// match).
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Manager
	log      zerolog.Logger
}

func NewClient(baseURL string, sessions *session.Manager, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
		log:      log,
	}
}

// Do issues method path against the backend for the browser request r.
// On a 401 it clears the client-manageable cookies on w, redirects to login
// with the expired flag (unless r is already on a login path, which would
// loop) and returns ErrSessionExpired.
func (c *Client) Do(w http.ResponseWriter, r *http.Request, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(r.Context(), method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	if token, ok := c.sessions.APIToken(r); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if mutating(method) {
		if csrf, err := r.Cookie(session.CSRFCookie); err == nil && csrf.Value != "" {
			req.Header.Set("X-CSRF-Token", csrf.Value)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		c.expireSession(w, r)
		return nil, ErrSessionExpired
	}

	return resp, nil
}

// expireSession applies the global expired-session handling: dead cookies
// gone, full navigation reset instead of in-place recovery, so the UI can
// never keep running half authenticated.
func (c *Client) expireSession(w http.ResponseWriter, r *http.Request) {
	c.sessions.ClearClient(w)

	path := r.Header.Get(middleware.PathHeader)
	if path == "" {
		path = middleware.NormalizePath(r.URL.Path)
	}
	if strings.HasPrefix(path, "/login") {
		return
	}

	redirect := url.URL{Path: "/login", RawQuery: "expired=true"}
	http.Redirect(w, r, redirect.String(), http.StatusSeeOther)
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}
