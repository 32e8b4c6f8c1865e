// Package backend is the client for the platform API that owns users,
// credentials and onboarding state. Every check returns a tagged Status so
// callers decide fail-open versus fail-closed per check, instead of the
// outcome depending on whether a failure was an HTTP status or a transport
// error.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"hiregate/internal/session"
)

// Status tags the outcome of a backend check.
type Status int

const (
	// StatusOK: the backend answered and accepted.
	StatusOK Status = iota
	// StatusRejected: the backend answered and said no (bad token, bad
	// credentials). Trustworthy as a denial.
	StatusRejected
	// StatusUnreachable: no authoritative answer (network error, timeout,
	// malformed body). Says nothing about the token.
	StatusUnreachable
)

// User is the identity resolved by the backend. Never cached; fetched fresh
// for every protected render.
type User struct {
	ID    string       `json:"id"`
	Email string       `json:"email"`
	Role  session.Role `json:"role"`
}

// AuthResult is the outcome of a successful auth mutation (login, register).
// Token is empty for flows that do not establish a session.
type AuthResult struct {
	Token   string
	User    User
	Message string
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the backend API. It never retries: a failed check is
// terminal for the request it served.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// VerifyToken resolves the identity behind a bearer token via GET /auth/me.
// The result must not be cached, and the backend is told not to either.
func (c *Client) VerifyToken(ctx context.Context, token string) (User, Status) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return User{}, StatusUnreachable
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("identity endpoint unreachable")
		return User{}, StatusUnreachable
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return User{}, StatusRejected
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || !env.Success {
		c.log.Warn().Err(err).Msg("identity endpoint returned malformed body")
		return User{}, StatusUnreachable
	}

	var u User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return User{}, StatusUnreachable
	}
	return u, StatusOK
}

// OnboardingStatus reports whether the candidate behind the token finished
// onboarding, via GET /onboarding/status.
func (c *Client) OnboardingStatus(ctx context.Context, token string) (bool, Status) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/onboarding/status", nil)
	if err != nil {
		return false, StatusUnreachable
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("onboarding endpoint unreachable")
		return false, StatusUnreachable
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return false, StatusRejected
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || !env.Success {
		return false, StatusUnreachable
	}

	var data struct {
		Completed bool `json:"completed"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return false, StatusUnreachable
	}
	return data.Completed, StatusOK
}

// SubmitAuth posts an auth mutation (login, register, password flows) and
// extracts the session material from the envelope when present.
func (c *Client) SubmitAuth(ctx context.Context, path string, payload any) (AuthResult, Status) {
	body, err := json.Marshal(payload)
	if err != nil {
		return AuthResult{}, StatusUnreachable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return AuthResult{}, StatusUnreachable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("auth endpoint unreachable")
		return AuthResult{}, StatusUnreachable
	}
	defer drain(resp.Body)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return AuthResult{}, StatusUnreachable
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return AuthResult{Message: env.Message}, StatusRejected
	}

	res := AuthResult{Message: env.Message}
	if len(env.Data) > 0 {
		var data struct {
			Token string `json:"token"`
			User  User   `json:"user"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return AuthResult{}, StatusUnreachable
		}
		res.Token = data.Token
		res.User = data.User
	}
	return res, StatusOK
}

// drain discards and closes a response body so the connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<20))
	_ = body.Close()
}
