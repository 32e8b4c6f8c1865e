package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"hiregate/internal/session"
)

func TestVerifyTokenOK(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.Header.Get("Cache-Control"); got != "no-store" {
			t.Errorf("identity lookups must not be cached, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"","data":{"id":"user-1","email":"e@example.com","role":"admin"}}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, zerolog.Nop())
	user, st := c.VerifyToken(context.Background(), "tok-1")
	if st != StatusOK {
		t.Fatalf("expected StatusOK, got %v", st)
	}
	if user.ID != "user-1" || user.Role != session.RoleAdmin {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestVerifyTokenRejected(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid token"}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, zerolog.Nop())
	if _, st := c.VerifyToken(context.Background(), "bad"); st != StatusRejected {
		t.Fatalf("expected StatusRejected, got %v", st)
	}
}

func TestVerifyTokenUnreachable(t *testing.T) {
	upstream := httptest.NewServer(nil)
	upstream.Close() // refused connections are not rejections

	c := NewClient(upstream.URL, zerolog.Nop())
	if _, st := c.VerifyToken(context.Background(), "tok"); st != StatusUnreachable {
		t.Fatalf("expected StatusUnreachable, got %v", st)
	}
}

func TestVerifyTokenMalformedBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, zerolog.Nop())
	if _, st := c.VerifyToken(context.Background(), "tok"); st != StatusUnreachable {
		t.Fatalf("a 200 with garbage is not an authoritative answer, got %v", st)
	}
}

func TestOnboardingStatus(t *testing.T) {
	completed := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/onboarding/status" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		body := `{"success":true,"data":{"completed":false}}`
		if completed {
			body = `{"success":true,"data":{"completed":true}}`
		}
		_, _ = w.Write([]byte(body))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, zerolog.Nop())

	done, st := c.OnboardingStatus(context.Background(), "tok")
	if st != StatusOK || done {
		t.Fatalf("expected incomplete, got done=%v st=%v", done, st)
	}

	completed = true
	done, st = c.OnboardingStatus(context.Background(), "tok")
	if st != StatusOK || !done {
		t.Fatalf("expected complete, got done=%v st=%v", done, st)
	}
}

func TestSubmitAuthExtractsSessionMaterial(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"welcome","data":{"token":"tok-9","user":{"id":"u1","email":"e@example.com","role":"employer"}}}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, zerolog.Nop())
	res, st := c.SubmitAuth(context.Background(), "/auth/login", map[string]string{"email": "e@example.com"})
	if st != StatusOK {
		t.Fatalf("expected StatusOK, got %v", st)
	}
	if res.Token != "tok-9" || res.User.Role != session.RoleEmployer {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSubmitAuthRejectionCarriesMessage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid email or password."}`))
	}))
	defer upstream.Close()

	c := NewClient(upstream.URL, zerolog.Nop())
	res, st := c.SubmitAuth(context.Background(), "/auth/login", map[string]string{})
	if st != StatusRejected {
		t.Fatalf("expected StatusRejected, got %v", st)
	}
	if res.Message != "Invalid email or password." {
		t.Fatalf("unexpected message %q", res.Message)
	}
}
