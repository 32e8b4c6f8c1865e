package session

import (
	"net/http"
	"time"
)

// Cookie names making up one authenticated session. The three are always
// written and removed together; a session with only some of them present is
// considered broken.
const (
	AuthCookie = "auth_token" // HttpOnly bearer credential, server-side checks only
	APICookie  = "api_token"  // same value, script-readable, for client bearer headers
	RoleCookie = "user_role"  // script-readable role tag for fast branching
	CSRFCookie = "csrf_token" // issued by the backend, mirrored into a header on mutations
)

// MaxAge is the lifetime of the session cookies.
const MaxAge = 7 * 24 * time.Hour

// Role is the platform role carried in the session.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleCandidate Role = "candidate"
)

// Valid reports whether r is one of the known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleCandidate:
		return true
	}
	return false
}

// Home returns the dashboard root for the role. Unknown roles land on the
// candidate home, the least privileged tree.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleEmployer:
		return "/dashboard-employer"
	default:
		return "/candidate"
	}
}

// Session is the logical credential represented by the cookie triplet.
// It is replaced wholesale on login and removed wholesale on logout,
// never mutated in place.
type Session struct {
	Token string
	Role  Role
}

// Manager issues and reads session cookies.
type Manager struct {
	secure bool
}

// NewManager creates a Manager. secure controls the Secure attribute on every
// cookie it writes and should be tied to the production flag.
func NewManager(secure bool) *Manager {
	return &Manager{secure: secure}
}

// Persist writes the full cookie triplet for s. All three cookies share the
// same max age, path and SameSite policy; only auth_token is HttpOnly.
func (m *Manager) Persist(w http.ResponseWriter, s Session) {
	m.set(w, AuthCookie, s.Token, true)
	m.set(w, APICookie, s.Token, false)
	m.set(w, RoleCookie, string(s.Role), false)
}

// Clear removes the full cookie triplet. Deleting cookies that were never set
// is not an error, so Clear is safe to call repeatedly.
func (m *Manager) Clear(w http.ResponseWriter) {
	m.del(w, AuthCookie, true)
	m.del(w, APICookie, false)
	m.del(w, RoleCookie, false)
}

// ClearClient removes only the script-readable cookies. Used by the outbound
// transport on an expired-session response, where the HttpOnly copy is dealt
// with by the login redirect that follows.
func (m *Manager) ClearClient(w http.ResponseWriter) {
	m.del(w, APICookie, false)
	m.del(w, RoleCookie, false)
}

// AuthToken reads the HttpOnly bearer credential from the request.
func (m *Manager) AuthToken(r *http.Request) (string, bool) {
	return readCookie(r, AuthCookie)
}

// APIToken reads the script-readable copy of the bearer credential.
func (m *Manager) APIToken(r *http.Request) (string, bool) {
	return readCookie(r, APICookie)
}

// Role reads the role tag from the request. The value is client-supplied and
// only suitable for coarse redirects, not authorization decisions.
func (m *Manager) Role(r *http.Request) (Role, bool) {
	v, ok := readCookie(r, RoleCookie)
	return Role(v), ok
}

func (m *Manager) set(w http.ResponseWriter, name, value string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) del(w http.ResponseWriter, name string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func readCookie(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
