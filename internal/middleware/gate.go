// Package middleware holds the request gate that runs before any page or
// handler code: rate limiting on the authentication endpoints, pathname
// stamping for downstream guards, and the coarse role redirect.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hiregate/internal/clientip"
	"hiregate/internal/ratelimit"
	"hiregate/internal/session"
)

// PathHeader carries the normalized pathname from the gate to layout guards
// so they never re-parse the URL. Internal only, never exposed to clients.
const PathHeader = "x-pathname"

const employerPrefix = "/dashboard-employer"

// authPages are the pages whose POSTs are rate limited, matched after route
// group stripping.
var authPages = map[string]struct{}{
	"/login":           {},
	"/register":        {},
	"/reset-password":  {},
	"/forgot-password": {},
}

// Gate intercepts every inbound request before routing. It makes no network
// calls other than the limiter check, keeping per-request latency bounded.
type Gate struct {
	limiter  *ratelimit.Selector
	sessions *session.Manager
	log      zerolog.Logger
}

func NewGate(limiter *ratelimit.Selector, sessions *session.Manager, log zerolog.Logger) *Gate {
	return &Gate{limiter: limiter, sessions: sessions, log: log}
}

// Handler returns the gin middleware. Order per request: rate limit POSTs to
// auth pages, stamp x-pathname, apply the coarse role redirect.
func (g *Gate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := NormalizePath(c.Request.URL.Path)

		if c.Request.Method == http.MethodPost {
			if _, ok := authPages[path]; ok && !g.checkLimit(c) {
				return
			}
		}

		// Stamped unconditionally so every downstream guard can branch on
		// the resolved route.
		c.Request.Header.Set(PathHeader, path)

		// Coarse redirect on the client-supplied role tag only. The cookie
		// is not authenticated here; the layout guard does the real check.
		if strings.HasPrefix(path, employerPrefix) {
			if role, ok := g.sessions.Role(c.Request); ok {
				if role != session.RoleEmployer && role != session.RoleAdmin {
					c.Redirect(http.StatusSeeOther, session.RoleCandidate.Home())
					c.Abort()
					return
				}
			}
		}

		c.Next()
	}
}

// checkLimit runs the limiter and writes the 429 when the identifier is over
// budget. Returns false when the request was short-circuited.
func (g *Gate) checkLimit(c *gin.Context) bool {
	id := clientip.FromHeaders(c.Request.Header)
	res := g.limiter.Check(c.Request.Context(), id)

	header := c.Writer.Header()
	header.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	header.Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset, 10))

	if res.Allowed {
		return true
	}

	retryAfter := res.Reset - time.Now().Unix()
	if retryAfter < 1 {
		retryAfter = 1
	}
	header.Set("Retry-After", strconv.FormatInt(retryAfter, 10))

	g.log.Warn().
		Str("identifier", id).
		Str("source", res.Source).
		Msg("auth request rate limited")

	// Generic body: no window size, no identifier echo.
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"message": "Too many requests. Please try again later.",
	})
	return false
}
