// Package clientip derives a stable client identifier from proxy headers.
package clientip

import (
	"net/http"
	"strings"
)

// Fallback is returned when no proxy header carries an address, which only
// happens in local development where requests hit the server directly.
const Fallback = "127.0.0.1"

// FromHeaders returns the client IP for a request, first match wins:
// X-Forwarded-For (first entry in the proxy chain), X-Real-IP,
// CF-Connecting-IP, then Fallback.
//
// Header values are trusted as-is. A client spoofing these headers gets to
// choose its own rate-limit identity; the limiter behind this is a
// brute-force brake, not a security boundary.
func FromHeaders(h http.Header) string {
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := h.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := h.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return Fallback
}
