// Package ratelimit counts requests per client identifier over a sliding
// window. The authoritative store is Redis, shared across instances; a
// process-local map covers development, and production without Redis degrades
// to allowing everything rather than taking the site down.
package ratelimit

import (
	"context"
	"time"
)

// Policy for the authentication endpoints.
const (
	Limit  = 5
	Window = 60 * time.Second

	// keyPrefix namespaces auth limiting so future limiters cannot collide.
	keyPrefix = "ratelimit:auth:"
)

// Sources identify which tier produced a Result.
const (
	SourceDistributed = "distributed"
	SourceMemory      = "memory"
	SourceBypass      = "bypass"
)

// Result is the outcome of a single limit check.
type Result struct {
	Allowed   bool
	Remaining int   // -1 when the bypass tier answered
	Reset     int64 // epoch seconds when the current window ends
	Source    string
}

// Store is one backing tier. Implementations must make Check atomic with
// respect to concurrent callers for the same identifier.
type Store interface {
	Check(ctx context.Context, identifier string) (Result, error)
}
