package ratelimit

import (
	"context"

	"github.com/rs/zerolog"
)

// Selector picks a tier per check: distributed when configured and
// reachable, memory outside production, and an unconditional allow as the
// production last resort. A broken limiter must never become an outage, so
// tier errors degrade instead of failing the request.
type Selector struct {
	distributed Store // nil when no Redis is configured
	memory      *MemoryStore
	production  bool
	log         zerolog.Logger
}

func NewSelector(distributed Store, memory *MemoryStore, production bool, log zerolog.Logger) *Selector {
	return &Selector{
		distributed: distributed,
		memory:      memory,
		production:  production,
		log:         log,
	}
}

// Check never returns an error; limiter trouble surfaces only in the Source
// of the result and a warn log.
func (s *Selector) Check(ctx context.Context, identifier string) Result {
	if s.distributed != nil {
		res, err := s.distributed.Check(ctx, identifier)
		if err == nil {
			return res
		}
		s.log.Warn().Err(err).Msg("distributed rate limit store unavailable, degrading")
	}

	if !s.production {
		res, _ := s.memory.Check(ctx, identifier)
		return res
	}

	return Result{Allowed: true, Remaining: -1, Source: SourceBypass}
}
