package app

import (
	"context"

	"github.com/rs/zerolog"

	"hiregate/internal/config"
	"hiregate/internal/redis"
)

type Infra struct {
	Redis *redis.Client // nil when not configured or unreachable
}

// setupInfra connects the optional pieces. Redis trouble is never fatal: the
// rate limiter is built to degrade, and refusing to start over it would turn
// a limiter misconfiguration into a full outage.
func setupInfra(ctx context.Context, cfg config.Config, log zerolog.Logger) *Infra {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, rate limiting is not shared across instances")
		return &Infra{}
	}

	client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Msg("redis unreachable, rate limiting degrades to local tiers")
		return &Infra{}
	}

	log.Info().Msg("redis ready")
	return &Infra{Redis: client}
}
