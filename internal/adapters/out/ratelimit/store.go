package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/dockcmd/internal/boundaries/out"
	"github.com/bnema/dockcmd/internal/logging"
)

// Config selects and sizes a rate limiter.
type Config struct {
	Backend string
	RPS     float64
	Burst   int
	IdleTTL time.Duration
}

// NewStore creates a RateLimiter based on the configured backend.
func NewStore(cfg Config, log logging.Logger) (out.RateLimiter, error) {
	switch cfg.Backend {
	case "memory", "":
		if cfg.RPS <= 0 || cfg.Burst <= 0 {
			return nil, fmt.Errorf("rate limit needs positive rps and burst, got %v and %d", cfg.RPS, cfg.Burst)
		}
		return NewMemoryStore(cfg.RPS, cfg.Burst, cfg.IdleTTL, log), nil
	case "none":
		return Unlimited{}, nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend: %s", cfg.Backend)
	}
}

// Unlimited allows every request.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) bool { return true }
