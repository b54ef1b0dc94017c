// Package ratelimit provides rate limiter implementations.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bnema/dockcmd/internal/boundaries/out"
	"github.com/bnema/dockcmd/internal/logging"
)

var _ out.RateLimiter = (*MemoryStore)(nil)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore keeps one token bucket per key in memory. Buckets idle for
// longer than the TTL are dropped by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	rps     float64
	burst   int
	idleTTL time.Duration
	now     func() time.Time
	log     logging.Logger
}

// NewMemoryStore creates a new in-memory rate limiter store.
func NewMemoryStore(rps float64, burst int, idleTTL time.Duration, log logging.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		rps:     rps,
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
		log:     log,
	}
}

// Allow reports whether one more request for key fits in its bucket.
func (s *MemoryStore) Allow(_ context.Context, key string) bool {
	now := s.now()

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = now
	s.mu.Unlock()

	allowed := e.limiter.AllowN(now, 1)
	if !allowed {
		s.log.Debug().Str("key", key).Msg("rate limited")
	}
	return allowed
}

// Sweep drops buckets idle for longer than the TTL and returns how many
// were removed. A zero TTL keeps everything.
func (s *MemoryStore) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug().Int("removed", n).Msg("swept idle rate limit buckets")
			}
		}
	}
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
