package out

import "context"

// RateLimiter limits how often a client may submit commands.
type RateLimiter interface {
	// Allow reports whether one more request for key fits in the budget.
	// Keys are "global" or "ip:<address>".
	Allow(ctx context.Context, key string) bool
}
