package responder

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/agencyos/leadbot/core"
)

// RateLimited wraps a Responder with a token-bucket limiter. An over-budget
// call does not wait: it resolves to ErrUnavailable immediately so the turn
// degrades to the canned fallback instead of blocking the request path.
type RateLimited struct {
	inner   Responder
	limiter *rate.Limiter
}

// WithRateLimit caps inner at r calls per second with the given burst.
func WithRateLimit(inner Responder, r rate.Limit, burst int) *RateLimited {
	return &RateLimited{inner: inner, limiter: rate.NewLimiter(r, burst)}
}

// Complete implements Responder.
func (rl *RateLimited) Complete(ctx context.Context, history []core.Message) (string, error) {
	if !rl.limiter.Allow() {
		return "", ErrUnavailable
	}
	return rl.inner.Complete(ctx, history)
}
