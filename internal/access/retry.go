package access

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/nerrad567/gray-logic-access/internal/hal"
)

// RetryPolicy throttles password attempts.
//
// The first MaxAttempts attempts go through immediately; after that each
// attempt must wait for one Backoff interval to refill. A successful entry
// calls Reset. MaxAttempts of zero disables throttling, which keeps the
// unlimited retries of a stock unit.
type RetryPolicy struct {
	maxAttempts int
	backoff     time.Duration
	clock       hal.Clock
	limiter     *rate.Limiter
}

// NewRetryPolicy creates a policy measured against clock.
func NewRetryPolicy(maxAttempts int, backoff time.Duration, clock hal.Clock) *RetryPolicy {
	p := &RetryPolicy{
		maxAttempts: maxAttempts,
		backoff:     backoff,
		clock:       clock,
	}
	p.Reset()
	return p
}

// Unlimited reports whether the policy never delays an attempt.
func (p *RetryPolicy) Unlimited() bool {
	return p.limiter == nil
}

// Attempt claims the next attempt and returns how long the caller must wait
// before making it. Zero means go ahead now.
func (p *RetryPolicy) Attempt() time.Duration {
	if p.limiter == nil {
		return 0
	}
	now := p.clock.Now()
	r := p.limiter.ReserveN(now, 1)
	if !r.OK() {
		return p.backoff
	}
	return r.DelayFrom(now)
}

// Reset restores the full attempt allowance.
func (p *RetryPolicy) Reset() {
	if p.maxAttempts <= 0 || p.backoff <= 0 {
		p.limiter = nil
		return
	}
	p.limiter = rate.NewLimiter(rate.Every(p.backoff), p.maxAttempts)
}
