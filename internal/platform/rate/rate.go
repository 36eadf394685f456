// Package rate provides the token bucket limiter used by outbound clients.
// Reputation services publish per-minute quotas, so every client that talks
// to one holds its own Limiter.
package rate

import (
	"context"
	"sync"
	"time"
)

// Limiter is a token bucket. It supports blocking (Wait) and non-blocking (Allow) use.
type Limiter struct {
	mu     sync.Mutex
	rate   float64 // tokens per second
	burst  int     // bucket capacity
	tokens float64
	last   time.Time
	now    func() time.Time
}

// New creates a limiter refilling at rate tokens per second, holding at most burst tokens.
// Non-positive values fall back to 1.
//
// Example:
//
//	limiter := rate.New(4.0/60, 1) // VirusTotal public API: 4 req/min
func New(rate float64, burst int) *Limiter {
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}

	l := &Limiter{
		rate:   rate,
		burst:  burst,
		tokens: float64(burst), // start with full bucket
		now:    time.Now,
	}
	l.last = l.now()
	return l
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		wait, ok := l.reserve()
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Allow consumes a token if one is available right now.
func (l *Limiter) Allow() bool {
	_, ok := l.reserve()
	return ok
}

// Rate returns the refill rate in tokens per second.
func (l *Limiter) Rate() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rate
}

// Burst returns the bucket capacity.
func (l *Limiter) Burst() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.burst
}

// Tokens returns the tokens currently available.
func (l *Limiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.advance()
	return l.tokens
}

// reserve takes a token if possible; otherwise it reports how long until the next one.
func (l *Limiter) reserve() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance()
	if l.tokens >= 1 {
		l.tokens--
		return 0, true
	}

	missing := 1.0 - l.tokens
	return time.Duration(missing / l.rate * float64(time.Second)), false
}

// advance refills tokens for the elapsed time. Must be called with l.mu held.
func (l *Limiter) advance() {
	now := l.now()
	l.tokens += now.Sub(l.last).Seconds() * l.rate
	if l.tokens > float64(l.burst) {
		l.tokens = float64(l.burst)
	}
	l.last = now
}
