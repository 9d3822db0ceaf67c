package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter *rate.Limiter
	timer   *time.Timer
}

// UserRateLimiter keeps one token bucket per identity. A bucket unused for
// expirationTime is dropped.
type UserRateLimiter struct {
	limiters       map[string]*entry
	mu             sync.Mutex
	rate           rate.Limit
	burst          int
	expirationTime time.Duration
}

// New creates a limiter allowing rps requests per second per identity, with bursts of burst.
func New(rps float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UserRateLimiter{
		limiters:       make(map[string]*entry),
		rate:           rate.Limit(rps),
		burst:          burst,
		expirationTime: expirationTime,
	}
}

// getLimiter gets or creates the bucket for identity and pushes back its expiry
func (u *UserRateLimiter) getLimiter(identity string) *rate.Limiter {
	u.mu.Lock()
	defer u.mu.Unlock()

	e, exists := u.limiters[identity]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(u.rate, u.burst)}
		u.limiters[identity] = e
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(u.expirationTime, func() { u.cleanup(identity, e) })
	return e.limiter
}

func (u *UserRateLimiter) cleanup(identity string, e *entry) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.limiters[identity] == e {
		delete(u.limiters, identity)
	}
}

// Allow checks if a request should be allowed for a given identity
func (u *UserRateLimiter) Allow(identity string) bool {
	return u.getLimiter(identity).Allow()
}

func (u *UserRateLimiter) size() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.limiters)
}

// Stop cleans up all timers
func (u *UserRateLimiter) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, e := range u.limiters {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}
