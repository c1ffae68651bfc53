// Package ratelimit throttles conversation turns per user on top of a
// shared global budget.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter combines a global limiter with lazily created per-user limiters.
type Limiter struct {
	global *rate.Limiter
	users  map[string]*rate.Limiter
	mu     sync.RWMutex

	perUserRate float64
	burst       int
}

// NewLimiter creates a limiter allowing requestsPerSecond with the given
// burst, both globally and per user.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{
		global:      rate.NewLimiter(rate.Limit(requestsPerSecond*10), burst*10),
		users:       make(map[string]*rate.Limiter),
		perUserRate: requestsPerSecond,
		burst:       burst,
	}
}

// Allow reports whether a turn from userID may proceed now.
func (l *Limiter) Allow(userID string) bool {
	if !l.global.Allow() {
		return false
	}
	return l.userLimiter(userID).Allow()
}

func (l *Limiter) userLimiter(userID string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.users[userID]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.users[userID]; ok {
		return lim
	}
	lim = rate.NewLimiter(rate.Limit(l.perUserRate), l.burst)
	l.users[userID] = lim
	return lim
}
