package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter keeps one token bucket per client IP. Idle buckets are swept
// lazily on access.
type IPLimiter struct {
	mu    sync.Mutex
	ips   map[string]*limiterEntry
	rate  rate.Limit
	burst int
	ttl   time.Duration
	sweep time.Time
}

func NewIPLimiter(r rate.Limit, burst int, ttl time.Duration) *IPLimiter {
	return &IPLimiter{ips: map[string]*limiterEntry{}, rate: r, burst: burst, ttl: ttl}
}

// LoginLimiter allows 30 attempts per 10 minutes per IP.
func LoginLimiter() *IPLimiter {
	return NewIPLimiter(rate.Every(10*time.Minute/30), 30, 10*time.Minute)
}

func (l *IPLimiter) Allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.sweep) > l.ttl {
		for k, e := range l.ips {
			if now.Sub(e.lastSeen) > l.ttl {
				delete(l.ips, k)
			}
		}
		l.sweep = now
	}

	e, ok := l.ips[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.ips[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
