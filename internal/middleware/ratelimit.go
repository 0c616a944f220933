package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter hands out one token bucket per client IP. Buckets idle for
// longer than the refill window are dropped on the next allocation.
type ClientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	every    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

// NewClientLimiter allows limit requests per window for each client.
func NewClientLimiter(limit int, per time.Duration) *ClientLimiter {
	if limit <= 0 {
		limit = 1
	}
	if per <= 0 {
		per = time.Minute
	}
	return &ClientLimiter{
		limiters: make(map[string]*clientLimiter),
		every:    rate.Every(per / time.Duration(limit)),
		burst:    limit,
		idle:     per,
		now:      time.Now,
	}
}

// Allow consumes a token for key.
func (c *ClientLimiter) Allow(key string) bool {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.limiters[key]
	if !ok {
		c.pruneLocked(now)
		entry = &clientLimiter{limiter: rate.NewLimiter(c.every, c.burst)}
		c.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (c *ClientLimiter) pruneLocked(now time.Time) {
	for key, entry := range c.limiters {
		if now.Sub(entry.lastSeen) > c.idle {
			delete(c.limiters, key)
		}
	}
}

// RateLimit rejects requests beyond limit per window from the same client.
// Rejected requests go to rejected, or get a bare 429 when it is nil.
func RateLimit(limit int, per time.Duration, rejected http.Handler) func(http.Handler) http.Handler {
	limiter := NewClientLimiter(limit, per)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIPForRateLimit(r)) {
				w.Header().Set("Retry-After", "60")
				if rejected != nil {
					rejected.ServeHTTP(w, r)
					return
				}
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIPForRateLimit keys on the connection address. Forwarding headers are
// only honoured through chi's RealIP, which rewrites RemoteAddr when the
// deployment trusts its proxy.
func clientIPForRateLimit(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}
