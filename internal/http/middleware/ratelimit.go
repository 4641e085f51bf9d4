package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Inactive clients are dropped after this long so the limiter map does not
// grow with every visitor the marketing site ever sees.
const (
	clientIdleTTL = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address. The chat and
// intake endpoints call out to paid providers, so limits apply to the whole
// API surface rather than per route.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows perSecond sustained requests with the given burst
// per client address.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(perSecond),
		burst:   burst,
	}
	go rl.sweep()
	return rl
}

// Allow reports whether a request from addr fits within the limit.
func (rl *RateLimiter) Allow(addr string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[addr] = c
	}
	c.lastSeen = time.Now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

func (rl *RateLimiter) sweep() {
	for range time.Tick(sweepInterval) {
		rl.mu.Lock()
		for addr, c := range rl.clients {
			if time.Since(c.lastSeen) > clientIdleTTL {
				delete(rl.clients, addr)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit rejects requests over the configured rate with 429.
func RateLimit(perSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(perSecond, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// RealIP runs earlier in the chain and leaves the client
			// address in X-Real-Ip; RemoteAddr is the fallback.
			addr := r.Header.Get("X-Real-Ip")
			if addr == "" {
				addr = r.RemoteAddr
			}
			if !limiter.Allow(addr) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
