// Package ratelimit bounds public form submissions per client IP with a
// token bucket per address.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/metrics"
)

// idleAfter is how long an untouched bucket lives before Sweep removes it.
const idleAfter = 10 * time.Minute

type bucket struct {
	tokens   int
	lastFill time.Time
}

// Limiter allows at most rpm requests per minute per key.
type Limiter struct {
	rpm int
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// New creates a Limiter. rpm <= 0 disables limiting.
func New(rpm int) *Limiter {
	return &Limiter{
		rpm:     rpm,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow takes a token for key, reporting false when none is left.
func (l *Limiter) Allow(key string) bool {
	if l.rpm <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.rpm, lastFill: now}
		l.buckets[key] = b
	}

	// Refill whole tokens and carry the remainder: lastFill only advances
	// by the time those tokens represent.
	refill := int(now.Sub(b.lastFill) * time.Duration(l.rpm) / time.Minute)
	if refill > 0 {
		b.tokens = min(l.rpm, b.tokens+refill)
		if b.tokens == l.rpm {
			b.lastFill = now
		} else {
			b.lastFill = b.lastFill.Add(time.Duration(refill) * time.Minute / time.Duration(l.rpm))
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Sweep drops buckets idle for longer than idleAfter and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleAfter)
	removed := 0
	for k, b := range l.buckets {
		if b.lastFill.Before(cutoff) {
			delete(l.buckets, k)
			removed++
		}
	}
	return removed
}

// Middleware rejects requests over the limit with 429. Only unsafe methods
// are counted, so page views and list reads are never limited.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if !l.Allow(clientIP(r)) {
			metrics.RateLimited.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(l.retryAfter()))
			httpx.WriteJSON(w, http.StatusTooManyRequests, httpx.ErrorBody{Error: "too many submissions, please try again shortly"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) retryAfter() int {
	return max(1, 60/max(1, l.rpm))
}

// clientIP keys on RemoteAddr, which Proxies.RealIP rewrites only for
// requests relayed by a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
