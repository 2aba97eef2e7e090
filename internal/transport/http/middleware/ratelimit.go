package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"brecho/internal/requestctx"
	"brecho/internal/transport/http/api"
	"brecho/internal/transport/http/shared"
)

// sweepThreshold is the bucket count above which expired buckets are dropped.
const sweepThreshold = 1024

type rateBucket struct {
	count int
	reset time.Time
}

// quota is the outcome of one request against a client's window.
type quota struct {
	allowed   bool
	remaining int
	resetIn   int
}

type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	clients map[string]*rateBucket
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		clients: map[string]*rateBucket{},
	}
}

// RateLimit allows limit requests per client IP in every window. A limit of
// zero disables it.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	rl := newRateLimiter(limit, window, time.Now)
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.ClientIP(r)
			q := rl.take(key)

			headers := w.Header()
			headers.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
			headers.Set("X-RateLimit-Remaining", strconv.Itoa(q.remaining))
			headers.Set("X-RateLimit-Reset", strconv.Itoa(q.resetIn))
			if !q.allowed {
				headers.Set("Retry-After", strconv.Itoa(max(q.resetIn, 1)))
				requestctx.Logger(r.Context()).Warn("rate limit exceeded",
					"client", key,
					"path", r.URL.Path,
					"method", r.Method,
					"limit", rl.limit,
					"windowSec", int(rl.window.Seconds()),
				)
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take counts one request for key, opening a fresh window when the previous
// one has expired.
func (rl *rateLimiter) take(key string) quota {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.clients) > sweepThreshold {
		rl.sweep(now)
	}
	bucket, ok := rl.clients[key]
	if !ok || now.After(bucket.reset) {
		bucket = &rateBucket{reset: now.Add(rl.window)}
		rl.clients[key] = bucket
	}
	bucket.count++
	return quota{
		allowed:   bucket.count <= rl.limit,
		remaining: max(rl.limit-bucket.count, 0),
		resetIn:   ceilSeconds(bucket.reset.Sub(now)),
	}
}

func (rl *rateLimiter) sweep(now time.Time) {
	for key, bucket := range rl.clients {
		if now.After(bucket.reset) {
			delete(rl.clients, key)
		}
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
