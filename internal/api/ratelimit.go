package api

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/config"
)

// RateLimiter throttles API requests per actor. Unauthenticated requests
// share one bucket keyed by remote address, which chi's RealIP middleware
// has already normalized.
type RateLimiter struct {
	cfg      config.RateLimitConfig
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

// NewRateLimiter creates a per-actor rate limiter.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst)
		rl.limiters[key] = l
	}
	return l
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if actor := auth.ActorFrom(r.Context()); actor != nil {
			key = "admin:" + actor.Email
		}
		if !rl.limiterFor(key).Allow() {
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
