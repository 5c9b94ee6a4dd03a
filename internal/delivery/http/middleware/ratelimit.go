package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	h "guestportal/internal/delivery/http/helpers"
)

// RateLimitConfig defines the per-client rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window.
	RequestsPerWindow int
	// Window is the time window for rate limiting.
	Window time.Duration
}

// DefaultRateLimit allows 100 requests per 15 minutes per client IP.
var DefaultRateLimit = RateLimitConfig{
	RequestsPerWindow: 100,
	Window:            15 * time.Minute,
}

// clientIP extracts the caller's IP, honoring X-Forwarded-For and X-Real-IP
// for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// ipRateLimiter holds one token bucket per client IP.
type ipRateLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	lastCleanup time.Time
}

func (rl *ipRateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Drop idle buckets (full token count) so the map does not grow without
	// bound across ephemeral client IPs.
	if time.Since(rl.lastCleanup) > 5*time.Minute {
		rl.lastCleanup = time.Now()
		for key, lim := range rl.limiters {
			if lim.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, key)
			}
		}
	}

	lim, ok := rl.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[ip] = lim
	}
	return lim
}

// RateLimit returns a handler that limits each client IP to the configured
// request rate, responding with 429 when the limit is exceeded.
func RateLimit(config RateLimitConfig, logger *slog.Logger, next http.Handler) http.Handler {
	rl := &ipRateLimiter{
		limiters:    make(map[string]*rate.Limiter),
		rate:        rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds()),
		burst:       config.RequestsPerWindow,
		lastCleanup: time.Now(),
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.limiter(ip).Allow() {
			logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			h.WriteError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
