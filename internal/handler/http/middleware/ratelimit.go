package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	r        rate.Limit
	b        int
	idleTTL  time.Duration
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		r:        r,
		b:        b,
		idleTTL:  10 * time.Minute,
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	l, exists := i.limiters[ip]
	if !exists {
		i.evictIdle(now)
		l = &ipLimiter{limiter: rate.NewLimiter(i.r, i.b)}
		i.limiters[ip] = l
	}
	l.lastSeen = now

	return l.limiter
}

// evictIdle drops buckets unused for idleTTL. Caller holds mu.
func (i *IPRateLimiter) evictIdle(now time.Time) {
	for ip, l := range i.limiters {
		if now.Sub(l.lastSeen) > i.idleTTL {
			delete(i.limiters, ip)
		}
	}
}

// RateLimitByIP allows r requests per second with burst b from each client IP.
func RateLimitByIP(r rate.Limit, b int) func(http.Handler) http.Handler {
	limiter := NewIPRateLimiter(r, b)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.GetLimiter(clientIP(req)).Allow() {
				response.TooManyRequests(w, "Too many requests from this IP")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
