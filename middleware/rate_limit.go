package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter hands out one token bucket per client IP. Buckets for
// idle clients get dropped by a background sweep so the map can't
// grow without bound
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      int
	burst    int
}

func (r *rateLimiter) visitorFor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(r.rps), r.burst)}
		r.visitors[ip] = v
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (r *rateLimiter) sweep(ttl, interval time.Duration) {
	for {
		time.Sleep(interval)

		r.mu.Lock()
		for ip, v := range r.visitors {
			if time.Since(v.lastSeen) > ttl {
				delete(r.visitors, ip)
			}
		}
		r.mu.Unlock()
	}
}

// RateLimiterMiddleware rejects clients that exceed rps requests per
// second with a burst allowance of 2*rps
func RateLimiterMiddleware(rps int) gin.HandlerFunc {
	r := &rateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    rps * 2,
	}

	go r.sweep(3*time.Minute, time.Minute)

	return func(c *gin.Context) {
		if !r.visitorFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   true,
				"message": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
