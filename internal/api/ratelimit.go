package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Idle buckets expire
// from the cache.
type RateLimiter struct {
	visitors *cache.Cache
	r        rate.Limit
	b        int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		visitors: cache.New(10*time.Minute, time.Minute),
		r:        r,
		b:        b,
	}
}

func (rl *RateLimiter) visitor(ip string) *rate.Limiter {
	if v, ok := rl.visitors.Get(ip); ok {
		rl.visitors.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.r, rl.b)
	// Add fails if a concurrent request created the bucket first.
	if err := rl.visitors.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		if v, ok := rl.visitors.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.visitor(c.ClientIP()).Allow() {
			respondError(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
