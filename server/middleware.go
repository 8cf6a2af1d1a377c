package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func logMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if path == "" {
			path = "/"
		}
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// limiters caps request rate per client IP. Least recently seen clients
// are forgotten once maxTrackedClients is reached.
type limiters struct {
	rate  rate.Limit
	burst int
	cache *lru.Cache[string, *rate.Limiter]
}

const maxTrackedClients = 4096

func newLimiters(r float64, burst int) (*limiters, error) {
	if r <= 0 {
		return nil, nil
	}
	if burst < 1 {
		burst = 1
	}
	c, err := lru.New[string, *rate.Limiter](maxTrackedClients)
	if err != nil {
		return nil, err
	}
	return &limiters{rate: rate.Limit(r), burst: burst, cache: c}, nil
}

func (l *limiters) allow(ip string) bool {
	lim, ok := l.cache.Get(ip)
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		if prev, loaded, _ := l.cache.PeekOrAdd(ip, lim); loaded {
			lim = prev
		}
	}
	return lim.Allow()
}

// middleware is a no-op when rate limiting is disabled.
func (l *limiters) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l != nil && !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			fail(c, http.StatusTooManyRequests, ErrorRateLimited, "too many story requests, slow down")
			return
		}
		c.Next()
	}
}
