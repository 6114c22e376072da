package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type window struct {
	count int
	start time.Time
}

// fixedWindowLimiter counts requests per client in fixed windows. Expired
// windows are swept once per window length so idle clients do not pile up.
type fixedWindowLimiter struct {
	limit  int
	length time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*window
	lastSweep time.Time
}

func newFixedWindowLimiter(limit int, length time.Duration, now func() time.Time) *fixedWindowLimiter {
	return &fixedWindowLimiter{
		limit:     limit,
		length:    length,
		now:       now,
		clients:   make(map[string]*window),
		lastSweep: now(),
	}
}

// allow records a request from key. When the budget is spent it returns
// false and the time left until the window resets.
func (l *fixedWindowLimiter) allow(key string) (remaining int, retryAfter time.Duration, ok bool) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.length {
		for k, w := range l.clients {
			if now.Sub(w.start) >= l.length {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	w, found := l.clients[key]
	if !found || now.Sub(w.start) >= l.length {
		w = &window{start: now}
		l.clients[key] = w
	}

	if w.count >= l.limit {
		return 0, w.start.Add(l.length).Sub(now), false
	}
	w.count++
	return l.limit - w.count, 0, true
}

// RateLimiter allows limit requests per client IP in each window.
func RateLimiter(limit int, length time.Duration) echo.MiddlewareFunc {
	return rateLimiter(newFixedWindowLimiter(limit, length, time.Now))
}

func rateLimiter(l *fixedWindowLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			remaining, retryAfter, ok := l.allow(c.RealIP())

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
			header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !ok {
				seconds := int(retryAfter.Seconds())
				if retryAfter%time.Second != 0 {
					seconds++
				}
				header.Set("Retry-After", strconv.Itoa(seconds))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
