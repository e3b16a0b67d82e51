package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tavola/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ── Per-IP token bucket ───────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP: limit tokens, refilled
// evenly over window. Idle entries are purged on the request path every purgeInterval.
type ipLimiter struct {
	mu        sync.Mutex
	entries   map[string]*ipEntry
	limit     int
	window    time.Duration
	nextPurge time.Time
	now       func() time.Time
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	if limit < 1 {
		limit = 1
	}
	return &ipLimiter{
		entries: make(map[string]*ipEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// allow takes one token for ip. When none is left it also returns how long
// until the next token arrives.
func (l *ipLimiter) allow(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextPurge) {
		l.purge(now)
		l.nextPurge = now.Add(purgeInterval)
	}

	entry, ok := l.entries[ip]
	if !ok {
		entry = &ipEntry{limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit)}
		l.entries[ip] = entry
	}
	entry.lastSeen = now

	if entry.limiter.AllowN(now, 1) {
		return true, 0
	}
	r := entry.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

// purge drops buckets idle for a full window; they would be full again anyway.
// Must be called with mu held.
func (l *ipLimiter) purge(now time.Time) {
	purged := 0
	for ip, entry := range l.entries {
		if now.Sub(entry.lastSeen) > l.window {
			delete(l.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.entries)).Msg("rate limiter entries purged")
	}
}

func (l *ipLimiter) middleware(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := l.allow(c.ClientIP())
		if !ok {
			retry := int(math.Ceil(wait.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(message))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to perMinute per IP.
func LoginRateLimiter(perMinute int) gin.HandlerFunc {
	return newIPLimiter(perMinute, time.Minute).middleware("too many login attempts, try again in a minute")
}

// RateLimiter limits every request to limit per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window).middleware("too many requests, try again shortly")
}
