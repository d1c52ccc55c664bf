package auth

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	pruneInterval = time.Minute
	clientIdleTTL = 10 * time.Minute
)

// LoginLimiter rate-limits login attempts per client IP with a token bucket
// per address. It protects the credential check from brute forcing.
type LoginLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	lastPrune time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter creates a limiter allowing requestsPerSecond sustained
// attempts with the given burst per IP. Idle entries are pruned lazily on
// Allow, so the limiter needs no background goroutine.
func NewLoginLimiter(requestsPerSecond float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		clients:   make(map[string]*clientLimiter),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		lastPrune: time.Now(),
	}
}

// Allow reports whether the request from the given remote address may
// proceed.
func (l *LoginLimiter) Allow(remoteAddr string) bool {
	ip := clientIP(remoteAddr)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) >= pruneInterval {
		l.pruneLocked(now)
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.Allow()
}

func (l *LoginLimiter) pruneLocked(now time.Time) {
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(l.clients, ip)
		}
	}
	l.lastPrune = now
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// limitLogin wraps a handler with the per-IP limiter, answering 429 when the
// bucket is empty.
func limitLogin(limiter *LoginLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
