package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = 5 * time.Minute
)

// ipLimiter stores per-IP rate limiters. Idle entries are swept lazily.
type ipLimiter struct {
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      r,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (ipl *ipLimiter) getLimiter(ip string) *rate.Limiter {
	ipl.mu.Lock()
	defer ipl.mu.Unlock()

	now := ipl.now()
	if now.Sub(ipl.lastSweep) > limiterSweepInterval {
		for key, entry := range ipl.limiters {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(ipl.limiters, key)
			}
		}
		ipl.lastSweep = now
	}

	entry, exists := ipl.limiters[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(ipl.rate, ipl.burst)}
		ipl.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// RateLimit returns middleware that limits requests per client IP.
// rps is the sustained number of requests per second, burst the max burst size.
// X-Forwarded-For is only read when the peer is one of trustedProxies.
func RateLimit(rps float64, burst int, trustedProxies []netip.Prefix) func(http.Handler) http.Handler {
	ipl := newIPLimiter(rate.Limit(rps), burst)
	clientIP := clientIPResolver(trustedProxies)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ipl.getLimiter(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				response.TooManyRequests(w, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIPResolver returns the peer address unless the peer is a trusted
// proxy, in which case the right-most untrusted X-Forwarded-For hop wins.
func clientIPResolver(trustedProxies []netip.Prefix) func(*http.Request) string {
	trusted := func(ip string) bool {
		addr, err := netip.ParseAddr(ip)
		if err != nil {
			return false
		}
		addr = addr.Unmap()
		for _, p := range trustedProxies {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(r *http.Request) string {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if len(trustedProxies) == 0 || !trusted(host) {
			return host
		}

		hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !trusted(hop) {
				return hop
			}
			host = hop
		}
		return host
	}
}
