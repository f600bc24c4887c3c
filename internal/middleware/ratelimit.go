package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdle is how long a client may go unseen before its limiter is
// dropped. A dropped client starts again with a full burst.
const limiterIdle = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters:  make(map[string]*clientLimiter),
		rate:      r,
		burst:     burst,
		idle:      limiterIdle,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (ipl *ipLimiter) get(ip string) *rate.Limiter {
	ipl.mu.Lock()
	defer ipl.mu.Unlock()

	now := ipl.now()
	if now.Sub(ipl.lastSweep) >= ipl.idle {
		ipl.sweep(now)
	}

	cl, ok := ipl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(ipl.rate, ipl.burst)}
		ipl.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweep drops clients idle for longer than ipl.idle. Callers hold ipl.mu.
func (ipl *ipLimiter) sweep(now time.Time) {
	for ip, cl := range ipl.limiters {
		if now.Sub(cl.lastSeen) > ipl.idle {
			delete(ipl.limiters, ip)
		}
	}
	ipl.lastSweep = now
}

// RateLimit allows each client perMinute requests per minute, with bursts
// up to the same amount. Clients are keyed by RemoteAddr, so chi's RealIP
// should run first when behind a proxy.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(h http.Handler) http.Handler { return h }
	}
	il := newIPLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !il.get(clientIP(r)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests"}`))
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr; RealIP leaves a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
