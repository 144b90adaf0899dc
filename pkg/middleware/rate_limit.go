package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "salon/pkg/errors"
	httputil "salon/pkg/http"
	"salon/pkg/logger"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// ClientRateLimiter keeps one token bucket per client address.
type ClientRateLimiter struct {
	limiters sync.Map // map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	log      *logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once

	// trustProxy keys buckets on forwarding headers instead of the peer.
	trustProxy bool
}

func NewClientRateLimiter(rps float64, burst int, trustProxy bool, log *logger.Logger) *ClientRateLimiter {
	if burst <= 0 {
		burst = 5
	}
	rl := &ClientRateLimiter{
		rps:        rate.Limit(rps),
		burst:      burst,
		log:        log,
		trustProxy: trustProxy,
		stopCh:     make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *ClientRateLimiter) getLimiter(key string) *clientLimiter {
	if v, ok := rl.limiters.Load(key); ok {
		return v.(*clientLimiter)
	}

	cl := &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
	actual, _ := rl.limiters.LoadOrStore(key, cl)
	return actual.(*clientLimiter)
}

func (rl *ClientRateLimiter) Allow(key string) bool {
	cl := rl.getLimiter(key)
	cl.lastSeen.Store(time.Now().UnixNano())
	return cl.limiter.Allow()
}

func (rl *ClientRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-limiterIdleTTL).UnixNano()
			rl.limiters.Range(func(key, value any) bool {
				if value.(*clientLimiter).lastSeen.Load() < cutoff {
					rl.limiters.Delete(key)
				}
				return true
			})
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ClientRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func RateLimit(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientIP(r, limiter.trustProxy)

			if !limiter.Allow(client) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", GetRequestID(r.Context()),
					"client", client,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", "1")
				_ = httputil.WriteError(w, apperrors.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the remote host. With trustProxy it prefers the first
// X-Forwarded-For hop, then X-Real-IP; clients can forge both, so only a
// proxy that overwrites them makes them safe to trust.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
			if first != "" {
				return first
			}
		}
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
