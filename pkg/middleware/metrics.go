package middleware

import (
	"net/http"
	"time"

	"salon/pkg/metrics"
)

func Metrics() func(http.Handler) http.Handler {
	metrics.Register()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			metrics.ObserveHTTP(r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}
