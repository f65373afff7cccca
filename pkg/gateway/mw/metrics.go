package mw

import (
	"net/http"
	"time"

	"github.com/Shivsankar1987/deutschcoach/pkg/gateway/metrics"
)

// Metrics records request counts and latency per path.
func Metrics(m *metrics.Metrics, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(sw, r)
		m.ObserveRequest(r.URL.Path, sw.status, time.Since(start))
	})
}
