package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/walletd/walletd/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts, latency and in-flight load.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metric recording. A nil metrics
// receiver turns the middleware into a pass-through.
func (mw *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	if mw.metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mw.metrics.HTTPInFlight.Inc()
		defer mw.metrics.HTTPInFlight.Dec()

		rec := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := normalizePath(r.URL.Path)
		mw.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.statusCode)).Inc()
		mw.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the underlying writer so streaming responses keep
// working behind the recorder.
func (r *metricsRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// normalizePath collapses account ids so the path label stays low
// cardinality. /api/v1/accounts/acc-1/balance -> /api/v1/accounts/:id/balance
func normalizePath(path string) string {
	if len(path) > 17 && path[:17] == "/api/v1/accounts/" && path[17] != '/' {
		suffix := ""
		for i := 17; i < len(path); i++ {
			if path[i] == '/' {
				suffix = path[i:]
				break
			}
		}

		return "/api/v1/accounts/:id" + suffix
	}

	return path
}
