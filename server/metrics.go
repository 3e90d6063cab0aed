package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// metrics are registered on a per-server registry so several servers (and
// tests) can coexist in one process.
type metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	renders     prometheus.Counter
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	routes      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citymap",
			Name:      "http_requests_total",
			Help:      "HTTP requests by handler and status code.",
		}, []string{"handler", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "citymap",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by handler.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}, []string{"handler"}),
		renders: f.NewCounter(prometheus.CounterOpts{
			Namespace: "citymap",
			Name:      "map_renders_total",
			Help:      "Map images rasterized (cache misses that reached the renderer).",
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "citymap",
			Name:      "map_cache_hits_total",
			Help:      "Map image requests served from cache.",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "citymap",
			Name:      "map_cache_misses_total",
			Help:      "Map image requests not found in cache.",
		}),
		routes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citymap",
			Name:      "route_queries_total",
			Help:      "Shortest route queries by outcome.",
		}, []string{"outcome"}),
	}
}

// statusWriter remembers the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// instrument counts, times and logs every request to h.
func (s *Server) instrument(name string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		h(sw, r)

		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(name, strconv.Itoa(sw.code)).Inc()
		s.metrics.duration.WithLabelValues(name).Observe(elapsed.Seconds())
		s.log.Debug("request",
			zap.String("handler", name),
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
			zap.Int("code", sw.code),
			zap.Duration("elapsed", elapsed),
		)
	})
}
