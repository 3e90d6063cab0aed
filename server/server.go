// Package server exposes the city map over HTTP: the city list, shortest
// routes with trip statistics, rendered map images and Prometheus metrics.
//
// Rendered images are cached by request. Concurrent requests for the same
// uncached image share one render through singleflight.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/citymap/atlas"
	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/render"
	"github.com/katalvlaran/citymap/trip"
)

// Query parameters.
const (
	ParamFrom   = "from"
	ParamTo     = "to"
	ParamWidth  = "w"
	ParamHeight = "h"
	ParamBy     = "by" // distance (default) | stops
)

// Defaults.
const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultCacheSize = 64
	DefaultMaxPixels = 4096 * 4096
)

// errBadRequest marks client errors that map to 400.
var errBadRequest = errors.New("bad request")

// Server serves one map. Create it with New.
type Server struct {
	m         *atlas.Map
	renderer  *render.Renderer
	tariff    trip.Tariff
	log       *zap.Logger
	maxPixels int
	cacheSize int

	cache   *imageCache
	group   singleflight.Group
	reg     *prometheus.Registry
	metrics *metrics
	mux     *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithTariff sets the tariff for route summaries.
func WithTariff(t trip.Tariff) Option { return func(s *Server) { s.tariff = t } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(s *Server) { s.log = l } }

// WithCacheSize bounds the image cache; 0 disables it.
func WithCacheSize(n int) Option { return func(s *Server) { s.cacheSize = n } }

// WithMaxPixels caps w*h of /map.png.
func WithMaxPixels(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxPixels = n
		}
	}
}

// New builds a server and its routes.
func New(m *atlas.Map, r *render.Renderer, opts ...Option) *Server {
	s := &Server{
		m:         m,
		renderer:  r,
		tariff:    trip.DefaultTariff(),
		log:       zap.NewNop(),
		maxPixels: DefaultMaxPixels,
		cacheSize: DefaultCacheSize,
		reg:       prometheus.NewRegistry(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.metrics = newMetrics(s.reg)
	cache, err := newImageCache(s.cacheSize)
	if err != nil {
		s.log.Warn("image cache disabled", zap.Int("size", s.cacheSize), zap.Error(err))
		cache = &imageCache{}
	}
	s.cache = cache

	s.mux = http.NewServeMux()
	s.mux.Handle("GET /{$}", s.instrument("root", s.root))
	s.mux.Handle("GET /cities", s.instrument("cities", s.cities))
	s.mux.Handle("GET /route", s.instrument("route", s.route))
	s.mux.Handle("GET /map.png", s.instrument("map", s.mapPNG))
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("serving", zap.String("addr", addr))

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.log.Info("stopped")

	return nil
}

// root just tells that the server is alive.
func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "citymap is up and running\n")
}

// CityJSON is one entry of /cities.
type CityJSON struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Images    []string `json:"images"`
	Component int      `json:"component"` // connected component, 0-based
}

func (s *Server) cities(w http.ResponseWriter, _ *http.Request) {
	cities := s.m.Cities()
	component := make([]int, len(cities))
	for ci, comp := range s.m.Components() {
		for _, i := range comp {
			component[i] = ci
		}
	}
	out := make([]CityJSON, len(cities))
	for i, c := range cities {
		out[i] = CityJSON{Index: i, Name: c.Name, X: c.X, Y: c.Y, Images: c.Images, Component: component[i]}
	}
	s.writeJSON(w, http.StatusOK, out)
}

// RouteJSON is the /route response. Found is false, with no stops and zero
// distance, when the cities are not connected.
type RouteJSON struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	By       string       `json:"by"`
	Found    bool         `json:"found"`
	Stops    []string     `json:"stops"`
	Distance float64      `json:"distance"`
	Summary  trip.Summary `json:"summary"`
	Lines    [3]string    `json:"lines"`
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.endpoints(r, true)
	if err != nil {
		s.writeError(w, err)

		return
	}

	by := r.URL.Query().Get(ParamBy)
	var rt atlas.Route
	switch by {
	case "", "distance":
		by = "distance"
		rt, err = s.m.ShortestPath(from, to)
	case "stops":
		rt, err = s.m.FewestStops(from, to)
	default:
		s.writeError(w, fmt.Errorf("%w: %s=%q must be distance or stops", errBadRequest, ParamBy, by))

		return
	}

	resp := RouteJSON{
		From:  s.m.Names([]int{from})[0],
		To:    s.m.Names([]int{to})[0],
		By:    by,
		Stops: []string{},
	}
	switch {
	case errors.Is(err, atlas.ErrNoRoute):
		s.metrics.routes.WithLabelValues("unreachable").Inc()
	case err != nil:
		s.metrics.routes.WithLabelValues("error").Inc()
		s.writeError(w, err)

		return
	default:
		s.metrics.routes.WithLabelValues("found").Inc()
		sum := trip.Summarize(rt.Distance, s.tariff)
		resp.Found = true
		resp.Stops = s.m.Names(rt.Stops)
		resp.Distance = rt.Distance
		resp.Summary = sum
		resp.Lines = sum.Lines()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) mapPNG(w http.ResponseWriter, r *http.Request) {
	width, err := intParam(r, ParamWidth, DefaultWidth)
	if err != nil {
		s.writeError(w, err)

		return
	}
	height, err := intParam(r, ParamHeight, DefaultHeight)
	if err != nil {
		s.writeError(w, err)

		return
	}
	if width > s.maxPixels || height > s.maxPixels || width*height > s.maxPixels {
		s.writeError(w, fmt.Errorf("%w: %dx%d exceeds %d pixels", errBadRequest, width, height, s.maxPixels))

		return
	}

	from, to, err := s.endpoints(r, false)
	if err != nil {
		s.writeError(w, err)

		return
	}

	key := fmt.Sprintf("%d|%d|%dx%d", from, to, width, height)
	if b, ok := s.cache.Get(key); ok {
		s.metrics.cacheHits.Inc()
		writePNG(w, b)

		return
	}
	s.metrics.cacheMisses.Inc()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if b, ok := s.cache.Get(key); ok {
			return b, nil
		}
		b, err := s.renderPNG(from, to, hud.NewViewport(width, height))
		if err != nil {
			return nil, err
		}
		s.cache.Put(key, b)

		return b, nil
	})
	if err != nil {
		s.writeError(w, err)

		return
	}
	b, ok := v.([]byte)
	if !ok {
		s.writeError(w, fmt.Errorf("server: unexpected render result %T", v))

		return
	}
	writePNG(w, b)
}

// renderPNG draws the map, highlighting from -> to when both are set.
func (s *Server) renderPNG(from, to int, v hud.Viewport) ([]byte, error) {
	scene := render.NewScene(s.m)
	if from >= 0 && to >= 0 {
		rt, err := s.m.ShortestPath(from, to)
		if err != nil && !errors.Is(err, atlas.ErrNoRoute) {
			return nil, err
		}
		if rt.Drawable() {
			scene = scene.WithRoute(rt, trip.Summarize(rt.Distance, s.tariff))
		}
	}

	var buf bytes.Buffer
	if err := s.renderer.EncodePNG(&buf, scene, v); err != nil {
		return nil, fmt.Errorf("server: encode png: %w", err)
	}
	s.metrics.renders.Inc()

	return buf.Bytes(), nil
}

// endpoints resolves the from/to parameters. When required is false both may
// be absent, yielding -1, -1; giving only one of them is always an error.
func (s *Server) endpoints(r *http.Request, required bool) (int, int, error) {
	q := r.URL.Query()
	fromName, toName := q.Get(ParamFrom), q.Get(ParamTo)
	if fromName == "" && toName == "" && !required {
		return -1, -1, nil
	}
	if fromName == "" || toName == "" {
		return 0, 0, fmt.Errorf("%w: both %q and %q are required", errBadRequest, ParamFrom, ParamTo)
	}
	from, err := s.m.Index(fromName)
	if err != nil {
		return 0, 0, err
	}
	to, err := s.m.Index(toName)
	if err != nil {
		return 0, 0, err
	}

	return from, to, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s=%q must be a positive integer", errBadRequest, name, raw)
	}

	return n, nil
}

func writePNG(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, atlas.ErrCityNotFound):
		code = http.StatusNotFound
	default:
		s.log.Error("request failed", zap.Error(err))
	}
	http.Error(w, err.Error(), code)
}
