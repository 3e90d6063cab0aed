// Package viewer is the interaction state machine of the map window, kept
// free of any windowing toolkit: clicks pick a start and a destination city,
// the second pick computes the shortest route, and key presses browse the
// photos of the most recently clicked city.
//
// Console output mirrors what a user sees in the terminal; structured events
// go to the zap logger.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/katalvlaran/citymap/atlas"
	"github.com/katalvlaran/citymap/gallery"
	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/render"
	"github.com/katalvlaran/citymap/trip"
)

// None marks an unset selection slot.
const None = -1

// DefaultHitRadius is the click tolerance in NDC units.
const DefaultHitRadius = 0.05

// Session holds the selection and the current route. Methods are safe for
// concurrent use, although a window drives it from a single goroutine.
type Session struct {
	m       *atlas.Map
	tariff  trip.Tariff
	browser *gallery.Browser
	out     io.Writer
	log     *zap.Logger
	radius  float64
	base    render.Scene

	mu      sync.Mutex
	first   int
	second  int
	last    int
	route   atlas.Route
	summary trip.Summary
}

// Option configures a Session.
type Option func(*Session)

// WithTariff sets the tariff used for trip summaries.
func WithTariff(t trip.Tariff) Option { return func(s *Session) { s.tariff = t } }

// WithBrowser enables the image keys.
func WithBrowser(b *gallery.Browser) Option { return func(s *Session) { s.browser = b } }

// WithOutput sets the console writer (default io.Discard).
func WithOutput(w io.Writer) Option { return func(s *Session) { s.out = w } }

// WithLogger sets the structured logger (default no-op).
func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.log = l } }

// WithHitRadius overrides DefaultHitRadius; values <= 0 are ignored.
func WithHitRadius(r float64) Option {
	return func(s *Session) {
		if r > 0 {
			s.radius = r
		}
	}
}

// NewSession starts with nothing selected.
func NewSession(m *atlas.Map, opts ...Option) *Session {
	s := &Session{
		m:      m,
		tariff: trip.DefaultTariff(),
		out:    io.Discard,
		log:    zap.NewNop(),
		radius: DefaultHitRadius,
		base:   render.NewScene(m),
		first:  None,
		second: None,
		last:   None,
	}
	for _, o := range opts {
		o(s)
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	return s
}

// Map returns the session's map.
func (s *Session) Map() *atlas.Map { return s.m }

// HitTest returns the first city, in index order, strictly within the hit
// radius of (x, y) in NDC, or None.
func (s *Session) HitTest(x, y float64) int {
	for i, c := range s.m.Cities() {
		if math.Hypot(x-c.X, y-c.Y) < s.radius {
			return i
		}
	}

	return None
}

// Click handles a left click at pixel (px, py) and returns the city hit, or
// None when the click missed every city and was ignored.
func (s *Session) Click(px, py float64, v hud.Viewport) int {
	x, y := v.PixelToNDC(px, py)
	hit := s.HitTest(x, y)
	if hit == None {
		return None
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = hit
	switch {
	case s.first == None:
		s.first = hit
		s.route = atlas.Route{}
		s.summary = trip.Summary{}
		s.printf("Starting from: %s\n", s.name(hit))
		s.log.Debug("start selected", zap.String("city", s.name(hit)))
	case hit != s.first:
		s.second = hit
		s.printf("Destination is: %s\n", s.name(hit))
		s.resolve()
		s.first, s.second = None, None
	}

	return hit
}

// resolve routes first -> second and reports the result. Caller holds mu.
func (s *Session) resolve() {
	from, to := s.first, s.second
	r, err := s.m.ShortestPath(from, to)
	switch {
	case errors.Is(err, atlas.ErrNoRoute):
		s.route, s.summary = atlas.Route{}, trip.Summary{}
		s.printf("No path found between %s and %s\n", s.name(from), s.name(to))
		s.log.Info("no route", zap.String("from", s.name(from)), zap.String("to", s.name(to)))

		return
	case err != nil:
		s.route, s.summary = atlas.Route{}, trip.Summary{}
		s.log.Error("route", zap.Error(err))

		return
	}

	s.route = r
	s.summary = trip.Summarize(r.Distance, s.tariff)
	s.printf("Path: %s\n", strings.Join(s.m.Names(r.Stops), " -> "))
	s.printf("Total distance: %s\n", strconv.FormatFloat(r.Distance, 'f', -1, 64))
	s.log.Info("route",
		zap.Strings("stops", s.m.Names(r.Stops)),
		zap.Float64("distance", r.Distance),
		zap.Float64("hours", s.summary.Hours),
		zap.Float64("cost", s.summary.Cost),
	)
}

// Selection returns the start, destination and last clicked city, each None when unset.
func (s *Session) Selection() (first, second, last int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.first, s.second, s.last
}

// Route returns the current route and its summary.
func (s *Session) Route() (atlas.Route, trip.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return atlas.Route{Stops: append([]int(nil), s.route.Stops...), Distance: s.route.Distance}, s.summary
}

// Scene snapshots what the renderer should draw now.
func (s *Session) Scene() render.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.route.Drawable() {
		return s.base
	}

	return s.base.WithRoute(s.route, s.summary)
}

// Key handles a key press for the last clicked city. Digits 1-9 open that
// image, ']' and '[' step forward and back, 'O' reopens the current image,
// 'A' opens all and 'L' lists them. Letters are case-insensitive. Keys are
// ignored until a city has been clicked or when no browser is configured.
func (s *Session) Key(ctx context.Context, k rune) error {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == None || s.browser == nil {
		return nil
	}
	city := s.name(last)

	switch k = unicode.ToUpper(k); {
	case k >= '1' && k <= '9':
		return s.browser.Open(ctx, city, int(k-'1'))
	case k == ']':
		return s.browser.Next(ctx, city)
	case k == '[':
		return s.browser.Prev(ctx, city)
	case k == 'O':
		return s.browser.OpenCurrent(ctx, city)
	case k == 'A':
		return s.browser.OpenAll(ctx, city)
	case k == 'L':
		return s.browser.PrintList(city)
	}

	return nil
}

// PrintControls writes the usage banner.
func (s *Session) PrintControls() {
	s.printf("Controls:\n")
	s.printf("  * Left-click two cities: computes and highlights the shortest path.\n")
	s.printf("  * Bottom-left HUD shows: distance, estimated time, travel cost.\n")
	s.printf("  * Image keys (after clicking a city): 1..9, ],[, O,A,L.\n")
	s.printf("  * Esc quits.\n\n")
}

func (s *Session) name(i int) string {
	c, err := s.m.City(i)
	if err != nil {
		return fmt.Sprintf("#%d", i)
	}

	return c.Name
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
