package viewer_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/citymap/atlas"
	"github.com/katalvlaran/citymap/gallery"
	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/viewer"
)

var vp = hud.NewViewport(800, 600)

// Pixel centres of cities in an 800x600 window.
var (
	rajshahi   = [2]float64{40, 360}
	chittagong = [2]float64{720, 510}
	dhaka      = [2]float64{400, 300}
)

func newSession(t *testing.T, opts ...viewer.Option) (*viewer.Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]viewer.Option{viewer.WithOutput(&out), viewer.WithLogger(zaptest.NewLogger(t))}, opts...)

	return viewer.NewSession(atlas.Default(), opts...), &out
}

func click(s *viewer.Session, p [2]float64) int { return s.Click(p[0], p[1], vp) }

func TestClick_MissIsIgnored(t *testing.T) {
	s, out := newSession(t)
	assert.Equal(t, viewer.None, s.Click(10, 10, vp))

	first, second, last := s.Selection()
	assert.Equal(t, []int{viewer.None, viewer.None, viewer.None}, []int{first, second, last})
	assert.Empty(t, out.String())
}

func TestClick_TwoCitiesComputesRoute(t *testing.T) {
	s, out := newSession(t)

	assert.Equal(t, 5, click(s, rajshahi))
	assert.Equal(t, "Starting from: Rajshahi\n", out.String())
	first, _, last := s.Selection()
	assert.Equal(t, 5, first)
	assert.Equal(t, 5, last)
	assert.False(t, s.Scene().HasPath())

	out.Reset()
	assert.Equal(t, 3, click(s, chittagong))
	assert.Equal(t,
		"Destination is: Chittagong\n"+
			"Path: Rajshahi -> Khulna -> Chittagong\n"+
			"Total distance: 697\n",
		out.String())

	first, second, last := s.Selection()
	assert.Equal(t, viewer.None, first)
	assert.Equal(t, viewer.None, second)
	assert.Equal(t, 3, last)

	r, sum := s.Route()
	assert.Equal(t, []int{5, 2, 3}, r.Stops)
	assert.Equal(t, "COST BDT 2230.4", sum.CostText())

	scene := s.Scene()
	require.True(t, scene.HasPath())
	assert.Equal(t, [3]string{"697KM", "13.9H", "COST BDT 2230.4"}, scene.Panel)
}

func TestClick_SameCityTwice(t *testing.T) {
	s, out := newSession(t)
	click(s, dhaka)
	out.Reset()

	assert.Equal(t, 4, click(s, dhaka))
	assert.Empty(t, out.String())
	first, second, last := s.Selection()
	assert.Equal(t, 4, first)
	assert.Equal(t, viewer.None, second)
	assert.Equal(t, 4, last)
}

func TestClick_NewStartClearsRoute(t *testing.T) {
	s, _ := newSession(t)
	click(s, rajshahi)
	click(s, chittagong)
	require.True(t, s.Scene().HasPath())

	click(s, dhaka)
	assert.False(t, s.Scene().HasPath())
	r, _ := s.Route()
	assert.True(t, r.Empty())
}

func TestClick_NoRoute(t *testing.T) {
	m, err := atlas.Parse([]byte(`
cities:
  - {name: A, x: 0, y: 0}
  - {name: B, x: 0.5, y: 0.5}
  - {name: C, x: -0.5, y: -0.5}
roads:
  - {from: A, to: B, km: 10}
`))
	require.NoError(t, err)

	var out bytes.Buffer
	s := viewer.NewSession(m, viewer.WithOutput(&out))
	s.Click(400, 300, vp) // A
	s.Click(200, 450, vp) // C
	assert.Equal(t, "Starting from: A\nDestination is: C\nNo path found between A and C\n", out.String())
	assert.False(t, s.Scene().HasPath())
}

func TestHitTest(t *testing.T) {
	s, _ := newSession(t)
	assert.Equal(t, 4, s.HitTest(0.049, 0))
	assert.Equal(t, viewer.None, s.HitTest(0.05, 0))
	assert.Equal(t, 3, s.HitTest(0.8, -0.7))

	wide, _ := newSession(t, viewer.WithHitRadius(0.2))
	assert.Equal(t, 4, wide.HitTest(0.15, 0))

	// Overlapping cities resolve to the lower index.
	m, err := atlas.Parse([]byte("cities: [{name: A, x: 0, y: 0}, {name: B, x: 0.01, y: 0}]"))
	require.NoError(t, err)
	assert.Equal(t, 0, viewer.NewSession(m).HitTest(0.005, 0))
}

func TestClick_ResizedViewport(t *testing.T) {
	s, _ := newSession(t)
	// Dhaka stays at the centre whatever the window size.
	assert.Equal(t, 4, s.Click(150, 100, hud.NewViewport(300, 200)))
}

func TestKey_ImageCommands(t *testing.T) {
	var opened []string
	opener := gallery.OpenerFunc(func(_ context.Context, p string) error {
		opened = append(opened, filepath.Base(p))

		return nil
	})
	lib, err := gallery.NewLibrary(t.TempDir(), gallery.CatalogFromMap(atlas.Default()))
	require.NoError(t, err)

	var out bytes.Buffer
	s := viewer.NewSession(atlas.Default(),
		viewer.WithOutput(&out),
		viewer.WithBrowser(gallery.NewBrowser(lib, opener, &out, nil)),
	)
	ctx := context.Background()

	// Nothing clicked yet.
	require.NoError(t, s.Key(ctx, '1'))
	assert.Empty(t, opened)

	click(s, dhaka)
	require.NoError(t, s.Key(ctx, '2'))
	require.NoError(t, s.Key(ctx, ']'))
	require.NoError(t, s.Key(ctx, '['))
	require.NoError(t, s.Key(ctx, 'o'))
	assert.Equal(t, []string{"Lalbag Kella.jpg", "Parliament House.jpg", "Lalbag Kella.jpg", "Lalbag Kella.jpg"}, opened)

	require.ErrorIs(t, s.Key(ctx, '9'), gallery.ErrInvalidIndex)

	opened = nil
	require.NoError(t, s.Key(ctx, 'A'))
	assert.Len(t, opened, 3)

	out.Reset()
	require.NoError(t, s.Key(ctx, 'l'))
	assert.Contains(t, out.String(), "Images for city 'Dhaka' (3):")

	// Unbound keys do nothing.
	require.NoError(t, s.Key(ctx, 'z'))
}

func TestKey_WithoutBrowser(t *testing.T) {
	s, _ := newSession(t)
	click(s, dhaka)
	require.NoError(t, s.Key(context.Background(), '1'))
}

func TestKeyEdges(t *testing.T) {
	var e viewer.KeyEdges
	assert.True(t, e.Press('A', true))
	assert.False(t, e.Press('A', true))
	assert.False(t, e.Press('A', false))
	assert.True(t, e.Press('A', true))
	assert.True(t, e.Press(']', true))

	e.Reset()
	assert.True(t, e.Press('A', true))
}

func TestPrintControls(t *testing.T) {
	s, out := newSession(t)
	s.PrintControls()
	assert.Contains(t, out.String(), "Controls:")
	assert.Contains(t, out.String(), "1..9")
}
