package render_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/citymap/atlas"
	"github.com/katalvlaran/citymap/hud"
	"github.com/katalvlaran/citymap/render"
	"github.com/katalvlaran/citymap/trip"
)

var vp = hud.NewViewport(800, 600)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)

	return r
}

func routeScene(t *testing.T) render.Scene {
	t.Helper()
	m := atlas.Default()
	route, err := m.RouteByName("Rajshahi", "Chittagong")
	require.NoError(t, err)

	return render.NewScene(m).WithRoute(route, trip.Summarize(route.Distance, trip.DefaultTariff()))
}

func TestNewScene(t *testing.T) {
	s := render.NewScene(atlas.Default())
	assert.Len(t, s.Nodes, 7)
	assert.Len(t, s.Roads, 12)
	assert.False(t, s.HasPath())
	assert.Equal(t, "Dhaka", s.Nodes[4].Name)

	rs := routeScene(t)
	assert.True(t, rs.HasPath())
	assert.Equal(t, []int{5, 2, 3}, rs.Path)
	assert.Equal(t, [3]string{"697KM", "13.9H", "COST BDT 2230.4"}, rs.Panel)
}

func TestRender_Layers(t *testing.T) {
	r := newRenderer(t)
	img := r.Render(render.NewScene(atlas.Default()), vp)
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())

	bg := img.RGBAAt(5, 590)
	assert.InDelta(t, 31, int(bg.R), 2)
	assert.InDelta(t, 36, int(bg.G), 2)
	assert.InDelta(t, 43, int(bg.B), 2)

	// Dhaka sits at the centre of the map.
	node := img.RGBAAt(400, 300)
	assert.InDelta(t, 229, int(node.R), 2)
	assert.InDelta(t, 140, int(node.G), 2)
	assert.InDelta(t, 51, int(node.B), 2)

	// Midpoint of the Rangpur-Sylhet road.
	road := img.RGBAAt(300, 90)
	assert.Greater(t, int(road.R), 200)
	assert.Greater(t, int(road.G), 200)
	assert.Greater(t, int(road.B), 200)

	// Without a route the Rajshahi-Khulna road is white, not green.
	seg := img.RGBAAt(160, 390)
	assert.Greater(t, int(seg.R), 200)
}

func TestRender_RouteAndPanel(t *testing.T) {
	r := newRenderer(t)
	plain := r.Render(render.NewScene(atlas.Default()), vp)
	img := r.Render(routeScene(t), vp)

	seg := img.RGBAAt(160, 390)
	assert.Less(t, int(seg.R), 60)
	assert.Greater(t, int(seg.G), 200)
	assert.Less(t, int(seg.B), 60)

	// The panel darkens the bottom-left corner.
	under := plain.RGBAAt(6, 590)
	over := img.RGBAAt(6, 590)
	assert.Less(t, int(over.R), int(under.R))
	assert.Less(t, int(over.B), int(under.B))

	// Outside the panel nothing changes.
	assert.Equal(t, plain.RGBAAt(790, 590), img.RGBAAt(790, 590))
}

func TestRender_SingleStopHasNoPanel(t *testing.T) {
	r := newRenderer(t)
	m := atlas.Default()
	base := render.NewScene(m)
	one := base.WithRoute(atlas.Route{Stops: []int{4}}, trip.Summarize(0, trip.DefaultTariff()))

	assert.Equal(t, r.Render(base, vp).Pix, r.Render(one, vp).Pix)
}

func TestRender_HelpLine(t *testing.T) {
	r := newRenderer(t)
	base := render.NewScene(atlas.Default())
	withHelp := base
	withHelp.Help = "click two cities"

	assert.NotEqual(t, r.Render(base, vp).Pix, r.Render(withHelp, vp).Pix)
}

func TestRender_TinyViewport(t *testing.T) {
	r := newRenderer(t)
	img := r.Render(routeScene(t), hud.Viewport{})
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestEncodePNG(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf, routeScene(t), hud.NewViewport(320, 240)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestSavePNG(t *testing.T) {
	r := newRenderer(t)
	path := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, r.SavePNG(path, routeScene(t), vp))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = r.SavePNG(filepath.Join(t.TempDir(), "missing", "map.png"), routeScene(t), vp)
	require.Error(t, err)
}
