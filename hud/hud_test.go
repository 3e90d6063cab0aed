package hud_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/citymap/hud"
)

const eps = 1e-9

func TestMetrics(t *testing.T) {
	m := hud.Metrics(1)
	assert.Equal(t, 2.0, m.Dot)
	assert.Equal(t, 1.0, m.Gap)
	assert.Equal(t, 2.0, m.CharGap)
	assert.Equal(t, 14.0, m.CharW)
	assert.Equal(t, 20.0, m.CharH)

	m = hud.Metrics(0.65)
	assert.InDelta(t, 9.1, m.CharW, eps)
	assert.InDelta(t, 13.0, m.CharH, eps)

	// Non-positive scales fall back to 1.
	assert.Equal(t, hud.Metrics(1), hud.Metrics(0))
	assert.Equal(t, hud.Metrics(1), hud.Metrics(-3))
}

func TestMeasureWidth(t *testing.T) {
	assert.Zero(t, hud.MeasureWidth("", 1))
	assert.Equal(t, 14.0, hud.MeasureWidth("A", 1))
	assert.Equal(t, 78.0, hud.MeasureWidth("DHAKA", 1))
	// Unknown characters still occupy a cell.
	assert.Equal(t, hud.MeasureWidth("AB", 1), hud.MeasureWidth("A?", 1))
	assert.InDelta(t, 154.7, hud.MeasureWidth("COST BDT 2230.4", 0.65), eps)
}

func TestGlyph_Lookup(t *testing.T) {
	assert.Equal(t, hud.Glyph('A'), hud.Glyph('a'))
	assert.Equal(t, hud.Glyph(' '), hud.Glyph('?'))
	assert.False(t, hud.HasGlyph('?'))

	for r := 'A'; r <= 'Z'; r++ {
		assert.True(t, hud.HasGlyph(r), string(r))
		assert.NotEqual(t, hud.Glyph(' '), hud.Glyph(r), string(r))
	}
	for r := '0'; r <= '9'; r++ {
		assert.True(t, hud.HasGlyph(r), string(r))
	}
	assert.True(t, hud.HasGlyph('.'))
	assert.True(t, hud.HasGlyph('-'))
}

func TestRasterize(t *testing.T) {
	rects := hud.Rasterize("I", 0, 0, 1)
	require.Len(t, rects, 15)
	assert.Equal(t, hud.Rect{X0: 0, Y0: 0, X1: 2, Y1: 2}, rects[0])
	assert.Equal(t, hud.Rect{X0: 3, Y0: 0, X1: 5, Y1: 2}, rects[1])

	dash := hud.Rasterize("-", 10, 20, 1)
	require.Len(t, dash, 5)
	for _, r := range dash {
		assert.Equal(t, 29.0, r.Y0)
	}

	// Second glyph starts one advance to the right.
	two := hud.Rasterize(" -", 0, 0, 1)
	require.Len(t, two, 5)
	assert.Equal(t, 16.0, two[0].X0)

	assert.Empty(t, hud.Rasterize("? ", 0, 0, 1))
}

func TestViewport(t *testing.T) {
	v := hud.NewViewport(800, 600)

	x, y := v.PixelToNDC(400, 300)
	assert.InDelta(t, 0, x, eps)
	assert.InDelta(t, 0, y, eps)

	x, y = v.PixelToNDC(0, 0)
	assert.InDelta(t, -1, x, eps)
	assert.InDelta(t, 1, y, eps)

	px, py := v.NDCToPixel(1, -1)
	assert.InDelta(t, 800, px, eps)
	assert.InDelta(t, 600, py, eps)

	px, py = v.NDCToPixel(-0.7, 0.6)
	gx, gy := v.PixelToNDC(px, py)
	assert.InDelta(t, -0.7, gx, eps)
	assert.InDelta(t, 0.6, gy, eps)

	assert.Equal(t, hud.Viewport{W: 1, H: 1}, hud.NewViewport(0, -5))
	// A zero value behaves like 1x1 instead of dividing by zero.
	x, y = hud.Viewport{}.PixelToNDC(1, 1)
	assert.InDelta(t, 1, x, eps)
	assert.InDelta(t, -1, y, eps)
}

func TestNodeLabel(t *testing.T) {
	l := hud.NodeLabel(0, 0, "DHAKA", hud.NewViewport(800, 600))
	assert.Equal(t, 361.0, l.Left)
	assert.Equal(t, 262.0, l.Top)
	assert.Equal(t, 1.0, l.Scale)

	b := l.Bounds()
	assert.Equal(t, 400.0, (b.X0+b.X1)/2)
	assert.Equal(t, 282.0, b.Y1)
	assert.NotEmpty(t, l.Rects())
}

func TestLayoutPathPanel(t *testing.T) {
	lines := [3]string{"697KM", "13.9H", "COST BDT 2230.4"}
	p := hud.LayoutPathPanel(lines, hud.NewViewport(800, 600), hud.DefaultStyle())

	assert.InDelta(t, 575, p.Lines[0].Top, eps)
	assert.InDelta(t, 558.1, p.Lines[1].Top, eps)
	assert.InDelta(t, 541.2, p.Lines[2].Top, eps)
	for i, l := range p.Lines {
		assert.Equal(t, lines[i], l.Text)
		assert.Equal(t, 12.0, l.Left)
		assert.Equal(t, 0.65, l.Scale)
	}

	assert.InDelta(t, 4, p.Panel.X0, eps)
	assert.InDelta(t, 533.2, p.Panel.Y0, eps)
	assert.InDelta(t, 174.7, p.Panel.X1, eps)
	assert.InDelta(t, 596, p.Panel.Y1, eps)

	// Every line sits inside the panel.
	for _, l := range p.Lines {
		b := l.Bounds()
		assert.True(t, p.Panel.Contains(b.X0, b.Y0))
		assert.True(t, p.Panel.Contains(b.X1, b.Y1))
	}
}
