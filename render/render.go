// Package render rasterizes a Scene with fogleman/gg: roads, the highlighted
// route, city markers, dot-font labels and the trip panel. The optional help
// line uses the Go Regular TrueType face.
//
// Output is an *image.RGBA, so the same frames feed the desktop window, PNG
// export and the HTTP server.
package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/katalvlaran/citymap/hud"
)

// Palette is the colour scheme, as float RGB in [0,1].
type Palette struct {
	Background [3]float64
	Road       [3]float64
	Path       [3]float64
	Node       [3]float64
	Text       [3]float64
	Help       [3]float64
}

// DefaultPalette matches the viewer's dark theme.
func DefaultPalette() Palette {
	return Palette{
		Background: [3]float64{0.12, 0.14, 0.17},
		Road:       [3]float64{1, 1, 1},
		Path:       [3]float64{0, 1, 0},
		Node:       [3]float64{0.9, 0.55, 0.2},
		Text:       [3]float64{1, 1, 1},
		Help:       [3]float64{0.7, 0.72, 0.75},
	}
}

// Stroke and marker sizes in pixels.
const (
	DefaultLineWidth = 3.0
	DefaultNodeSize  = 15.0
	DefaultHelpSize  = 13.0
)

// Renderer draws scenes. It is immutable after New and safe for concurrent use.
type Renderer struct {
	style    hud.Style
	palette  Palette
	line     float64
	node     float64
	helpSize float64
	font     *truetype.Font
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle sets the trip panel style.
func WithStyle(s hud.Style) Option { return func(r *Renderer) { r.style = s } }

// WithPalette replaces the colour scheme.
func WithPalette(p Palette) Option { return func(r *Renderer) { r.palette = p } }

// WithHelpSize sets the help line font size in points; <= 0 keeps the default.
func WithHelpSize(pt float64) Option {
	return func(r *Renderer) {
		if pt > 0 {
			r.helpSize = pt
		}
	}
}

// New parses the embedded Go Regular font and applies opts.
func New(opts ...Option) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	r := &Renderer{
		style:    hud.DefaultStyle(),
		palette:  DefaultPalette(),
		line:     DefaultLineWidth,
		node:     DefaultNodeSize,
		helpSize: DefaultHelpSize,
		font:     f,
	}
	for _, o := range opts {
		o(r)
	}

	return r, nil
}

// Render draws s into a fresh image the size of v.
func (r *Renderer) Render(s Scene, v hud.Viewport) *image.RGBA {
	v = hud.NewViewport(v.W, v.H)
	img := image.NewRGBA(image.Rect(0, 0, v.W, v.H))
	r.Draw(gg.NewContextForRGBA(img), s, v)

	return img
}

// EncodePNG renders s and writes it as PNG.
func (r *Renderer) EncodePNG(w io.Writer, s Scene, v hud.Viewport) error {
	v = hud.NewViewport(v.W, v.H)
	dc := gg.NewContext(v.W, v.H)
	r.Draw(dc, s, v)

	return dc.EncodePNG(w)
}

// SavePNG renders s into a PNG file at path.
func (r *Renderer) SavePNG(path string, s Scene, v hud.Viewport) error {
	v = hud.NewViewport(v.W, v.H)
	dc := gg.NewContext(v.W, v.H)
	r.Draw(dc, s, v)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}

	return nil
}

// Draw paints s onto dc, back to front.
func (r *Renderer) Draw(dc *gg.Context, s Scene, v hud.Viewport) {
	setRGB(dc, r.palette.Background)
	dc.Clear()

	r.drawRoads(dc, s, v)
	if s.HasPath() {
		r.drawPath(dc, s, v)
	}
	r.drawNodes(dc, s, v)
	r.drawLabels(dc, s, v)
	if s.HasPath() {
		r.drawPanel(dc, s, v)
	}
	if s.Help != "" {
		r.drawHelp(dc, s.Help)
	}
}

func (r *Renderer) drawRoads(dc *gg.Context, s Scene, v hud.Viewport) {
	setRGB(dc, r.palette.Road)
	dc.SetLineWidth(r.line)
	for _, seg := range s.Roads {
		a, okA := nodeAt(s, seg.A)
		b, okB := nodeAt(s, seg.B)
		if !okA || !okB {
			continue
		}
		x0, y0 := v.NDCToPixel(a.X, a.Y)
		x1, y1 := v.NDCToPixel(b.X, b.Y)
		dc.DrawLine(x0, y0, x1, y1)
	}
	dc.Stroke()
}

func (r *Renderer) drawPath(dc *gg.Context, s Scene, v hud.Viewport) {
	setRGB(dc, r.palette.Path)
	dc.SetLineWidth(r.line)
	dc.NewSubPath()
	for _, idx := range s.Path {
		n, ok := nodeAt(s, idx)
		if !ok {
			continue
		}
		dc.LineTo(v.NDCToPixel(n.X, n.Y))
	}
	dc.Stroke()
}

func (r *Renderer) drawNodes(dc *gg.Context, s Scene, v hud.Viewport) {
	setRGB(dc, r.palette.Node)
	half := r.node / 2
	for _, n := range s.Nodes {
		px, py := v.NDCToPixel(n.X, n.Y)
		dc.DrawRectangle(px-half, py-half, r.node, r.node)
	}
	dc.Fill()
}

func (r *Renderer) drawLabels(dc *gg.Context, s Scene, v hud.Viewport) {
	setRGB(dc, r.palette.Text)
	for _, n := range s.Nodes {
		fillRects(dc, hud.NodeLabel(n.X, n.Y, n.Name, v).Rects())
	}
	dc.Fill()
}

func (r *Renderer) drawPanel(dc *gg.Context, s Scene, v hud.Viewport) {
	p := hud.LayoutPathPanel(s.Panel, v, r.style)

	g := r.style.PanelGray
	dc.SetRGBA(g, g, g, r.style.PanelAlpha)
	dc.DrawRectangle(p.Panel.X0, p.Panel.Y0, p.Panel.W(), p.Panel.H())
	dc.Fill()

	setRGB(dc, r.palette.Text)
	for _, l := range p.Lines {
		fillRects(dc, l.Rects())
	}
	dc.Fill()
}

func (r *Renderer) drawHelp(dc *gg.Context, text string) {
	// truetype faces cache glyphs and are not safe to share between goroutines.
	face := truetype.NewFace(r.font, &truetype.Options{Size: r.helpSize})
	defer face.Close()

	dc.SetFontFace(face)
	setRGB(dc, r.palette.Help)
	dc.DrawStringAnchored(text, 10, 10, 0, 1)
}

func fillRects(dc *gg.Context, rects []hud.Rect) {
	for _, q := range rects {
		dc.DrawRectangle(q.X0, q.Y0, q.W(), q.H())
	}
}

func nodeAt(s Scene, i int) (Node, bool) {
	if i < 0 || i >= len(s.Nodes) {
		return Node{}, false
	}

	return s.Nodes[i], true
}

func setRGB(dc *gg.Context, c [3]float64) { dc.SetRGB(c[0], c[1], c[2]) }
