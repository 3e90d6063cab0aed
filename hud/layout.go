package hud

// Rect is an axis-aligned rectangle in pixel space, X0<=X1, Y0<=Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// W returns the width.
func (r Rect) W() float64 { return r.X1 - r.X0 }

// H returns the height.
func (r Rect) H() float64 { return r.Y1 - r.Y0 }

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Viewport is the framebuffer size in pixels.
type Viewport struct {
	W, H int
}

// NewViewport clamps non-positive sizes to 1, as a minimized window reports 0x0.
func NewViewport(w, h int) Viewport {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	return Viewport{W: w, H: h}
}

func (v Viewport) size() (float64, float64) {
	c := NewViewport(v.W, v.H)

	return float64(c.W), float64(c.H)
}

// NDCToPixel maps normalized device coordinates ([-1,1], y up) to pixels
// (origin top-left, y down).
func (v Viewport) NDCToPixel(x, y float64) (float64, float64) {
	w, h := v.size()

	return (x + 1) * w / 2, (1 - y) * h / 2
}

// PixelToNDC is the inverse of NDCToPixel; it is how cursor positions become
// map coordinates.
func (v Viewport) PixelToNDC(px, py float64) (float64, float64) {
	w, h := v.size()

	return px/(w/2) - 1, 1 - py/(h/2)
}

// Label is a line of dot-font text anchored by its top-left corner.
type Label struct {
	Text  string
	Left  float64
	Top   float64
	Scale float64
}

// Rects rasterizes the label.
func (l Label) Rects() []Rect { return Rasterize(l.Text, l.Left, l.Top, l.Scale) }

// Bounds is the label's text box.
func (l Label) Bounds() Rect {
	m := Metrics(l.Scale)

	return Rect{X0: l.Left, Y0: l.Top, X1: l.Left + MeasureWidth(l.Text, l.Scale), Y1: l.Top + m.CharH}
}

// LabelLift is the gap in pixels between a node's centre and the bottom of its label.
const LabelLift = 18.0

// NodeLabel places text at scale 1, centred horizontally over the node at
// (ndcX, ndcY) and lifted LabelLift pixels above it.
func NodeLabel(ndcX, ndcY float64, text string, v Viewport) Label {
	px, py := v.NDCToPixel(ndcX, ndcY)
	m := Metrics(1)

	return Label{
		Text:  text,
		Left:  px - MeasureWidth(text, 1)/2,
		Top:   py - LabelLift - m.CharH,
		Scale: 1,
	}
}

// Style configures the trip panel.
type Style struct {
	TextScale    float64 `mapstructure:"text_scale"`
	MarginLeft   float64 `mapstructure:"margin_left"`
	MarginBottom float64 `mapstructure:"margin_bottom"`
	Padding      float64 `mapstructure:"padding"`
	LineGap      float64 `mapstructure:"line_gap"` // multiplied by TextScale
	PanelAlpha   float64 `mapstructure:"panel_alpha"`
	PanelGray    float64 `mapstructure:"panel_gray"`
}

// DefaultStyle is the stock panel look.
func DefaultStyle() Style {
	return Style{
		TextScale:    0.65,
		MarginLeft:   12,
		MarginBottom: 12,
		Padding:      8,
		LineGap:      6,
		PanelAlpha:   0.35,
		PanelGray:    0,
	}
}

// PanelLayout is the resolved geometry of the trip panel.
type PanelLayout struct {
	Panel Rect
	// Lines in input order: distance (bottom), time, cost (top).
	Lines [3]Label
}

// LayoutPathPanel stacks the three lines upward from the bottom-left corner
// of the viewport and wraps them in a padded background rectangle sized to
// the widest line.
func LayoutPathPanel(lines [3]string, v Viewport, s Style) PanelLayout {
	m := Metrics(s.TextScale)
	_, h := v.size()
	step := m.CharH + s.LineGap*m.Scale

	var out PanelLayout
	var maxW float64
	top := h - s.MarginBottom - m.CharH
	for i, text := range lines {
		out.Lines[i] = Label{Text: text, Left: s.MarginLeft, Top: top, Scale: m.Scale}
		if w := MeasureWidth(text, m.Scale); w > maxW {
			maxW = w
		}
		top -= step
	}

	distTop := out.Lines[0].Top
	costTop := out.Lines[2].Top
	out.Panel = Rect{
		X0: s.MarginLeft - s.Padding,
		Y0: costTop - s.Padding,
		X1: s.MarginLeft + maxW + s.Padding,
		Y1: distTop + m.CharH + s.Padding,
	}

	return out
}
