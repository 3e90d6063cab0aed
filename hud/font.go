// Package hud is the pixel arithmetic behind the viewer's overlays: a 5x7
// dot-matrix font (metrics, measuring, rasterizing to rectangles), the
// NDC/pixel viewport transform, city label placement, and the layout of the
// bottom-left trip panel.
//
// Nothing here draws; every function returns rectangles in pixel space
// (origin top-left, y down) for a renderer to fill.
package hud

import "unicode"

// Base pixel metrics of the dot font at scale 1.
const (
	DotBase     = 2.0 // side of one lit dot
	GapBase     = 1.0 // gap between dots inside a glyph
	CharGapBase = 2.0 // gap between glyphs

	GlyphCols = 5
	GlyphRows = 7
)

// glyphs holds 7 rows per character, 5 low bits per row, MSB (bit 4) = left column.
var glyphs = map[rune][GlyphRows]uint8{
	' ': {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},

	'A': {0x0E, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'B': {0x1E, 0x11, 0x11, 0x1E, 0x11, 0x11, 0x1E},
	'C': {0x0E, 0x11, 0x10, 0x10, 0x10, 0x11, 0x0E},
	'D': {0x1E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1E},
	'E': {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x1F},
	'F': {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x10},
	'G': {0x0E, 0x11, 0x10, 0x17, 0x11, 0x11, 0x0E},
	'H': {0x11, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'I': {0x1F, 0x04, 0x04, 0x04, 0x04, 0x04, 0x1F},
	'J': {0x07, 0x02, 0x02, 0x02, 0x12, 0x12, 0x0C},
	'K': {0x11, 0x12, 0x14, 0x18, 0x14, 0x12, 0x11},
	'L': {0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x1F},
	'M': {0x11, 0x1B, 0x15, 0x15, 0x11, 0x11, 0x11},
	'N': {0x11, 0x19, 0x15, 0x13, 0x11, 0x11, 0x11},
	'O': {0x0E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'P': {0x1E, 0x11, 0x11, 0x1E, 0x10, 0x10, 0x10},
	'Q': {0x0E, 0x11, 0x11, 0x11, 0x15, 0x12, 0x0D},
	'R': {0x1E, 0x11, 0x11, 0x1E, 0x14, 0x12, 0x11},
	'S': {0x0F, 0x10, 0x10, 0x0E, 0x01, 0x01, 0x1E},
	'T': {0x1F, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04},
	'U': {0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'V': {0x11, 0x11, 0x11, 0x11, 0x11, 0x0A, 0x04},
	'W': {0x11, 0x11, 0x11, 0x15, 0x15, 0x15, 0x0A},
	'X': {0x11, 0x11, 0x0A, 0x04, 0x0A, 0x11, 0x11},
	'Y': {0x11, 0x0A, 0x04, 0x04, 0x04, 0x04, 0x04},
	'Z': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x10, 0x1F},

	'0': {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1': {0x04, 0x0C, 0x14, 0x04, 0x04, 0x04, 0x1F},
	'2': {0x0E, 0x11, 0x01, 0x06, 0x08, 0x10, 0x1F},
	'3': {0x1F, 0x02, 0x04, 0x06, 0x01, 0x11, 0x0E},
	'4': {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5': {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6': {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9': {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},

	'.': {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04},
	'-': {0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00},
}

// Glyph returns the bitmap rows for r. Lookup is case-insensitive;
// characters without a glyph render as a space.
func Glyph(r rune) [GlyphRows]uint8 {
	if g, ok := glyphs[unicode.ToUpper(r)]; ok {
		return g
	}

	return glyphs[' ']
}

// HasGlyph reports whether r (case-insensitively) has its own bitmap.
func HasGlyph(r rune) bool {
	_, ok := glyphs[unicode.ToUpper(r)]

	return ok
}

// FontMetrics are the scaled pixel sizes of the dot font.
type FontMetrics struct {
	Scale   float64
	Dot     float64
	Gap     float64
	CharGap float64
	CharW   float64 // 5 dots + 4 gaps
	CharH   float64 // 7 dots + 6 gaps
}

// Metrics returns the font metrics at the given scale; scale <= 0 means 1.
func Metrics(scale float64) FontMetrics {
	if scale <= 0 {
		scale = 1
	}
	dot := DotBase * scale
	gap := GapBase * scale

	return FontMetrics{
		Scale:   scale,
		Dot:     dot,
		Gap:     gap,
		CharGap: CharGapBase * scale,
		CharW:   GlyphCols*dot + (GlyphCols-1)*gap,
		CharH:   GlyphRows*dot + (GlyphRows-1)*gap,
	}
}

// Advance is the horizontal distance from one glyph origin to the next.
func (m FontMetrics) Advance() float64 { return m.CharW + m.CharGap }

// MeasureWidth returns the pixel width of text: n glyphs, n-1 gaps.
// Width counts characters, so an unknown character still takes a cell.
func MeasureWidth(text string, scale float64) float64 {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	m := Metrics(scale)

	return float64(n)*m.Advance() - m.CharGap
}

// Rasterize lays out text with its top-left corner at (left, top) and returns
// one square per lit dot, in reading order.
func Rasterize(text string, left, top, scale float64) []Rect {
	m := Metrics(scale)
	var out []Rect
	for i, r := range []rune(text) {
		rows := Glyph(r)
		cx := left + float64(i)*m.Advance()
		for row := 0; row < GlyphRows; row++ {
			bits := rows[row]
			for col := 0; col < GlyphCols; col++ {
				if bits&(1<<(GlyphCols-1-col)) == 0 {
					continue
				}
				x := cx + float64(col)*(m.Dot+m.Gap)
				y := top + float64(row)*(m.Dot+m.Gap)
				out = append(out, Rect{X0: x, Y0: y, X1: x + m.Dot, Y1: y + m.Dot})
			}
		}
	}

	return out
}
