package render

import (
	"github.com/katalvlaran/citymap/atlas"
	"github.com/katalvlaran/citymap/trip"
)

// Node is a city marker in NDC.
type Node struct {
	Name string
	X, Y float64
}

// Segment joins two nodes by index.
type Segment struct {
	A, B int
}

// Scene is everything one frame shows. It holds no references into the
// session that produced it, so it can be rendered on another goroutine.
type Scene struct {
	Nodes []Node
	Roads []Segment
	// Path lists node indices in travel order; fewer than two means no highlight.
	Path []int
	// Panel holds the trip lines (distance, time, cost). It is drawn only
	// together with a drawable Path.
	Panel [3]string
	// Help is an optional status line drawn with a TrueType face.
	Help string
}

// NewScene builds the static part of a scene from a map.
func NewScene(m *atlas.Map) Scene {
	cities := m.Cities()
	s := Scene{Nodes: make([]Node, len(cities))}
	for i, c := range cities {
		s.Nodes[i] = Node{Name: c.Name, X: c.X, Y: c.Y}
	}
	for _, r := range m.Roads() {
		s.Roads = append(s.Roads, Segment{A: r.From, B: r.To})
	}

	return s
}

// WithRoute returns a copy of s highlighting r with its trip summary.
func (s Scene) WithRoute(r atlas.Route, sum trip.Summary) Scene {
	s.Path = append([]int(nil), r.Stops...)
	s.Panel = sum.Lines()

	return s
}

// HasPath reports whether the scene highlights at least one segment.
func (s Scene) HasPath() bool { return len(s.Path) >= 2 }
