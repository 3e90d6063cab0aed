// Package atlas holds the city map shown by the viewer: seven cities placed
// in normalized device coordinates and the weighted roads between them.
//
// The dataset ships embedded (cities.yaml) and is decoded with yaml.v3.
// A Map is immutable after Parse; its road graph is built once and shared.
package atlas

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/citymap/bfs"
	"github.com/katalvlaran/citymap/core"
	"github.com/katalvlaran/citymap/dijkstra"
)

//go:embed cities.yaml
var defaultYAML []byte

// Metadata keys stored on every graph vertex.
const (
	MetaX     = "x"
	MetaY     = "y"
	MetaIndex = "index"
)

// Sentinel errors.
var (
	// ErrInvalidMap indicates the dataset failed validation.
	ErrInvalidMap = errors.New("atlas: invalid map")

	// ErrCityNotFound indicates an unknown city name or out-of-range index.
	ErrCityNotFound = errors.New("atlas: city not found")

	// ErrNoRoute indicates the two cities are not connected.
	ErrNoRoute = errors.New("atlas: no route between cities")
)

// City is a map node.
type City struct {
	Name   string   `yaml:"name"`
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	Images []string `yaml:"images"`
}

// Road is an undirected weighted connection between two cities, by index.
type Road struct {
	From int
	To   int
	Km   float64
}

// Route is a resolved shortest path: city indices in travel order and the total length.
type Route struct {
	Stops    []int
	Distance float64
}

// Empty reports whether the route has no stops.
func (r Route) Empty() bool { return len(r.Stops) == 0 }

// Drawable reports whether the route has at least one segment to highlight.
func (r Route) Drawable() bool { return len(r.Stops) >= 2 }

// Map is the parsed, validated dataset plus its road graph.
type Map struct {
	cities []City
	roads  []Road
	index  map[string]int
	graph  *core.Graph
}

type fileRoad struct {
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
	Km   float64 `yaml:"km"`
}

type fileMap struct {
	Cities []City     `yaml:"cities"`
	Roads  []fileRoad `yaml:"roads"`
}

// Default returns the built-in seven-city map.
// It panics only if the embedded dataset is corrupt, which tests rule out.
func Default() *Map {
	m, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}

	return m
}

// Parse decodes and validates a YAML dataset.
//
// Validation:
//   - at least one city; names non-empty and unique
//   - positions finite and inside [-1, 1]
//   - road endpoints name known cities, distinct from each other
//   - road lengths finite and non-negative
func Parse(data []byte) (*Map, error) {
	var f fileMap
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	if len(f.Cities) == 0 {
		return nil, fmt.Errorf("%w: no cities", ErrInvalidMap)
	}

	m := &Map{
		cities: f.Cities,
		index:  make(map[string]int, len(f.Cities)),
	}
	for i, c := range f.Cities {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: city #%d has no name", ErrInvalidMap, i)
		}
		if _, dup := m.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate city %q", ErrInvalidMap, c.Name)
		}
		if !inUnit(c.X) || !inUnit(c.Y) {
			return nil, fmt.Errorf("%w: city %q at (%g,%g) is outside [-1,1]", ErrInvalidMap, c.Name, c.X, c.Y)
		}
		m.index[c.Name] = i
	}

	for _, r := range f.Roads {
		from, ok := m.index[r.From]
		if !ok {
			return nil, fmt.Errorf("%w: road from unknown city %q", ErrInvalidMap, r.From)
		}
		to, ok := m.index[r.To]
		if !ok {
			return nil, fmt.Errorf("%w: road to unknown city %q", ErrInvalidMap, r.To)
		}
		if from == to {
			return nil, fmt.Errorf("%w: road %q loops onto itself", ErrInvalidMap, r.From)
		}
		if r.Km < 0 || math.IsNaN(r.Km) || math.IsInf(r.Km, 0) {
			return nil, fmt.Errorf("%w: road %s-%s has length %g", ErrInvalidMap, r.From, r.To, r.Km)
		}
		m.roads = append(m.roads, Road{From: from, To: to, Km: r.Km})
	}

	g, err := m.buildGraph()
	if err != nil {
		return nil, err
	}
	m.graph = g

	return m, nil
}

func inUnit(v float64) bool { return v >= -1 && v <= 1 }

// buildGraph creates the undirected weighted road graph keyed by city name.
// Parallel roads are allowed; routing takes the shorter one.
func (m *Map) buildGraph() (*core.Graph, error) {
	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges())
	for i, c := range m.cities {
		if err := g.AddVertex(c.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
		}
		for key, v := range map[string]interface{}{MetaX: c.X, MetaY: c.Y, MetaIndex: i} {
			if err := g.SetVertexMetadata(c.Name, key, v); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
			}
		}
	}
	for _, r := range m.roads {
		if _, err := g.AddEdge(m.cities[r.From].Name, m.cities[r.To].Name, r.Km); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
		}
	}

	return g, nil
}

// Len returns the number of cities.
func (m *Map) Len() int { return len(m.cities) }

// Cities returns a copy of the city list in index order.
func (m *Map) Cities() []City {
	out := make([]City, len(m.cities))
	copy(out, m.cities)

	return out
}

// Roads returns a copy of the road list in dataset order.
func (m *Map) Roads() []Road {
	out := make([]Road, len(m.roads))
	copy(out, m.roads)

	return out
}

// City returns the city at index i.
func (m *Map) City(i int) (City, error) {
	if i < 0 || i >= len(m.cities) {
		return City{}, fmt.Errorf("%w: index %d", ErrCityNotFound, i)
	}

	return m.cities[i], nil
}

// Index returns the index of the named city.
func (m *Map) Index(name string) (int, error) {
	i, ok := m.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrCityNotFound, name)
	}

	return i, nil
}

// Graph returns the shared road graph. Callers must not mutate it.
func (m *Map) Graph() *core.Graph { return m.graph }

// Names maps a list of city indices to their names.
func (m *Map) Names(stops []int) []string {
	out := make([]string, 0, len(stops))
	for _, i := range stops {
		if i >= 0 && i < len(m.cities) {
			out = append(out, m.cities[i].Name)
		}
	}

	return out
}

// ShortestPath routes between two cities by index.
//
// from == to yields a one-stop route of length 0. Disconnected cities yield
// an empty Route and ErrNoRoute.
func (m *Map) ShortestPath(from, to int) (Route, error) {
	a, err := m.City(from)
	if err != nil {
		return Route{}, err
	}
	b, err := m.City(to)
	if err != nil {
		return Route{}, err
	}

	p, err := dijkstra.ShortestPath(m.graph, a.Name, b.Name)
	if errors.Is(err, dijkstra.ErrNoPath) {
		return Route{}, fmt.Errorf("%w: %s and %s", ErrNoRoute, a.Name, b.Name)
	}
	if err != nil {
		return Route{}, err
	}

	stops, err := m.stops(p.Vertices)
	if err != nil {
		return Route{}, err
	}

	return Route{Stops: stops, Distance: p.Distance}, nil
}

// stops maps graph vertices back to city indices through their MetaIndex.
func (m *Map) stops(names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		v, _ := m.graph.VertexMetadata(name, MetaIndex)
		idx, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("%w: vertex %q has no %s", ErrInvalidMap, name, MetaIndex)
		}
		out[i] = idx
	}

	return out, nil
}

// RouteByName is ShortestPath keyed by city names.
func (m *Map) RouteByName(from, to string) (Route, error) {
	a, err := m.Index(from)
	if err != nil {
		return Route{}, err
	}
	b, err := m.Index(to)
	if err != nil {
		return Route{}, err
	}

	return m.ShortestPath(a, b)
}

// FewestStops routes between two cities using the fewest roads, ignoring
// their lengths. Among equally short hop counts the walk prefers
// alphabetically earlier cities. Distance sums the shortest road between
// each consecutive pair.
func (m *Map) FewestStops(from, to int) (Route, error) {
	a, err := m.City(from)
	if err != nil {
		return Route{}, err
	}
	b, err := m.City(to)
	if err != nil {
		return Route{}, err
	}

	res, err := bfs.Walk(m.graph, a.Name, bfs.WithTarget(b.Name))
	if err != nil {
		return Route{}, err
	}
	names, err := res.PathTo(b.Name)
	if errors.Is(err, bfs.ErrNotReached) {
		return Route{}, fmt.Errorf("%w: %s and %s", ErrNoRoute, a.Name, b.Name)
	}
	if err != nil {
		return Route{}, err
	}

	stops, err := m.stops(names)
	if err != nil {
		return Route{}, err
	}
	r := Route{Stops: stops}
	for i := 1; i < len(names); i++ {
		e, err := m.graph.EdgeBetween(names[i-1], names[i])
		if err != nil {
			return Route{}, err
		}
		r.Distance += e.Weight
	}

	return r, nil
}

// Components groups city indices into connected components, in the order
// bfs.Components yields them.
func (m *Map) Components() [][]int {
	comps, err := bfs.Components(m.graph)
	if err != nil {
		// The graph is built by Parse and never nil.
		panic(err)
	}
	out := make([][]int, len(comps))
	for i, c := range comps {
		if out[i], err = m.stops(c); err != nil {
			panic(err)
		}
	}

	return out
}

// Connected reports whether every city can reach every other.
func (m *Map) Connected() bool { return len(m.Components()) <= 1 }
