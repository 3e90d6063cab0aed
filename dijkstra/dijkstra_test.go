// Package dijkstra_test contains unit tests for the Dijkstra implementation.
// These tests validate correct behavior under various configurations, including
// basic functionality, directed graphs, early exit, MaxDistance, InfEdgeThreshold,
// path reconstruction and edge cases such as single-vertex and disconnected graphs.
package dijkstra_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/citymap/core"
	"github.com/katalvlaran/citymap/dijkstra"
)

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestDijkstra_EmptySource(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _, err := dijkstra.Dijkstra(g)
	if err != dijkstra.ErrEmptySource {
		t.Fatalf("Expected ErrEmptySource, got %v", err)
	}
}

func TestDijkstra_NilGraphWithoutSource(t *testing.T) {
	// ErrEmptySource has priority over ErrNilGraph.
	_, _, err := dijkstra.Dijkstra(nil)
	if err != dijkstra.ErrEmptySource {
		t.Fatalf("Expected ErrEmptySource when graph is nil and Source is empty, got %v", err)
	}
}

func TestDijkstra_NilGraphWithSource(t *testing.T) {
	_, _, err := dijkstra.Dijkstra(nil, dijkstra.Source("X"))
	if err != dijkstra.ErrNilGraph {
		t.Fatalf("Expected ErrNilGraph when graph is nil, got %v", err)
	}
}

func TestDijkstra_UnweightedGraph(t *testing.T) {
	g := core.NewGraph()
	_, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"))
	if err != dijkstra.ErrUnweightedGraph {
		t.Fatalf("Expected ErrUnweightedGraph, got %v", err)
	}
}

func TestDijkstra_SourceOrTargetNotFound(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)

	_, _, err := dijkstra.Dijkstra(g, dijkstra.Source("X"))
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	_, _, err = dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithTarget("Y"))
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
}

func TestDijkstra_NegativeWeightDetectedEarly(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, err := g.AddEdge("A", "B", -5)
	require.NoError(t, err)

	_, _, err = dijkstra.Dijkstra(g, dijkstra.Source("A"))
	if !errors.Is(err, dijkstra.ErrNegativeWeight) {
		t.Fatalf("Expected ErrNegativeWeight, got %v", err)
	}
}

func TestDijkstra_OptionPanics(t *testing.T) {
	assert.Panics(t, func() { dijkstra.WithMaxDistance(-1) })
	assert.Panics(t, func() { dijkstra.WithMaxDistance(math.NaN()) })
	assert.Panics(t, func() { dijkstra.WithInfEdgeThreshold(0) })
	assert.NotPanics(t, func() { dijkstra.WithInfEdgeThreshold(1) })
}

// ------------------------------------------------------------------------
// 2. Basic Functionality: Small graphs, path correctness without and with ReturnPath.
// ------------------------------------------------------------------------

func TestDijkstra_SimpleTriangle_NoPath(t *testing.T) {
	// Graph: A—B(1), B—C(2), A—C(5), all undirected.
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 2)
	_, _ = g.AddEdge("A", "C", 5)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source("A"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := dist["C"], 3.0; got != want {
		t.Errorf("dist[C] = %g; want %g", got, want)
	}
	if prev != nil {
		t.Errorf("expected nil predecessor map, got %v", prev)
	}
}

func TestDijkstra_UndirectedTraversedFromEitherEnd(t *testing.T) {
	// Edges are stored From→To; the search must also walk them To→From.
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 2)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source("C"), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.Equal(t, 3.0, dist["A"])
	assert.Equal(t, "B", prev["A"])
	assert.Equal(t, "C", prev["B"])
	assert.Equal(t, "", prev["C"])
}

func TestDijkstra_MediumDirectedGraph(t *testing.T) {
	// Directed graph: A→B(2), A→C(1), C→B(1), B→D(3), C→D(5)
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 2)
	_, _ = g.AddEdge("A", "C", 1)
	_, _ = g.AddEdge("C", "B", 1)
	_, _ = g.AddEdge("B", "D", 3)
	_, _ = g.AddEdge("C", "D", 5)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist["C"])
	assert.Equal(t, 2.0, dist["B"])
	assert.Equal(t, 5.0, dist["D"])

	// Nothing flows back against the arrows.
	back, _, err := dijkstra.Dijkstra(g, dijkstra.Source("D"))
	require.NoError(t, err)
	assert.True(t, math.IsInf(back["A"], 1))
}

func TestDijkstra_Disconnected(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)
	require.NoError(t, g.AddVertex("Z"))

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithReturnPath())
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist["Z"], 1))
	assert.Equal(t, "", prev["Z"])
}

// ------------------------------------------------------------------------
// 3. Thresholds and early exit.
// ------------------------------------------------------------------------

func TestDijkstra_MaxDistanceLimits(t *testing.T) {
	// Linear graph: A—B(1)—C(1)—D(1)
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 1)
	_, _ = g.AddEdge("C", "D", 1)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, dist["C"])
	assert.True(t, math.IsInf(dist["D"], 1))
}

func TestDijkstra_InfEdgeThresholdClosesRoad(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 1000) // closed
	_, _ = g.AddEdge("A", "D", 5)
	_, _ = g.AddEdge("D", "C", 5)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithInfEdgeThreshold(999))
	require.NoError(t, err)
	assert.Equal(t, 10.0, dist["C"])
}

func TestDijkstra_TargetStopsEarly(t *testing.T) {
	// A—B(1)—C(1)—D(1): with target B, C and D are never settled.
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 1)
	_, _ = g.AddEdge("C", "D", 1)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithTarget("B"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist["B"])
	assert.True(t, math.IsInf(dist["D"], 1), "D must not be reached after the target is settled")
}

// ------------------------------------------------------------------------
// 4. ShortestPath and Reconstruct.
// ------------------------------------------------------------------------

func TestShortestPath(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 4)
	_, _ = g.AddEdge("A", "C", 2)
	_, _ = g.AddEdge("B", "C", 1)
	_, _ = g.AddEdge("B", "D", 5)
	_, _ = g.AddEdge("D", "F", 6)
	_, _ = g.AddEdge("C", "E", 10)
	_, _ = g.AddEdge("E", "F", 3)

	p, err := dijkstra.ShortestPath(g, "A", "F")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B", "D", "F"}, p.Vertices)
	assert.Equal(t, 14.0, p.Distance)
	assert.Equal(t, 4, p.Hops())
}

func TestShortestPath_SameVertex(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 4)

	p, err := dijkstra.ShortestPath(g, "B", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, p.Vertices)
	assert.Zero(t, p.Distance)
	assert.Zero(t, p.Hops())
}

func TestShortestPath_Unreachable(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 4)
	_, _ = g.AddEdge("C", "D", 4)

	p, err := dijkstra.ShortestPath(g, "A", "D")
	require.ErrorIs(t, err, dijkstra.ErrNoPath)
	assert.True(t, p.Empty())
	assert.Zero(t, p.Distance)

	_, err = dijkstra.ShortestPath(g, "A", "")
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)
}

func TestShortestPath_TieResolvesToFirstDiscovered(t *testing.T) {
	// A—B—D and A—C—D both cost 2; B is discovered first.
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("A", "C", 1)
	_, _ = g.AddEdge("B", "D", 1)
	_, _ = g.AddEdge("C", "D", 1)

	for i := 0; i < 20; i++ {
		p, err := dijkstra.ShortestPath(g, "A", "D")
		require.NoError(t, err)
		require.Equal(t, []string{"A", "B", "D"}, p.Vertices)
	}
}

func TestReconstruct_BrokenChain(t *testing.T) {
	prev := map[string]string{"A": "", "B": "A", "C": ""}
	assert.Equal(t, []string{"A", "B"}, dijkstra.Reconstruct(prev, "A", "B"))
	assert.Nil(t, dijkstra.Reconstruct(prev, "A", "C"))

	// A cycle in prev must not loop forever.
	cyc := map[string]string{"X": "Y", "Y": "X"}
	assert.Nil(t, dijkstra.Reconstruct(cyc, "A", "X"))
}
