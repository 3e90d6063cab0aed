// Package dijkstra provides Dijkstra's shortest-path algorithm on weighted
// graphs with non-negative edge weights, as used by the map viewer to route
// between two clicked cities.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from a single source vertex to all
//     reachable vertices in O((V + E) log V) time, where V = |vertices| and E = |edges|.
//   - It relies on a min-heap (priority queue) to always expand the next-closest vertex.
//   - Supports optional path reconstruction, an early-exit target, distance caps,
//     and “impassable” edge thresholds (closed roads).
//
// API reference:
//
//	func Dijkstra(g *core.Graph, opts ...Option) (dist map[string]float64, prev map[string]string, err error)
//	func ShortestPath(g *core.Graph, from, to string) (Path, error)
//	func Reconstruct(prev map[string]string, from, to string) []string
//
//	  - opts:
//	      • Source(string):                required, the starting vertex ID.
//	      • WithTarget(string):            stop once this vertex is settled.
//	      • WithReturnPath():              return a predecessor map; otherwise prev == nil.
//	      • WithMaxDistance(float64):      explore only vertices with distance ≤ given value.
//	      • WithInfEdgeThreshold(float64): skip any edge whose weight ≥ threshold.
//	  - dist: dist[v] = minimal distance from Source to v, or +Inf if unreachable.
//	  - prev: prev[v] = predecessor of v on one shortest path, "" for Source/unreachable.
//
// Error handling (sentinel errors):
//
//   - ErrEmptySource, ErrNilGraph, ErrUnweightedGraph, ErrVertexNotFound,
//     ErrNegativeWeight from Dijkstra; ShortestPath adds ErrNoPath.
//   - ErrBadMaxDistance / ErrBadInfThreshold are raised via panic by the option
//     constructors, as they indicate a programming error.
//
// Thread safety:
//
//   - Dijkstra only reads the graph. Concurrent queries on the same graph are safe
//     as long as nobody mutates it meanwhile.
package dijkstra
