// Package bfs walks a core.Graph breadth-first, ignoring edge weights.
//
// It answers hop questions the weighted router does not: which cities can
// be reached at all, how they split into connected components, and the route
// with the fewest roads.
//
// Determinism: neighbours are expanded in core.NeighborIDs order (sorted
// IDs), so the visit sequence is reproducible.
package bfs

import (
	"fmt"

	"github.com/katalvlaran/citymap/core"
)

type queueItem struct {
	id    string
	depth int
}

// walker holds the mutable state of one walk.
type walker struct {
	g     *core.Graph
	opts  Options
	queue []queueItem
	res   *Result
}

// Walk runs BFS on g from start.
// Errors: ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, the
// context's error on cancellation, or a wrapped OnVisit error.
func Walk(g *core.Graph, start string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, start)
	}

	n := g.VertexCount()
	w := &walker{
		g:     g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Start:  start,
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
	w.enqueue(start, 0, "")

	return w.res, w.loop()
}

func (w *walker) enqueue(id string, depth int, parent string) {
	w.res.Depth[id] = depth
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: depth})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if w.opts.Target != "" && item.id == w.opts.Target {
			return nil
		}
		if w.opts.MaxDepth > 0 && item.depth >= w.opts.MaxDepth {
			continue
		}

		nbrs, err := w.g.NeighborIDs(item.id)
		if err != nil {
			return fmt.Errorf("bfs: neighbors of %q: %w", item.id, err)
		}
		for _, nb := range nbrs {
			if _, seen := w.res.Depth[nb]; !seen {
				w.enqueue(nb, item.depth+1, item.id)
			}
		}
	}

	return nil
}

// Components partitions the vertices of g into connected components.
// Components are ordered by their smallest vertex ID, and each lists its
// vertices in BFS order from that ID. Directed edges count one way only,
// so on directed graphs the result is reachability from each seed.
func Components(g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	seen := make(map[string]bool, g.VertexCount())
	var out [][]string
	for _, id := range g.Vertices() {
		if seen[id] {
			continue
		}
		res, err := Walk(g, id)
		if err != nil {
			return nil, err
		}
		comp := make([]string, 0, len(res.Order))
		for _, v := range res.Order {
			if !seen[v] {
				seen[v] = true
				comp = append(comp, v)
			}
		}
		out = append(out, comp)
	}

	return out, nil
}
