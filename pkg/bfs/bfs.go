// Package bfs computes unweighted shortest-path (hop) distances with
// breadth-first search over a [graph.Graph].
//
// Two modes share one traversal: [Distance] stops as soon as a single
// target is reached, while [Distances] and [Searcher.Visit] drain the
// frontier and report every node reachable from the source. Both mark a
// node visited when it is enqueued, so every node enters the queue at most
// once and its depth at dequeue time is its shortest distance.
package bfs

import (
	"github.com/matzehuels/degrees/pkg/graph"
)

// Unreachable marks nodes in a [Distances] result that no path reaches.
const Unreachable = -1

// Searcher holds reusable BFS state for repeated single-source searches
// over one graph. It allocates O(V) once instead of once per search.
//
// A Searcher is not safe for concurrent use; give each goroutine its own.
type Searcher struct {
	g     *graph.Graph
	dist  []int
	queue []int
}

// NewSearcher creates a Searcher bound to g.
func NewSearcher(g *graph.Graph) *Searcher {
	n := g.NodeCount()
	s := &Searcher{
		g:     g,
		dist:  make([]int, n),
		queue: make([]int, 0, n),
	}
	for i := range s.dist {
		s.dist[i] = Unreachable
	}
	return s
}

// Visit runs BFS from source and calls fn once for every node reachable
// from it, in non-decreasing distance order. The source itself is not
// reported: its distance is zero by definition.
func (s *Searcher) Visit(source int, fn func(target, dist int)) {
	s.search(source, -1, fn)
}

// Distance returns the hop distance from source to target using the
// Searcher's buffers. The bool is false when target is unreachable.
func (s *Searcher) Distance(source, target int) (int, bool) {
	if source == target {
		return 0, true
	}
	d := Unreachable
	s.search(source, target, func(t, dist int) {
		if t == target {
			d = dist
		}
	})
	if d == Unreachable {
		return 0, false
	}
	return d, true
}

// search expands the frontier from source. If stop is a valid id the
// search ends once stop has been reported. The touched entries of dist are
// reset before returning so the next search starts clean.
func (s *Searcher) search(source, stop int, fn func(target, dist int)) {
	s.queue = append(s.queue[:0], source)
	s.dist[source] = 0

	for head := 0; head < len(s.queue); head++ {
		cur := s.queue[head]
		d := s.dist[cur]
		if cur != source {
			fn(cur, d)
			if cur == stop {
				break
			}
		}
		for _, nbr := range s.g.Neighbors(cur) {
			if s.dist[nbr] == Unreachable {
				s.dist[nbr] = d + 1
				s.queue = append(s.queue, nbr)
			}
		}
	}

	for _, id := range s.queue {
		s.dist[id] = Unreachable
	}
}

// Distance returns the hop distance from source to target in g.
// Distance(g, x, x) is (0, true) for every x, with or without a self-loop.
// The bool is false when no path exists; that is not an error.
func Distance(g *graph.Graph, source, target int) (int, bool) {
	if source == target {
		return 0, true
	}
	return NewSearcher(g).Distance(source, target)
}

// Distances returns the hop distance from source to every node in g.
// Entries for nodes that cannot be reached are [Unreachable].
func Distances(g *graph.Graph, source int) []int {
	out := make([]int, g.NodeCount())
	for i := range out {
		out[i] = Unreachable
	}
	out[source] = 0
	NewSearcher(g).Visit(source, func(target, dist int) {
		out[target] = dist
	})
	return out
}
