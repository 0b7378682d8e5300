package graph

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidGraph is returned by [NewValidated] when an adjacency list
// references a node id outside [0, NodeCount). It is the single failure
// signal for malformed input; no partial graph is ever returned.
var ErrInvalidGraph = errors.New("invalid graph")

// Graph is an immutable adjacency-list graph over dense integer node ids.
//
// Node ids are the indices 0..NodeCount()-1. Edges are directed: id b in
// the adjacency list of a means b is reachable from a in one hop. Whether
// the relation is symmetric is a property of the input, see [Graph.IsSymmetric].
//
// The zero value is an empty graph. A Graph is safe for concurrent reads.
type Graph struct {
	adj   [][]int
	edges int
}

// New creates a graph from per-node adjacency lists. The lists are copied,
// so later changes to adjacency do not affect the graph.
//
// New does not check ids; callers that cannot guarantee every id lies in
// [0, len(adjacency)) should use [NewValidated].
func New(adjacency [][]int) *Graph {
	g := &Graph{adj: make([][]int, len(adjacency))}
	for i, nbrs := range adjacency {
		g.adj[i] = slices.Clone(nbrs)
		g.edges += len(nbrs)
	}
	return g
}

// NewValidated is like [New] but fails fast with [ErrInvalidGraph] when any
// neighbor id is out of range.
func NewValidated(adjacency [][]int) (*Graph, error) {
	n := len(adjacency)
	for id, nbrs := range adjacency {
		for _, nbr := range nbrs {
			if nbr < 0 || nbr >= n {
				return nil, fmt.Errorf("%w: node %d lists neighbor %d (node count %d)", ErrInvalidGraph, id, nbr, n)
			}
		}
	}
	return New(adjacency), nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of directed edges, counting duplicates
// and self-loops as given.
func (g *Graph) EdgeCount() int { return g.edges }

// Neighbors returns the ids directly reachable from id. The returned slice
// is shared with the graph and must not be modified.
func (g *Graph) Neighbors(id int) []int { return g.adj[id] }

// IsSymmetric reports whether every edge a→b has a matching b→a.
// Statistics computed over an asymmetric graph describe reachability
// along edge direction only.
func (g *Graph) IsSymmetric() bool {
	seen := make(map[[2]int]struct{}, g.edges)
	for a, nbrs := range g.adj {
		for _, b := range nbrs {
			seen[[2]int{a, b}] = struct{}{}
		}
	}
	for e := range seen {
		if _, ok := seen[[2]int{e[1], e[0]}]; !ok {
			return false
		}
	}
	return true
}

// Symmetrize returns a new graph in which every edge a→b is paired with
// b→a. Duplicate edges are collapsed and each adjacency list is sorted.
func Symmetrize(g *Graph) *Graph {
	sets := make([]map[int]struct{}, g.NodeCount())
	for i := range sets {
		sets[i] = make(map[int]struct{}, len(g.adj[i]))
	}
	for a, nbrs := range g.adj {
		for _, b := range nbrs {
			sets[a][b] = struct{}{}
			sets[b][a] = struct{}{}
		}
	}

	out := &Graph{adj: make([][]int, len(sets))}
	for i, set := range sets {
		nbrs := make([]int, 0, len(set))
		for b := range set {
			nbrs = append(nbrs, b)
		}
		slices.Sort(nbrs)
		out.adj[i] = nbrs
		out.edges += len(nbrs)
	}
	return out
}
