// Package graph provides the in-memory graph model used by the separation
// analysis.
//
// A [Graph] is a dense adjacency list: node ids are the integers
// 0..NodeCount()-1 and Neighbors(id) returns the ids one hop away in O(1).
// Graphs are immutable once built and can be shared across goroutines,
// which is what lets the all-pairs driver fan searches out over workers.
//
// # Construction
//
// External collaborators (see pkg/io) map raw labels to dense ids and hand
// the resulting adjacency lists to [New]. When the input cannot be trusted,
// [NewValidated] checks every id and fails with [ErrInvalidGraph]:
//
//	g, err := graph.NewValidated([][]int{{1}, {0, 2}, {1}})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.NodeCount(), g.EdgeCount()) // 3 4
//
// # Direction
//
// Edges are directed. A social network exported as one line per friendship
// is usually asymmetric as loaded; use [Symmetrize] to treat it as
// undirected and [Graph.IsSymmetric] to check which case applies.
package graph
