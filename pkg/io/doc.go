// Package io reads delimited edge-list files into dense-id adjacency lists.
//
// # Format
//
// One edge per line, two fields separated by a single-character delimiter
// (',' by default). The first line is a header and is skipped unless
// [ReadOptions.Header] is false:
//
//	node_1,node_2
//	0,1
//	0,2
//	alice,bob
//
// Labels are opaque strings with surrounding whitespace trimmed; numeric
// labels get no special treatment. Blank lines are ignored. A line with
// any other number of fields, or an empty label, fails with an
// INVALID_FORMAT error naming the line.
//
// # Dense Ids
//
// Each distinct label is assigned the next free integer id the first time
// it appears (source before target on a line). [EdgeList.Labels] maps ids
// back to labels and [EdgeList.ID] maps labels to ids in O(1).
//
// # Direction
//
// A line "a,b" adds the directed edge a→b. Set [ReadOptions.Undirected]
// to also add b→a, which is what friendship-style exports usually mean.
//
// # Usage
//
//	el, err := io.ImportEdgeList("facebook_combined.csv", io.DefaultReadOptions())
//	if err != nil {
//	    return err
//	}
//	g := el.Graph()
package io
