// Package tree provides the rooted hierarchy that every foodtree analysis
// runs against.
//
// # Overview
//
// A [Tree] is a directed graph with one designated root in which every other
// node has exactly one parent and no cycles exist. Nodes are plain string
// labels ("Snacks", "Tortilla Chips"); edges point from parent to child.
//
// # Lifecycle
//
// A tree is built once and then frozen:
//
//	t, _ := tree.New("Food")
//	_ = t.AddEdge("Food", "Snacks")
//	_ = t.AddEdge("Snacks", "Chips")
//	if err := t.Freeze(); err != nil {
//	    // some node is not reachable from the root
//	}
//
// [Tree.AddEdge] rejects any edge that would break the tree shape (a second
// parent, an edge into the root, a self-loop or a cycle) with an
// INVALID_HIERARCHY error naming the offending edge. Adding an edge that
// already exists is a no-op.
//
// During construction, an edge may reference a parent that is not yet
// attached to the root; flat edge lists are not required to be ordered
// top-down. [Tree.Freeze] checks that every node ended up reachable from the
// root and makes the tree read-only.
//
// # Ordering
//
// Nodes, children and edges are kept in insertion order. Every traversal in
// this package and in the query package enumerates children in that order,
// which makes all derived results reproducible.
//
// # Concurrency
//
// A Tree is not safe for concurrent mutation. Once frozen it is never
// modified again, so any number of goroutines may read it concurrently.
package tree
