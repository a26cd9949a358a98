// Package query implements the read-only analyses that run against a built
// [tree.Tree].
//
// # Algorithms
//
//   - [Trace]: the unique root-to-node path
//   - [MaxDepthFrom]: longest edge count from a node down to any leaf
//   - [LevelCounts]: breadth-first census of nodes per depth
//   - [SubtreeSizes], [TopCategories], [DescendantCount]: descendant counts
//     and the ranking of top-level categories by them
//
// Every function performs a single traversal of the part of the tree it
// needs and enumerates children in insertion order, so results are
// deterministic for a given tree.
//
// Queries naming a label that is not in the tree fail with a NODE_NOT_FOUND
// error; callers may report it and carry on with other queries.
//
// # Engine
//
// [Engine] wraps a frozen tree and exposes the same operations with a
// context, emitting [observability.QueryHooks] events around each call. The
// tree is never modified, so an Engine is safe for concurrent use.
package query
