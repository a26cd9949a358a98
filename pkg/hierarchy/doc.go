// Package hierarchy builds a frozen [tree.Tree] from a declarative
// specification.
//
// # Specification
//
// A [Spec] names the root, declares ordered groups of (child, grandchildren)
// per parent, and lists supplementary (parent, child) pairs for deeper
// levels:
//
//	spec := &hierarchy.Spec{
//	    Root: "Food",
//	    Categories: map[string][]hierarchy.Group{
//	        "Food": {{Name: "Snacks", Children: []string{"Chips"}}},
//	    },
//	    Edges: []hierarchy.Pair{
//	        {Parent: "Chips", Child: "Potato Chips"},
//	        {Parent: "Chips", Child: "Tortilla Chips"},
//	    },
//	}
//	t, err := hierarchy.Build(ctx, spec)
//
// [Build] walks the groups depth-first starting at the root, recursing into
// any node that has its own entry in Categories, then applies Edges in
// order. Declarations for nodes that the walk never reaches are ignored.
//
// # Spec files
//
// Specs are read and written as TOML, YAML or JSON, chosen by file
// extension ([Load], [Save]). [Default] returns the built-in food dataset.
//
// TOML example:
//
//	root = "Food"
//	edges = [
//	  { parent = "Chips", child = "Potato Chips" },
//	]
//
//	[[categories.Food]]
//	name = "Snacks"
//	children = ["Chips"]
//
// # Errors
//
// A spec that implies a cycle or a second parent for a node fails with
// INVALID_HIERARCHY and the message names the offending edge. Construction
// is all-or-nothing: on error no tree is returned.
package hierarchy
