// Package pkg provides the core libraries for foodtree food classification
// trees.
//
// # Overview
//
// foodtree builds a single rooted tree of food categories and answers
// structural questions about it. The pkg directory is organized into four
// areas:
//
//  1. Domain: [tree], [hierarchy], [query]
//  2. Input and output: [ingest], [io], [report], [render]
//  3. Serving: [server], [cache]
//  4. Support: [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Spec file, built-in dataset, or Open Food Facts export
//	         ↓
//	    [ingest] package (derive a spec from a TSV export)
//	         ↓
//	    [hierarchy] package (validate edges and build the tree)
//	         ↓
//	    [tree] package (frozen rooted tree)
//	         ↓
//	    [query] package (paths, depths, level census, top-K ranking)
//	         ↓
//	    Report, JSON, outline, DOT/SVG/PDF/PNG, or HTTP
//
// # Quick Start
//
// Build the built-in dataset and rank its largest categories:
//
//	spec, _ := hierarchy.Default()
//	t, _ := hierarchy.Build(ctx, spec)
//	e, _ := query.NewEngine(t)
//
//	path, _ := e.Trace(ctx, "Cola")
//	// [Food Categories Beverages Soda Cola]
//
//	for _, s := range e.TopCategories(ctx, 3) {
//	    fmt.Println(s.Category, s.Descendants)
//	}
//
// # Main Packages
//
// [tree] - The rooted tree: unique labels, one parent per node, no cycles.
// Edges are validated as they are added and the tree is frozen before it is
// queried.
//
// [hierarchy] - Declarative specs in TOML, YAML or JSON, either as flat
// parent/child edges or as nested categories, plus the built-in dataset.
//
// [query] - Read-only queries over a frozen tree. [query.Engine] wraps them
// with observability hooks and is safe for concurrent use.
//
// [render] - Graphviz node-link diagrams and gtree text outlines.
//
// [cache] - Diagram cache with file, Redis and null backends.
//
// [server] - JSON HTTP API over a query engine.
package pkg
