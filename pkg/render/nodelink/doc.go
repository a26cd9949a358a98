// Package nodelink renders food classification trees as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// every category is a rounded box and every parent-child relation an arrow.
// The root is drawn with a light blue fill.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options{Title: "Food Categories"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels also show depth and descendant count
//   - Highlight: a root-to-node path drawn in orange
//   - Title: a graph label placed above the diagram
//
// Nodes and edges are emitted in insertion order, so the same tree always
// produces byte-identical DOT. The render cache relies on that.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
