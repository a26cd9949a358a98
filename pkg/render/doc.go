// Package render turns a food classification tree into visual output.
//
// # Overview
//
// Two renderers live in subpackages:
//
//   - [nodelink]: Graphviz node-link diagrams (DOT, SVG, PDF, PNG)
//   - [outline]: indented text outlines for terminals and plain files
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/foodtree/pkg/render/nodelink
// [outline]: github.com/matzehuels/foodtree/pkg/render/outline
package render
