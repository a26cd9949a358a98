// Package io provides JSON import and export for food classification trees.
//
// # Overview
//
// This package serializes a built tree to a node-link JSON document and
// reads it back. The format is designed for:
//
//   - Handing the hierarchy to external graph tools
//   - Re-loading a previously built or ingested tree without the spec file
//   - Round-trip preservation: export, import, and export again identically
//
// # JSON Format
//
//	{
//	  "root": "Food",
//	  "nodes": [
//	    {"id": "Food"},
//	    {"id": "Snacks"},
//	    {"id": "Chips"}
//	  ],
//	  "edges": [
//	    {"from": "Food", "to": "Snacks"},
//	    {"from": "Snacks", "to": "Chips"}
//	  ]
//	}
//
// Nodes and edges appear in insertion order.
//
// # Import
//
// Use [ImportJSON] to read a tree from a file path, or [ReadJSON] to read
// from any io.Reader. Both replay the edges through the tree builder, so
// every hierarchy rule applies: a second parent, a cycle, or a node that
// cannot be reached from the root is an INVALID_HIERARCHY error. The
// returned tree is frozen.
//
// # Export
//
// Use [ExportJSON] to write a tree to a file, or [WriteJSON] to write to any
// io.Writer.
package io
