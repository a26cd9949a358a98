package io

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/tree"
)

type document struct {
	Root  string `json:"root"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID string `json:"id"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a tree as JSON and writes it to w.
// This format can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(t *tree.Tree, w io.Writer) error {
	labels := t.Nodes()
	edges := t.Edges()
	out := document{
		Root:  t.Root(),
		Nodes: make([]node, len(labels)),
		Edges: make([]edge, len(edges)),
	}
	for i, n := range labels {
		out.Nodes[i] = node{ID: n}
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode tree")
	}
	return nil
}

// ExportJSON writes a tree to a JSON file at path.
func ExportJSON(t *tree.Tree, path string) error {
	if err := apperrors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteJSON(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
