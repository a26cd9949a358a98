package io

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// ReadJSON decodes a JSON tree from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or the root is missing (INVALID_FORMAT)
//   - A node id is listed twice, or an edge names an unlisted node (INVALID_FORMAT)
//   - An edge breaks a hierarchy rule (INVALID_HIERARCHY)
//   - A listed node has no path from the root (INVALID_HIERARCHY)
//
// The returned tree is frozen. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Tree, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode tree")
	}
	if data.Root == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "tree document has no root")
	}

	listed := make(map[string]bool, len(data.Nodes))
	for _, n := range data.Nodes {
		if listed[n.ID] {
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "duplicate node %q", n.ID)
		}
		listed[n.ID] = true
	}

	t, err := tree.New(data.Root)
	if err != nil {
		return nil, err
	}
	for _, e := range data.Edges {
		for _, id := range []string{e.From, e.To} {
			if !listed[id] && id != data.Root {
				return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "edge %q -> %q references unknown node %q", e.From, e.To, id)
			}
		}
		if err := t.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	for _, n := range data.Nodes {
		if !t.Has(n.ID) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidHierarchy, tree.ErrUnreachable, "node %q", n.ID)
		}
	}
	if err := t.Freeze(); err != nil {
		return nil, err
	}
	return t, nil
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
func ImportJSON(path string) (*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
