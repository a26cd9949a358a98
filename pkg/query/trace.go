package query

import (
	"slices"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// Trace returns the path from the root to target, both inclusive.
// Because every node has at most one parent the path is unique; it is built
// by following parent links upward and reversing.
func Trace(t *tree.Tree, target string) ([]string, error) {
	if !t.Has(target) {
		return nil, notFound(target)
	}
	path := []string{target}
	for p, ok := t.Parent(target); ok; p, ok = t.Parent(p) {
		path = append(path, p)
	}
	slices.Reverse(path)
	return path, nil
}

// Depth returns the number of edges between the root and label.
func Depth(t *tree.Tree, label string) (int, error) {
	path, err := Trace(t, label)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

func notFound(label string) error {
	return apperrors.New(apperrors.ErrCodeNodeNotFound, "node %q is not in the tree", label)
}
