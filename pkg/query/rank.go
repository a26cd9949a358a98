package query

import (
	"slices"

	"github.com/matzehuels/foodtree/pkg/tree"
)

// DefaultTopK is the number of categories reported by default.
const DefaultTopK = 3

// SubtreeSize is the number of descendants below one node.
type SubtreeSize struct {
	Category    string `json:"category"`
	Descendants int    `json:"descendants"`
}

// DescendantCount returns the number of nodes strictly below node.
func DescendantCount(t *tree.Tree, node string) (int, error) {
	if !t.Has(node) {
		return 0, notFound(node)
	}
	return len(bfsOrder(t, node)) - 1, nil
}

// SubtreeSizes returns the descendant count of every immediate child of the
// root, in insertion order. All counts come from one pass over the tree.
func SubtreeSizes(t *tree.Tree) []SubtreeSize {
	stats := Stats(t)
	cats := t.Categories()
	out := make([]SubtreeSize, 0, len(cats))
	for _, c := range cats {
		out = append(out, SubtreeSize{Category: c, Descendants: stats[c].Descendants})
	}
	return out
}

// TopCategories returns the k top-level categories with the most
// descendants, largest first. Ties keep insertion order. k <= 0 or k larger
// than the number of categories returns all of them.
func TopCategories(t *tree.Tree, k int) []SubtreeSize {
	sizes := SubtreeSizes(t)
	slices.SortStableFunc(sizes, func(a, b SubtreeSize) int {
		return b.Descendants - a.Descendants
	})
	if k > 0 && k < len(sizes) {
		sizes = sizes[:k]
	}
	return sizes
}
