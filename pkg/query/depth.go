package query

import "github.com/matzehuels/foodtree/pkg/tree"

// MaxDepthFrom returns the length, in edges, of the longest downward path
// from node to a leaf. A leaf yields 0.
func MaxDepthFrom(t *tree.Tree, node string) (int, error) {
	if !t.Has(node) {
		return 0, notFound(node)
	}

	type frame struct {
		label string
		depth int
	}
	maxDepth := 0
	stack := []frame{{node, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := t.Children(f.label)
		if len(children) == 0 {
			maxDepth = max(maxDepth, f.depth)
			continue
		}
		for _, c := range children {
			stack = append(stack, frame{c, f.depth + 1})
		}
	}
	return maxDepth, nil
}

// CategoryDepth is the max depth below one top-level category.
type CategoryDepth struct {
	Category string `json:"category"`
	MaxDepth int    `json:"max_depth"`
}

// CategoryDepths returns MaxDepthFrom for every immediate child of the root,
// in insertion order.
func CategoryDepths(t *tree.Tree) []CategoryDepth {
	cats := t.Categories()
	out := make([]CategoryDepth, 0, len(cats))
	for _, c := range cats {
		// Categories are tree members, so MaxDepthFrom cannot fail here.
		d, _ := MaxDepthFrom(t, c)
		out = append(out, CategoryDepth{Category: c, MaxDepth: d})
	}
	return out
}
