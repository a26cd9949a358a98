// Package outline renders a food classification tree as an indented text
// outline using box-drawing connectors.
//
//	Food
//	└── Snacks
//	    └── Chips
//	        ├── Potato Chips
//	        └── Tortilla Chips
package outline

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// Options configures outline rendering.
type Options struct {
	// MaxDepth stops the outline below this depth. Zero means unlimited.
	MaxDepth int
	// From starts the outline at this node instead of the root.
	From string
}

// Write renders t to w.
func Write(w io.Writer, t *tree.Tree, opts Options) error {
	start := t.Root()
	if opts.From != "" {
		if !t.Has(opts.From) {
			return apperrors.New(apperrors.ErrCodeNodeNotFound, "node %q is not in the tree", opts.From)
		}
		start = opts.From
	}

	root := gtree.NewRoot(start)
	add(root, t, start, 1, opts.MaxDepth)
	if err := gtree.OutputFromRoot(w, root); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write outline")
	}
	return nil
}

func add(parent *gtree.Node, t *tree.Tree, label string, depth, maxDepth int) {
	if maxDepth > 0 && depth > maxDepth {
		return
	}
	for _, c := range t.Children(label) {
		add(parent.Add(c), t, c, depth+1, maxDepth)
	}
}

// Summary formats a one-line description of t, used as an outline footer.
func Summary(t *tree.Tree) string {
	return fmt.Sprintf("%d nodes, %d edges, %d categories, %d leaves",
		t.NodeCount(), t.EdgeCount(), len(t.Categories()), len(t.Leaves()))
}
