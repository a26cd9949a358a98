package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/foodtree/pkg/hierarchy"
	treeio "github.com/matzehuels/foodtree/pkg/io"
	"github.com/matzehuels/foodtree/pkg/query"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// loadTree builds the tree selected by the global flags and logs the result.
func (c *CLI) loadTree(ctx context.Context) (*tree.Tree, error) {
	prog := newProgress(c.Logger)
	t, source, err := c.readTree(ctx)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Loaded tree", "source", source)
	prog.done("Built tree", "root", t.Root(), "nodes", t.NodeCount(), "edges", t.EdgeCount())
	return t, nil
}

// readTree builds the tree selected by the global flags: --graph, then
// --spec, then the built-in dataset. It reports which source it used.
func (c *CLI) readTree(ctx context.Context) (*tree.Tree, string, error) {
	var (
		t      *tree.Tree
		source string
		err    error
	)
	switch {
	case c.flags.graph != "":
		source = c.flags.graph
		t, err = treeio.ImportJSON(c.flags.graph)
	case c.flags.spec != "":
		source = c.flags.spec
		var spec *hierarchy.Spec
		if spec, err = hierarchy.Load(c.flags.spec); err == nil {
			t, err = hierarchy.Build(ctx, spec)
		}
	default:
		source = "built-in dataset"
		var spec *hierarchy.Spec
		if spec, err = hierarchy.Default(); err == nil {
			t, err = hierarchy.Build(ctx, spec)
		}
	}
	if err != nil {
		return nil, source, fmt.Errorf("load %s: %w", source, err)
	}
	return t, source, nil
}

// loadEngine loads the tree and wraps it in a query engine.
func (c *CLI) loadEngine(ctx context.Context) (*query.Engine, error) {
	t, err := c.loadTree(ctx)
	if err != nil {
		return nil, err
	}
	return query.NewEngine(t)
}
