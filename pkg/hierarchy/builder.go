package hierarchy

import (
	"context"
	"time"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/observability"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// Build constructs and freezes the tree described by spec.
//
// The nested pass starts at spec.Root: for each group declared under a node
// it adds node -> group, then group -> child for every declared child,
// recursing into any node that has its own Categories entry. Each node is
// expanded at most once. Supplementary Edges are applied afterwards in order;
// repeating an edge is harmless.
//
// Errors are INVALID_INPUT for a nil spec or an invalid root label, and
// INVALID_HIERARCHY for any cycle, second parent, or node left unattached to
// the root. On error no tree is returned.
func Build(ctx context.Context, spec *Spec) (*tree.Tree, error) {
	if spec == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "spec is nil")
	}

	hooks := observability.Build()
	start := time.Now()
	ctx = hooks.OnBuildStart(ctx, spec.Root)

	t, err := build(spec)
	if err != nil {
		hooks.OnBuildComplete(ctx, spec.Root, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, spec.Root, t.NodeCount(), t.EdgeCount(), time.Since(start), nil)
	return t, nil
}

// builder carries the spec and the accumulating tree through the recursive
// nested pass.
type builder struct {
	spec     *Spec
	tree     *tree.Tree
	expanded map[string]bool
}

func build(spec *Spec) (*tree.Tree, error) {
	t, err := tree.New(spec.Root)
	if err != nil {
		return nil, err
	}
	b := &builder{spec: spec, tree: t, expanded: make(map[string]bool)}

	if err := b.expand(spec.Root); err != nil {
		return nil, err
	}
	for _, e := range spec.Edges {
		if err := t.AddEdge(e.Parent, e.Child); err != nil {
			return nil, err
		}
	}
	if err := t.Freeze(); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *builder) expand(node string) error {
	if b.expanded[node] {
		return nil
	}
	b.expanded[node] = true

	for _, g := range b.spec.Categories[node] {
		if err := b.tree.AddEdge(node, g.Name); err != nil {
			return err
		}
		for _, child := range g.Children {
			if err := b.tree.AddEdge(g.Name, child); err != nil {
				return err
			}
			if err := b.expand(child); err != nil {
				return err
			}
		}
		if err := b.expand(g.Name); err != nil {
			return err
		}
	}
	return nil
}

// FromTree returns a flat spec that rebuilds t: the root plus every edge in
// insertion order.
func FromTree(t *tree.Tree) *Spec {
	edges := t.Edges()
	pairs := make([]Pair, len(edges))
	for i, e := range edges {
		pairs[i] = Pair{Parent: e.From, Child: e.To}
	}
	return &Spec{Root: t.Root(), Edges: pairs}
}
