package hierarchy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/tree"
)

func snacksSpec() *Spec {
	return &Spec{
		Root: "Food",
		Categories: map[string][]Group{
			"Food": {{Name: "Snacks", Children: []string{"Chips"}}},
		},
		Edges: []Pair{
			{Parent: "Chips", Child: "Potato Chips"},
			{Parent: "Chips", Child: "Tortilla Chips"},
		},
	}
}

func TestBuildScenario(t *testing.T) {
	tr, err := Build(context.Background(), snacksSpec())
	require.NoError(t, err)

	assert.True(t, tr.Frozen())
	assert.Equal(t, "Food", tr.Root())
	assert.Equal(t, []string{"Food", "Snacks", "Chips", "Potato Chips", "Tortilla Chips"}, tr.Nodes())
	assert.Equal(t, []tree.Edge{
		{From: "Food", To: "Snacks"},
		{From: "Snacks", To: "Chips"},
		{From: "Chips", To: "Potato Chips"},
		{From: "Chips", To: "Tortilla Chips"},
	}, tr.Edges())
}

func TestBuildEmptySpec(t *testing.T) {
	tr, err := Build(context.Background(), &Spec{Root: "Food"})
	require.NoError(t, err)
	assert.Equal(t, 1, tr.NodeCount())
	assert.Equal(t, 0, tr.EdgeCount())
}

func TestBuildNilSpec(t *testing.T) {
	_, err := Build(context.Background(), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
}

func TestBuildEmptyRoot(t *testing.T) {
	_, err := Build(context.Background(), &Spec{})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
}

func TestBuildRecursesIntoDeclaredChildren(t *testing.T) {
	spec := &Spec{
		Root: "Food",
		Categories: map[string][]Group{
			"Food":   {{Name: "Snacks", Children: []string{"Chips", "Nuts"}}},
			"Chips":  {{Name: "Potato Chips", Children: []string{"Salted"}}},
			"Snacks": {{Name: "Candy"}},
		},
	}

	tr, err := Build(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chips", "Nuts", "Candy"}, tr.Children("Snacks"))
	assert.Equal(t, []string{"Potato Chips"}, tr.Children("Chips"))
	assert.Equal(t, []string{"Salted"}, tr.Children("Potato Chips"))
}

func TestBuildIgnoresUnreachedDeclarations(t *testing.T) {
	spec := snacksSpec()
	spec.Categories["Frozen"] = []Group{{Name: "Ice Cream"}}

	tr, err := Build(context.Background(), spec)
	require.NoError(t, err)
	assert.False(t, tr.Has("Frozen"))
	assert.False(t, tr.Has("Ice Cream"))
}

func TestBuildIdempotentEdges(t *testing.T) {
	once, err := Build(context.Background(), snacksSpec())
	require.NoError(t, err)

	spec := snacksSpec()
	spec.Edges = append(spec.Edges, spec.Edges...)
	spec.Edges = append(spec.Edges, Pair{Parent: "Snacks", Child: "Chips"})
	twice, err := Build(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, once.Nodes(), twice.Nodes())
	assert.Equal(t, once.Edges(), twice.Edges())
}

func TestBuildInvalidHierarchy(t *testing.T) {
	tests := []struct {
		name string
		spec *Spec
		want error
	}{
		{
			name: "second parent via edges",
			spec: func() *Spec {
				s := snacksSpec()
				s.Categories["Food"] = append(s.Categories["Food"], Group{Name: "Beverages"})
				s.Edges = append(s.Edges, Pair{Parent: "Beverages", Child: "Chips"})
				return s
			}(),
			want: tree.ErrMultipleParents,
		},
		{
			name: "second parent via groups",
			spec: &Spec{
				Root: "Food",
				Categories: map[string][]Group{
					"Food": {
						{Name: "Snacks", Children: []string{"Nuts"}},
						{Name: "Baking", Children: []string{"Nuts"}},
					},
				},
			},
			want: tree.ErrMultipleParents,
		},
		{
			name: "cycle through root",
			spec: func() *Spec {
				s := snacksSpec()
				s.Edges = append(s.Edges, Pair{Parent: "Chips", Child: "Food"})
				return s
			}(),
			want: tree.ErrEdgeIntoRoot,
		},
		{
			name: "cycle in groups",
			spec: &Spec{
				Root: "Food",
				Categories: map[string][]Group{
					"Food":   {{Name: "Snacks", Children: []string{"Chips"}}},
					"Chips":  {{Name: "Snacks"}},
					"Snacks": nil,
				},
			},
			want: tree.ErrMultipleParents,
		},
		{
			name: "detached subtree",
			spec: func() *Spec {
				s := snacksSpec()
				s.Edges = append(s.Edges, Pair{Parent: "Frozen", Child: "Ice Cream"})
				return s
			}(),
			want: tree.ErrUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Build(context.Background(), tt.spec)
			require.Error(t, err)
			assert.Nil(t, tr)
			assert.True(t, errors.Is(err, tt.want), "error %v should wrap %v", err, tt.want)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidHierarchy), "code = %s", apperrors.GetCode(err))
		})
	}
}

func TestBuildDefault(t *testing.T) {
	spec, err := Default()
	require.NoError(t, err)
	require.Equal(t, DefaultRoot, spec.Root)

	tr, err := Build(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, 106, tr.NodeCount())
	assert.Equal(t, 105, tr.EdgeCount())
	assert.Equal(t, []string{
		"Snacks", "Beverages", "Dairy Products",
		"Fruits & Vegetables", "Oils & Fats", "Cereals",
	}, tr.Categories())
	assert.Equal(t, []string{"Potato Chips", "Tortilla Chips", "Banana Chips"}, tr.Children("Chips"))
}

func TestFromTreeRebuilds(t *testing.T) {
	spec, err := Default()
	require.NoError(t, err)
	orig, err := Build(context.Background(), spec)
	require.NoError(t, err)

	flat := FromTree(orig)
	assert.Empty(t, flat.Categories)
	assert.Len(t, flat.Edges, orig.EdgeCount())

	rebuilt, err := Build(context.Background(), flat)
	require.NoError(t, err)
	assert.Equal(t, orig.Nodes(), rebuilt.Nodes())
	assert.Equal(t, orig.Edges(), rebuilt.Edges())
}
