package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/hierarchy"
	"github.com/matzehuels/foodtree/pkg/tree"
)

func snacksTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := hierarchy.Build(context.Background(), &hierarchy.Spec{
		Root: "Food",
		Categories: map[string][]hierarchy.Group{
			"Food": {{Name: "Snacks", Children: []string{"Chips"}}},
		},
		Edges: []hierarchy.Pair{
			{Parent: "Chips", Child: "Potato Chips"},
			{Parent: "Chips", Child: "Tortilla Chips"},
		},
	})
	require.NoError(t, err)
	return tr
}

func foodTree(t *testing.T) *tree.Tree {
	t.Helper()
	spec, err := hierarchy.Default()
	require.NoError(t, err)
	tr, err := hierarchy.Build(context.Background(), spec)
	require.NoError(t, err)
	return tr
}

func TestScenario(t *testing.T) {
	tr := snacksTree(t)

	path, err := Trace(tr, "Tortilla Chips")
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Snacks", "Chips", "Tortilla Chips"}, path)

	d, err := MaxDepthFrom(tr, "Snacks")
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	census, err := LevelCounts(tr)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1, 3: 2}, census.Map())

	n, err := DescendantCount(tr, "Snacks")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []SubtreeSize{{Category: "Snacks", Descendants: 3}}, SubtreeSizes(tr))
}

func TestTraceRoot(t *testing.T) {
	tr := snacksTree(t)
	path, err := Trace(tr, "Food")
	require.NoError(t, err)
	assert.Equal(t, []string{"Food"}, path)

	d, err := Depth(tr, "Potato Chips")
	require.NoError(t, err)
	assert.Equal(t, 3, d)
}

func TestMaxDepthFromLeaf(t *testing.T) {
	tr := snacksTree(t)
	d, err := MaxDepthFrom(tr, "Potato Chips")
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestNodeNotFound(t *testing.T) {
	tr := snacksTree(t)

	_, err := Trace(tr, "Kale")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNodeNotFound))

	_, err = MaxDepthFrom(tr, "Kale")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNodeNotFound))

	_, err = DescendantCount(tr, "Kale")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNodeNotFound))

	_, err = Depth(tr, "Kale")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNodeNotFound))
}

func TestRootOnlyTree(t *testing.T) {
	tr, err := hierarchy.Build(context.Background(), &hierarchy.Spec{Root: "Food"})
	require.NoError(t, err)

	census, err := LevelCounts(tr)
	require.NoError(t, err)
	assert.Equal(t, Census{1}, census)

	d, err := MaxDepthFrom(tr, "Food")
	require.NoError(t, err)
	assert.Zero(t, d)

	assert.Empty(t, SubtreeSizes(tr))
	assert.Empty(t, TopCategories(tr, DefaultTopK))
	assert.Empty(t, CategoryDepths(tr))
}

func TestDefaultDataset(t *testing.T) {
	tr := foodTree(t)

	census, err := LevelCounts(tr)
	require.NoError(t, err)
	assert.Equal(t, Census{1, 6, 25, 74}, census)

	for _, cd := range CategoryDepths(tr) {
		assert.Equal(t, 2, cd.MaxDepth, cd.Category)
	}

	assert.Equal(t, []SubtreeSize{
		{Category: "Beverages", Descendants: 23},
		{Category: "Snacks", Descendants: 22},
		{Category: "Fruits & Vegetables", Descendants: 17},
	}, TopCategories(tr, DefaultTopK))

	path, err := Trace(tr, "Extra Virgin Olive Oil")
	require.NoError(t, err)
	assert.Equal(t, []string{"Food Categories", "Oils & Fats", "Olive Oil", "Extra Virgin Olive Oil"}, path)
}

func TestTopCategoriesStableTies(t *testing.T) {
	tr, err := hierarchy.Build(context.Background(), &hierarchy.Spec{
		Root: "Food",
		Categories: map[string][]hierarchy.Group{
			"Food": {
				{Name: "Dairy", Children: []string{"Milk"}},
				{Name: "Snacks", Children: []string{"Chips", "Nuts"}},
				{Name: "Bakery", Children: []string{"Bread"}},
				{Name: "Cereals", Children: []string{"Oats"}},
				{Name: "Water"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []SubtreeSize{
		{Category: "Snacks", Descendants: 2},
		{Category: "Dairy", Descendants: 1},
		{Category: "Bakery", Descendants: 1},
	}, TopCategories(tr, 3))

	all := TopCategories(tr, 0)
	require.Len(t, all, 5)
	assert.Equal(t, "Cereals", all[3].Category)
	assert.Equal(t, SubtreeSize{Category: "Water", Descendants: 0}, all[4])

	assert.Len(t, TopCategories(tr, 50), 5)
}

// Properties that must hold for any valid tree, checked on the built-in
// dataset.
func TestTreeProperties(t *testing.T) {
	tr := foodTree(t)
	edges := make(map[tree.Edge]bool)
	for _, e := range tr.Edges() {
		edges[e] = true
	}

	t.Run("path uniqueness", func(t *testing.T) {
		for _, n := range tr.Nodes() {
			path, err := Trace(tr, n)
			require.NoError(t, err)
			assert.Equal(t, tr.Root(), path[0])
			assert.Equal(t, n, path[len(path)-1])

			seen := make(map[string]bool)
			for i, p := range path {
				assert.False(t, seen[p], "repeated node %q in path to %q", p, n)
				seen[p] = true
				if i > 0 {
					assert.True(t, edges[tree.Edge{From: path[i-1], To: p}], "missing edge %q -> %q", path[i-1], p)
				}
			}
		}
	})

	t.Run("depth and census consistency", func(t *testing.T) {
		census, err := LevelCounts(tr)
		require.NoError(t, err)
		assert.Equal(t, tr.NodeCount(), census.Total())

		d, err := MaxDepthFrom(tr, tr.Root())
		require.NoError(t, err)
		assert.Equal(t, census.MaxDepth(), d)
	})

	t.Run("subtree size bound", func(t *testing.T) {
		for _, n := range tr.Nodes() {
			c, err := DescendantCount(tr, n)
			require.NoError(t, err)
			assert.LessOrEqual(t, c, tr.NodeCount()-1)
			assert.Equal(t, tr.IsLeaf(n), c == 0, n)
		}
	})

	t.Run("single pass matches per-node count", func(t *testing.T) {
		for _, s := range SubtreeSizes(tr) {
			c, err := DescendantCount(tr, s.Category)
			require.NoError(t, err)
			assert.Equal(t, c, s.Descendants, s.Category)
		}
	})
}

func TestStats(t *testing.T) {
	tr := snacksTree(t)
	assert.Equal(t, map[string]NodeStats{
		"Food":           {Depth: 0, Descendants: 4},
		"Snacks":         {Depth: 1, Descendants: 3},
		"Chips":          {Depth: 2, Descendants: 2},
		"Potato Chips":   {Depth: 3, Descendants: 0},
		"Tortilla Chips": {Depth: 3, Descendants: 0},
	}, Stats(tr))
}

func TestStatsAgreeWithSingleQueries(t *testing.T) {
	tr := foodTree(t)
	stats := Stats(tr)
	require.Len(t, stats, tr.NodeCount())
	for _, n := range tr.Nodes() {
		d, err := Depth(tr, n)
		require.NoError(t, err)
		c, err := DescendantCount(tr, n)
		require.NoError(t, err)
		assert.Equal(t, NodeStats{Depth: d, Descendants: c}, stats[n], n)
	}
}
