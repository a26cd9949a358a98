package query

import (
	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// Census holds node counts per depth. Index 0 is the root level; there are
// no gaps, so a tree of max depth D has exactly D+1 entries.
type Census []int

// Total returns the number of nodes counted.
func (c Census) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// MaxDepth returns the deepest level, or -1 for an empty census.
func (c Census) MaxDepth() int { return len(c) - 1 }

// Map returns the census as a depth -> count map.
func (c Census) Map() map[int]int {
	m := make(map[int]int, len(c))
	for d, v := range c {
		m[d] = v
	}
	return m
}

// LevelCounts walks the tree breadth-first from the root and counts nodes at
// each depth.
//
// A visited set guards against counting a node twice. In a valid tree that
// cannot happen; if it does, an INTERNAL_ERROR is returned rather than a
// silently wrong census.
func LevelCounts(t *tree.Tree) (Census, error) {
	type item struct {
		label string
		depth int
	}

	var census Census
	visited := make(map[string]bool, t.NodeCount())
	queue := []item{{t.Root(), 0}}
	visited[t.Root()] = true

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		if it.depth == len(census) {
			census = append(census, 0)
		}
		census[it.depth]++

		for _, c := range t.Children(it.label) {
			if visited[c] {
				return nil, apperrors.New(apperrors.ErrCodeInternal,
					"node %q reached twice during level census", c)
			}
			visited[c] = true
			queue = append(queue, item{c, it.depth + 1})
		}
	}
	return census, nil
}

// bfsOrder returns all labels reachable from start in breadth-first order,
// start first.
func bfsOrder(t *tree.Tree, start string) []string {
	order := []string{start}
	for i := 0; i < len(order); i++ {
		order = append(order, t.Children(order[i])...)
	}
	return order
}
