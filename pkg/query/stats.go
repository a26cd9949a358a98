package query

import "github.com/matzehuels/foodtree/pkg/tree"

// NodeStats is the position and size of one node.
type NodeStats struct {
	Depth       int `json:"depth"`
	Descendants int `json:"descendants"`
}

// Stats returns the depth and descendant count of every reachable node.
//
// One breadth-first walk from the root sets depths; walking that order
// backwards finishes every child before its parent sums it.
func Stats(t *tree.Tree) map[string]NodeStats {
	order := bfsOrder(t, t.Root())
	stats := make(map[string]NodeStats, len(order))
	stats[t.Root()] = NodeStats{}
	for _, n := range order[1:] {
		p, _ := t.Parent(n)
		stats[n] = NodeStats{Depth: stats[p].Depth + 1}
	}
	for i := len(order) - 1; i > 0; i-- {
		n := order[i]
		p, _ := t.Parent(n)
		ps := stats[p]
		ps.Descendants += stats[n].Descendants + 1
		stats[p] = ps
	}
	return stats
}
