package tree_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/foodtree/pkg/tree"
)

func ExampleTree_basic() {
	t, _ := tree.New("Food")
	_ = t.AddEdge("Food", "Snacks")
	_ = t.AddEdge("Snacks", "Chips")
	_ = t.AddEdge("Snacks", "Chips") // duplicate collapses
	_ = t.Freeze()

	fmt.Println("Nodes:", t.NodeCount())
	fmt.Println("Edges:", t.EdgeCount())
	fmt.Println("Children of Snacks:", t.Children("Snacks"))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Children of Snacks: [Chips]
}

func ExampleTree_AddEdge_secondParent() {
	t, _ := tree.New("Food")
	_ = t.AddEdge("Food", "Snacks")
	_ = t.AddEdge("Food", "Beverages")
	_ = t.AddEdge("Snacks", "Chips")

	err := t.AddEdge("Beverages", "Chips")
	fmt.Println(errors.Is(err, tree.ErrMultipleParents))
	fmt.Println(err)
	// Output:
	// true
	// INVALID_HIERARCHY: edge "Beverages" -> "Chips": "Chips" is already a child of "Snacks": node already has a parent
}
