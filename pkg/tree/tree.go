package tree

import (
	"errors"
	"slices"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
)

var (
	// ErrInvalidLabel is returned when a node label is empty or otherwise
	// unusable (see [apperrors.ValidateLabel]).
	ErrInvalidLabel = errors.New("invalid node label")

	// ErrMultipleParents is returned by [Tree.AddEdge] when the child already
	// has a different parent.
	ErrMultipleParents = errors.New("node already has a parent")

	// ErrEdgeIntoRoot is returned by [Tree.AddEdge] when the child is the
	// root. The root never has an incoming edge.
	ErrEdgeIntoRoot = errors.New("root cannot have a parent")

	// ErrCycle is returned by [Tree.AddEdge] when the edge would close a
	// cycle, including the degenerate self-loop.
	ErrCycle = errors.New("edge would create a cycle")

	// ErrUnreachable is returned by [Tree.Freeze] when a node is not
	// reachable from the root.
	ErrUnreachable = errors.New("node is not reachable from the root")

	// ErrFrozen is returned when attempting to modify a frozen tree.
	ErrFrozen = errors.New("tree is frozen and cannot be modified")
)

// Edge is a directed parent -> child relationship.
type Edge struct {
	From string // parent label
	To   string // child label
}

// Tree is a rooted tree of string labels.
//
// The zero value is not usable - use New to create a valid Tree instance.
type Tree struct {
	root     string
	index    map[string]int      // label -> position in order
	order    []string            // labels in insertion order
	parent   map[string]string   // child -> parent
	children map[string][]string // parent -> children in insertion order
	edges    []Edge
	frozen   bool
}

// New creates a tree containing only root.
// Returns an INVALID_INPUT error wrapping ErrInvalidLabel if root is not a
// valid label.
func New(root string) (*Tree, error) {
	if err := apperrors.ValidateLabel(root); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, errors.Join(ErrInvalidLabel, err), "root")
	}
	t := &Tree{
		root:     root,
		index:    make(map[string]int),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
	t.addNode(root)
	return t, nil
}

func (t *Tree) addNode(label string) {
	if _, ok := t.index[label]; ok {
		return
	}
	t.index[label] = len(t.order)
	t.order = append(t.order, label)
}

// AddEdge adds the edge parent -> child, creating either node if it is not
// yet present.
//
// Adding an edge that already exists is a no-op. Every rejection is an
// INVALID_HIERARCHY error (INVALID_INPUT for bad labels) that wraps one of
// ErrInvalidLabel, ErrEdgeIntoRoot, ErrCycle, ErrMultipleParents or
// ErrFrozen, with a message naming the offending edge.
func (t *Tree) AddEdge(parent, child string) error {
	if t.frozen {
		return apperrors.Wrap(apperrors.ErrCodeInternal, ErrFrozen, "edge %q -> %q", parent, child)
	}
	for _, label := range []string{parent, child} {
		if err := apperrors.ValidateLabel(label); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, errors.Join(ErrInvalidLabel, err), "edge %q -> %q", parent, child)
		}
	}
	if p, ok := t.parent[child]; ok {
		if p == parent {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidHierarchy, ErrMultipleParents,
			"edge %q -> %q: %q is already a child of %q", parent, child, child, p)
	}
	if child == t.root {
		return apperrors.Wrap(apperrors.ErrCodeInvalidHierarchy, ErrEdgeIntoRoot, "edge %q -> %q", parent, child)
	}
	if t.isAncestorOrSelf(child, parent) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidHierarchy, ErrCycle, "edge %q -> %q", parent, child)
	}

	t.addNode(parent)
	t.addNode(child)
	t.parent[child] = parent
	t.children[parent] = append(t.children[parent], child)
	t.edges = append(t.edges, Edge{From: parent, To: child})
	return nil
}

// isAncestorOrSelf reports whether candidate lies on the parent chain of
// label (label included). Parent chains are acyclic by construction, so the
// walk terminates.
func (t *Tree) isAncestorOrSelf(candidate, label string) bool {
	for cur, ok := label, true; ok; cur, ok = t.parent[cur] {
		if cur == candidate {
			return true
		}
	}
	return false
}

// Freeze verifies that every node is reachable from the root and makes the
// tree read-only. Calling Freeze on a frozen tree is a no-op.
//
// A node whose parent chain does not end at the root produces an
// INVALID_HIERARCHY error wrapping ErrUnreachable. The first such node in
// insertion order is named.
func (t *Tree) Freeze() error {
	if t.frozen {
		return nil
	}
	for _, label := range t.order {
		if !t.isAncestorOrSelf(t.root, label) {
			top := label
			for p, ok := t.parent[top]; ok; p, ok = t.parent[top] {
				top = p
			}
			return apperrors.Wrap(apperrors.ErrCodeInvalidHierarchy, ErrUnreachable,
				"node %q hangs below %q, which has no parent", label, top)
		}
	}
	t.frozen = true
	return nil
}

// Frozen reports whether Freeze has completed successfully.
func (t *Tree) Frozen() bool { return t.frozen }

// Root returns the root label.
func (t *Tree) Root() string { return t.root }

// Has reports whether label is a node of the tree.
func (t *Tree) Has(label string) bool {
	_, ok := t.index[label]
	return ok
}

// Parent returns the parent of label and true, or "" and false for the root
// and for unknown labels.
func (t *Tree) Parent(label string) (string, bool) {
	p, ok := t.parent[label]
	return p, ok
}

// Children returns the children of label in insertion order.
// Returns nil for leaves and unknown labels. The returned slice should not
// be modified - use it as a read-only view.
func (t *Tree) Children(label string) []string { return t.children[label] }

// OutDegree returns the number of children of label.
func (t *Tree) OutDegree(label string) int { return len(t.children[label]) }

// InDegree returns 1 for non-root nodes and 0 for the root and unknown labels.
func (t *Tree) InDegree(label string) int {
	if _, ok := t.parent[label]; ok {
		return 1
	}
	return 0
}

// IsLeaf reports whether label is a node without children.
func (t *Tree) IsLeaf(label string) bool { return t.Has(label) && len(t.children[label]) == 0 }

// Nodes returns a copy of all labels in insertion order.
func (t *Tree) Nodes() []string { return slices.Clone(t.order) }

// Edges returns a copy of all edges in insertion order.
func (t *Tree) Edges() []Edge { return slices.Clone(t.edges) }

// NodeCount returns the number of nodes, root included.
func (t *Tree) NodeCount() int { return len(t.order) }

// EdgeCount returns the number of edges.
func (t *Tree) EdgeCount() int { return len(t.edges) }

// Leaves returns all nodes without children in insertion order.
func (t *Tree) Leaves() []string {
	var leaves []string
	for _, label := range t.order {
		if len(t.children[label]) == 0 {
			leaves = append(leaves, label)
		}
	}
	return leaves
}

// Categories returns the immediate children of the root in insertion order.
func (t *Tree) Categories() []string { return t.children[t.root] }
