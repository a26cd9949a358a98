package query

import (
	"context"
	"time"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/observability"
	"github.com/matzehuels/foodtree/pkg/tree"
)

// Query names reported to hooks.
const (
	QueryTrace          = "trace"
	QueryMaxDepth       = "max_depth"
	QueryCategoryDepths = "category_depths"
	QueryLevelCounts    = "level_counts"
	QueryDescendants    = "descendants"
	QuerySubtreeSizes   = "subtree_sizes"
	QueryTopCategories  = "top_categories"
)

// Engine runs queries against a frozen tree.
type Engine struct {
	tree *tree.Tree
}

// NewEngine wraps t. The tree must be frozen so that it cannot change
// underneath concurrent readers.
func NewEngine(t *tree.Tree) (*Engine, error) {
	if t == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "tree is nil")
	}
	if !t.Frozen() {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "tree must be frozen before querying")
	}
	return &Engine{tree: t}, nil
}

// Tree returns the underlying read-only tree.
func (e *Engine) Tree() *tree.Tree { return e.tree }

// Trace is the hook-instrumented form of [Trace].
func (e *Engine) Trace(ctx context.Context, target string) ([]string, error) {
	var path []string
	err := observe(ctx, QueryTrace, target, func() (err error) {
		path, err = Trace(e.tree, target)
		return err
	})
	return path, err
}

// MaxDepthFrom is the hook-instrumented form of [MaxDepthFrom].
func (e *Engine) MaxDepthFrom(ctx context.Context, node string) (int, error) {
	var d int
	err := observe(ctx, QueryMaxDepth, node, func() (err error) {
		d, err = MaxDepthFrom(e.tree, node)
		return err
	})
	return d, err
}

// CategoryDepths is the hook-instrumented form of [CategoryDepths].
func (e *Engine) CategoryDepths(ctx context.Context) []CategoryDepth {
	var out []CategoryDepth
	_ = observe(ctx, QueryCategoryDepths, "", func() error {
		out = CategoryDepths(e.tree)
		return nil
	})
	return out
}

// LevelCounts is the hook-instrumented form of [LevelCounts].
func (e *Engine) LevelCounts(ctx context.Context) (Census, error) {
	var c Census
	err := observe(ctx, QueryLevelCounts, "", func() (err error) {
		c, err = LevelCounts(e.tree)
		return err
	})
	return c, err
}

// DescendantCount is the hook-instrumented form of [DescendantCount].
func (e *Engine) DescendantCount(ctx context.Context, node string) (int, error) {
	var n int
	err := observe(ctx, QueryDescendants, node, func() (err error) {
		n, err = DescendantCount(e.tree, node)
		return err
	})
	return n, err
}

// SubtreeSizes is the hook-instrumented form of [SubtreeSizes].
func (e *Engine) SubtreeSizes(ctx context.Context) []SubtreeSize {
	var out []SubtreeSize
	_ = observe(ctx, QuerySubtreeSizes, "", func() error {
		out = SubtreeSizes(e.tree)
		return nil
	})
	return out
}

// TopCategories is the hook-instrumented form of [TopCategories].
func (e *Engine) TopCategories(ctx context.Context, k int) []SubtreeSize {
	var out []SubtreeSize
	_ = observe(ctx, QueryTopCategories, "", func() error {
		out = TopCategories(e.tree, k)
		return nil
	})
	return out
}

func observe(ctx context.Context, name, node string, fn func() error) error {
	hooks := observability.Query()
	start := time.Now()
	ctx = hooks.OnQueryStart(ctx, name, node)
	err := fn()
	hooks.OnQueryComplete(ctx, name, time.Since(start), err)
	return err
}
