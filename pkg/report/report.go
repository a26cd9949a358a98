// Package report runs every analysis over a tree and formats the results
// for people (styled text) and programs (JSON).
//
// A failed trace is recorded in its [TraceResult] and the remaining
// analyses still run.
package report

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/query"
)

// Options selects what a report covers.
type Options struct {
	// Traces are the labels whose root paths are reported.
	Traces []string
	// TopK is the number of ranked categories. Zero uses [query.DefaultTopK];
	// a negative value ranks every category.
	TopK int
}

// Report is the result of one analysis run.
type Report struct {
	ID             string                `json:"id"`
	GeneratedAt    time.Time             `json:"generated_at"`
	Root           string                `json:"root"`
	Nodes          int                   `json:"nodes"`
	Edges          int                   `json:"edges"`
	Traces         []TraceResult         `json:"traces"`
	CategoryDepths []query.CategoryDepth `json:"category_depths"`
	Levels         []Level               `json:"levels"`
	TopK           int                   `json:"top_k"`
	Top            []query.SubtreeSize   `json:"top"`
}

// TraceResult is the root path of one target, or the reason it failed.
type TraceResult struct {
	Target string   `json:"target"`
	Path   []string `json:"path,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Level is one entry of the level census.
type Level struct {
	Depth int `json:"depth"`
	Count int `json:"count"`
}

// Generate runs all analyses through e.
func Generate(ctx context.Context, e *query.Engine, opts Options) (*Report, error) {
	t := e.Tree()
	k := opts.TopK
	if k == 0 {
		k = query.DefaultTopK
	}

	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Root:        t.Root(),
		Nodes:       t.NodeCount(),
		Edges:       t.EdgeCount(),
		Traces:      make([]TraceResult, 0, len(opts.Traces)),
		TopK:        k,
	}

	for _, target := range opts.Traces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := e.Trace(ctx, target)
		if err != nil {
			r.Traces = append(r.Traces, TraceResult{Target: target, Error: apperrors.UserMessage(err)})
			continue
		}
		r.Traces = append(r.Traces, TraceResult{Target: target, Path: path})
	}

	r.CategoryDepths = e.CategoryDepths(ctx)

	census, err := e.LevelCounts(ctx)
	if err != nil {
		return nil, err
	}
	r.Levels = make([]Level, len(census))
	for d, n := range census {
		r.Levels[d] = Level{Depth: d, Count: n}
	}

	r.Top = e.TopCategories(ctx, k)
	if k < 0 || k > len(r.Top) {
		r.TopK = len(r.Top)
	}
	return r, nil
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode report")
	}
	return nil
}
