package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedHooks(t *testing.T) (*OTelHooks, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	h, err := NewOTelHooks(tp, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewOTelHooks() error = %v", err)
	}
	return h, sr
}

func TestOTelHooksQuerySpan(t *testing.T) {
	h, sr := newRecordedHooks(t)

	ctx := h.OnQueryStart(context.Background(), "trace", "Tortilla Chips")
	h.OnQueryComplete(ctx, "trace", time.Millisecond, nil)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if got := spans[0].Name(); got != "query.trace" {
		t.Errorf("span name = %q, want %q", got, "query.trace")
	}
	if got := spans[0].Status().Code; got != codes.Ok {
		t.Errorf("status = %v, want %v", got, codes.Ok)
	}

	var node string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "node" {
			node = kv.Value.AsString()
		}
	}
	if node != "Tortilla Chips" {
		t.Errorf("node attribute = %q, want %q", node, "Tortilla Chips")
	}
}

func TestOTelHooksQueryError(t *testing.T) {
	h, sr := newRecordedHooks(t)

	ctx := h.OnQueryStart(context.Background(), "depth", "Kale")
	h.OnQueryComplete(ctx, "depth", time.Millisecond, errors.New("node not found"))

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	status := spans[0].Status()
	if status.Code != codes.Error {
		t.Errorf("status = %v, want %v", status.Code, codes.Error)
	}
	if status.Description != "node not found" {
		t.Errorf("description = %q, want %q", status.Description, "node not found")
	}
	if len(spans[0].Events()) == 0 {
		t.Error("error should be recorded as a span event")
	}
}

func TestOTelHooksBuildSpan(t *testing.T) {
	h, sr := newRecordedHooks(t)

	ctx := h.OnBuildStart(context.Background(), "Food")
	h.OnBuildComplete(ctx, "Food", 6, 5, time.Millisecond, nil)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if got := spans[0].Name(); got != "hierarchy.build" {
		t.Errorf("span name = %q, want %q", got, "hierarchy.build")
	}
}

func TestOTelHooksMetricsOnlyEventsDoNotPanic(t *testing.T) {
	h, _ := newRecordedHooks(t)
	ctx := context.Background()

	h.OnCacheHit(ctx, "diagram")
	h.OnCacheMiss(ctx, "diagram")
	h.OnCacheSet(ctx, "diagram", 2048)
	h.OnResponse(ctx, "GET", "/levels", 200, time.Millisecond)
}

func TestNewOTelHooksGlobalProviders(t *testing.T) {
	h, err := NewOTelHooks(nil, nil)
	if err != nil {
		t.Fatalf("NewOTelHooks(nil, nil) error = %v", err)
	}
	if h == nil {
		t.Fatal("NewOTelHooks(nil, nil) = nil")
	}
}
