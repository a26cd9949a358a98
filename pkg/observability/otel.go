package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/matzehuels/foodtree"

// OTelHooks implements BuildHooks, QueryHooks, CacheHooks and HTTPHooks on
// top of OpenTelemetry. Builds and queries become spans; every event also
// feeds a counter or histogram.
type OTelHooks struct {
	tracer trace.Tracer

	builds       metric.Int64Counter
	buildNodes   metric.Int64Histogram
	queries      metric.Int64Counter
	queryLatency metric.Float64Histogram
	cacheEvents  metric.Int64Counter
	cacheBytes   metric.Int64Histogram
	requests     metric.Int64Counter
	reqLatency   metric.Float64Histogram
}

// NewOTelHooks creates hooks backed by the given providers. A nil provider
// falls back to the global one registered with otel.
func NewOTelHooks(tp trace.TracerProvider, mp metric.MeterProvider) (*OTelHooks, error) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)
	h := &OTelHooks{tracer: tp.Tracer(instrumentationName)}

	var err error
	if h.builds, err = meter.Int64Counter("foodtree_builds_total",
		metric.WithDescription("Number of hierarchy builds")); err != nil {
		return nil, err
	}
	if h.buildNodes, err = meter.Int64Histogram("foodtree_build_nodes",
		metric.WithDescription("Nodes per successful build")); err != nil {
		return nil, err
	}
	if h.queries, err = meter.Int64Counter("foodtree_queries_total",
		metric.WithDescription("Number of tree queries")); err != nil {
		return nil, err
	}
	if h.queryLatency, err = meter.Float64Histogram("foodtree_query_duration_seconds",
		metric.WithDescription("Duration of tree queries"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if h.cacheEvents, err = meter.Int64Counter("foodtree_cache_events_total",
		metric.WithDescription("Diagram cache hits, misses and writes")); err != nil {
		return nil, err
	}
	if h.cacheBytes, err = meter.Int64Histogram("foodtree_cache_set_bytes",
		metric.WithDescription("Size of cached diagram artifacts"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if h.requests, err = meter.Int64Counter("foodtree_http_requests_total",
		metric.WithDescription("HTTP API requests")); err != nil {
		return nil, err
	}
	if h.reqLatency, err = meter.Float64Histogram("foodtree_http_request_duration_seconds",
		metric.WithDescription("HTTP API request duration"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	return h, nil
}

// OnBuildStart starts a "hierarchy.build" span.
func (h *OTelHooks) OnBuildStart(ctx context.Context, root string) context.Context {
	ctx, _ = h.tracer.Start(ctx, "hierarchy.build", trace.WithAttributes(attribute.String("root", root)))
	return ctx
}

// OnBuildComplete ends the span started by OnBuildStart.
func (h *OTelHooks) OnBuildComplete(ctx context.Context, root string, nodeCount, edgeCount int, _ time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int("nodes", nodeCount), attribute.Int("edges", edgeCount))
	endSpan(span, err)

	attrs := metric.WithAttributes(attribute.String("root", root), attribute.Bool("ok", err == nil))
	h.builds.Add(ctx, 1, attrs)
	if err == nil {
		h.buildNodes.Record(ctx, int64(nodeCount), attrs)
	}
}

// OnQueryStart starts a "query.<name>" span.
func (h *OTelHooks) OnQueryStart(ctx context.Context, query, node string) context.Context {
	opts := []trace.SpanStartOption{trace.WithAttributes(attribute.String("query", query))}
	if node != "" {
		opts = append(opts, trace.WithAttributes(attribute.String("node", node)))
	}
	ctx, _ = h.tracer.Start(ctx, "query."+query, opts...)
	return ctx
}

// OnQueryComplete ends the span started by OnQueryStart.
func (h *OTelHooks) OnQueryComplete(ctx context.Context, query string, duration time.Duration, err error) {
	endSpan(trace.SpanFromContext(ctx), err)

	attrs := metric.WithAttributes(attribute.String("query", query), attribute.Bool("ok", err == nil))
	h.queries.Add(ctx, 1, attrs)
	h.queryLatency.Record(ctx, duration.Seconds(), attrs)
}

func (h *OTelHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.cacheEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("type", keyType), attribute.String("event", "hit")))
}

func (h *OTelHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.cacheEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("type", keyType), attribute.String("event", "miss")))
}

func (h *OTelHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	attrs := metric.WithAttributes(attribute.String("type", keyType), attribute.String("event", "set"))
	h.cacheEvents.Add(ctx, 1, attrs)
	h.cacheBytes.Record(ctx, int64(size), metric.WithAttributes(attribute.String("type", keyType)))
}

func (h *OTelHooks) OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", statusCode),
	)
	h.requests.Add(ctx, 1, attrs)
	h.reqLatency.Record(ctx, duration.Seconds(), attrs)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

var (
	_ BuildHooks = (*OTelHooks)(nil)
	_ QueryHooks = (*OTelHooks)(nil)
	_ CacheHooks = (*OTelHooks)(nil)
	_ HTTPHooks  = (*OTelHooks)(nil)
)
