package cli

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/matzehuels/foodtree/pkg/observability"
)

// setupTelemetry installs a tracer provider that prints spans to w and
// registers OpenTelemetry hooks for builds, queries, caches and HTTP.
// The returned function flushes and uninstalls them.
func setupTelemetry(w io.Writer) (func() error, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	otel.SetTracerProvider(tp)

	hooks, err := observability.NewOTelHooks(tp, nil)
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, err
	}
	observability.SetBuildHooks(hooks)
	observability.SetQueryHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	return func() error {
		observability.Reset()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}
