package telemetry

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// TraceConfig selects where the spans of one command run go.
type TraceConfig struct {
	// Tool is the command name; the service is reported as storekit-<tool>.
	Tool     string
	Exporter string
	// Writer receives stdout-exporter spans. Defaults to os.Stderr so traces
	// never mix with tool output.
	Writer io.Writer
}

func (c TraceConfig) serviceName() string {
	return "storekit-" + c.Tool
}

// SetupTracing installs the global tracer provider for a run. Spans are
// exported synchronously as they end, since a command exits as soon as its
// run returns. The returned func flushes and stops the provider.
func SetupTracing(ctx context.Context, cfg TraceConfig, logger *log.Logger) (func(context.Context) error, error) {
	exp, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return func(context.Context) error { return nil }, nil
	}

	res, err := runResource(ctx, cfg)
	if err != nil {
		_ = exp.Shutdown(ctx)
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	if logger != nil {
		logger.Printf("tracing enabled exporter=%s service=%s", ExporterStdout, cfg.serviceName())
	}

	return func(ctx context.Context) error {
		if err := tp.ForceFlush(ctx); err != nil {
			return fmt.Errorf("flush spans: %w", err)
		}
		return tp.Shutdown(ctx)
	}, nil
}

// newExporter returns nil for the none exporter.
func newExporter(cfg TraceConfig) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Exporter)) {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("create stdout trace exporter: %w", err)
		}
		return exp, nil
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q: want %s or %s", cfg.Exporter, ExporterNone, ExporterStdout)
	}
}

// runResource describes the process behind the spans. The run attributes
// are schemaless so they merge with the SDK defaults whatever semconv
// version those carry.
func runResource(ctx context.Context, cfg TraceConfig) (*resource.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.serviceName()),
			semconv.ProcessPID(os.Getpid()),
			attribute.String("storekit.tool", cfg.Tool),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}
	return res, nil
}
