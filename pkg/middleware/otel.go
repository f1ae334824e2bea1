package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pagio-dev/pagio/pkg/nav"
)

// Default tracer name for pagio applications.
const defaultTracerName = "pagio"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "pagio").
	TracerName string

	// Filter determines which navigations to trace, by requested path.
	// Return true to trace, false to skip. If nil, all navigations are
	// traced.
	Filter func(path string) bool

	// AttributeExtractor extracts custom attributes from the completed
	// navigation. Called once per traced navigation.
	AttributeExtractor func(res *nav.Result) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(path string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(res *nav.Result) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// The middleware:
//   - Creates a span per navigation named "pagio.navigate"
//   - Records the requested path, resolved page, and outcome as attributes
//   - Records errors and sets span status for failed navigations
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before the first navigation:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-app"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return func(next Navigator) Navigator {
		return NavigatorFunc(func(ctx context.Context, path string, opts ...nav.Option) *nav.Result {
			if config.Filter != nil && !config.Filter(path) {
				return next.Navigate(ctx, path, opts...)
			}

			spanCtx, span := config.tracer.Start(
				ctx,
				"pagio.navigate",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("pagio.path", path)),
				trace.WithTimestamp(time.Now()),
			)
			defer span.End()

			res := next.Navigate(spanCtx, path, opts...)

			attrs := []attribute.KeyValue{
				attribute.String("pagio.outcome", res.Outcome.String()),
			}
			if res.Page != nil {
				attrs = append(attrs, attribute.String("pagio.page", res.Page.Identifier()))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(res)...)
			}
			span.SetAttributes(attrs...)

			if res.Err != nil {
				span.RecordError(res.Err)
				span.SetStatus(codes.Error, res.Err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}

			return res
		})
	}
}
