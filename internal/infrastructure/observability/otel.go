package observability

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/jhoicas/metamorphocus-api/pkg/config"
	"github.com/jhoicas/metamorphocus-api/pkg/logger"
)

// ShutdownFunc vacía y cierra el exportador.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTracing registra el TracerProvider global. Con OTel deshabilitado devuelve un shutdown vacío
// y los spans de los casos de uso quedan en el provider no-op por defecto.
// Con endpoint exporta por OTLP/HTTP; sin endpoint, a stdout.
func InitTracing(ctx context.Context, log *logger.Logger, cfg config.OTelConfig, env string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "metamorphocus-api"
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName),
		attribute.String("deployment.environment", env),
	))
	if err != nil {
		log.Warn().Err(err).Msg("otel: recurso incompleto, se continúa")
	}

	exporter, err := buildExporter(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Info().Str("service", serviceName).Str("endpoint", cfg.Endpoint).Msg("trazas OpenTelemetry activas")
	return tp.Shutdown, nil
}

func buildExporter(ctx context.Context, cfg config.OTelConfig) (sdktrace.SpanExporter, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func sampleRatio(r float64) float64 {
	switch {
	case r <= 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
