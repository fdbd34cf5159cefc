package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
)

const shutdownTimeout = 5 * time.Second

// Providers - the SDK providers installed as otel globals.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
}

// Init - installs tracer and meter providers writing JSON to out. Metrics are exported every
// conf.MetricInterval and once more on shutdown. When telemetry is disabled the otel no-op
// globals stay in place.
func Init(conf config.Telemetry, out io.Writer) (*Providers, func(context.Context) error, error) {
	if !conf.Enabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.ServiceName),
			semconv.ServiceVersion(conf.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporterOpts := []stdouttrace.Option{stdouttrace.WithWriter(out)}
	if conf.PrettyPrint {
		exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
	}

	traceExporter, err := stdouttrace.New(exporterOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricOpts := []stdoutmetric.Option{stdoutmetric.WithWriter(out)}
	if conf.PrettyPrint {
		metricOpts = append(metricOpts, stdoutmetric.WithPrettyPrint())
	}

	metricExporter, err := stdoutmetric.New(metricOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if conf.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(conf.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		var errs []error
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown TracerProvider: %w", err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown MeterProvider: %w", err))
		}

		return errors.Join(errs...)
	}

	return &Providers{Tracer: tp, Meter: mp}, shutdown, nil
}
