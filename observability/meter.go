package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/pipekit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.GetGlobalLogger().Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// newResource creates an OpenTelemetry resource with service metadata.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.DeploymentEnvironment(environment),
		),
	)
}

// Metrics holds OpenTelemetry metric instruments for sink observability.
type Metrics struct {
	itemsTotal        metric.Int64Counter
	bytesTotal        metric.Int64Counter
	backpressureTotal metric.Int64Counter
	errorTotal        metric.Int64Counter
	batchDuration     metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	itemsTotal, err := meter.Int64Counter("sink.items.total",
		metric.WithDescription("Total records accepted by the sink"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sink.items.total counter: %w", err)
	}

	bytesTotal, err := meter.Int64Counter("sink.bytes.total",
		metric.WithDescription("Total bytes accepted by the sink"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sink.bytes.total counter: %w", err)
	}

	backpressureTotal, err := meter.Int64Counter("sink.backpressure.total",
		metric.WithDescription("Batches accepted only partially because the pipe was full"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sink.backpressure.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("sink.error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sink.error.total counter: %w", err)
	}

	batchDuration, err := meter.Float64Histogram("sink.batch.duration",
		metric.WithDescription("Duration of batch writes in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sink.batch.duration histogram: %w", err)
	}

	return &Metrics{
		itemsTotal:        itemsTotal,
		bytesTotal:        bytesTotal,
		backpressureTotal: backpressureTotal,
		errorTotal:        errorTotal,
		batchDuration:     batchDuration,
	}, nil
}

// RecordBatch records one sink work invocation.
func (m *Metrics) RecordBatch(ctx context.Context, sink string, offered, accepted, itemSize int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("sink", sink))
	m.itemsTotal.Add(ctx, int64(accepted), attrs)
	m.bytesTotal.Add(ctx, int64(accepted*itemSize), attrs)
	if accepted < offered {
		m.backpressureTotal.Add(ctx, 1, attrs)
	}
	m.batchDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
