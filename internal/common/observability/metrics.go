// internal/common/observability/metrics.go
package observability

import (
	"context"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Observability records per-job OpenTelemetry metrics through a Prometheus
// exporter, so they are served on /metrics next to the promauto series. A nil
// *Observability is valid and records nothing.
type Observability struct {
	provider    *metric.MeterProvider
	jobCounter  otelmetric.Int64Counter
	jobDuration otelmetric.Float64Histogram
}

// New registers the exporter with reg and installs the meter provider as the
// global one.
func New(serviceName string, reg promclient.Registerer) (*Observability, error) {
	exporter, err := prometheus.New(
		prometheus.WithRegisterer(reg),
		prometheus.WithNamespace("hauler"),
	)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter("hauler-workers/jobs")

	jobCounter, err := meter.Int64Counter("jobs_processed",
		otelmetric.WithDescription("Jobs handled, by task type and final status"),
	)
	if err != nil {
		return nil, fmt.Errorf("create jobs_processed counter: %w", err)
	}

	jobDuration, err := meter.Float64Histogram("jobs_duration",
		otelmetric.WithDescription("Job handling time"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create jobs_duration histogram: %w", err)
	}

	return &Observability{
		provider:    provider,
		jobCounter:  jobCounter,
		jobDuration: jobDuration,
	}, nil
}

func jobAttributes(taskType, status string) otelmetric.MeasurementOption {
	return otelmetric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	)
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o == nil {
		return
	}
	o.jobCounter.Add(ctx, 1, jobAttributes(taskType, status))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Microseconds())/1000, jobAttributes(taskType, status))
}

// Shutdown flushes and stops the meter provider.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	return o.provider.Shutdown(ctx)
}
