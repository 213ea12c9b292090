package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const meterName = "github.com/ST10257746/prog7314-part1-sub000/internal/service"

// Metric names of the sync run.
const (
	MetricRecordsPushed = "fittrackr.sync.records.pushed"
	MetricRecordsFailed = "fittrackr.sync.records.failed"
	MetricRuns          = "fittrackr.sync.runs"
	MetricRunDuration   = "fittrackr.sync.run.duration"
)

type syncMetrics struct {
	pushed   metric.Int64Counter
	failed   metric.Int64Counter
	runs     metric.Int64Counter
	duration metric.Float64Histogram
}

// newSyncMetrics registers the sync instruments on mp. A nil mp uses the
// global meter provider, which is a no-op until the binary installs one.
func newSyncMetrics(mp metric.MeterProvider) (*syncMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	pushed, err := meter.Int64Counter(
		MetricRecordsPushed,
		metric.WithDescription("Records accepted by the remote store"),
		metric.WithUnit("{records}"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating %s counter: %w", MetricRecordsPushed, err)
	}

	failed, err := meter.Int64Counter(
		MetricRecordsFailed,
		metric.WithDescription("Records whose push failed"),
		metric.WithUnit("{records}"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating %s counter: %w", MetricRecordsFailed, err)
	}

	runs, err := meter.Int64Counter(
		MetricRuns,
		metric.WithDescription("Finished sync runs"),
		metric.WithUnit("{runs}"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating %s counter: %w", MetricRuns, err)
	}

	duration, err := meter.Float64Histogram(
		MetricRunDuration,
		metric.WithDescription("Sync run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating %s histogram: %w", MetricRunDuration, err)
	}

	return &syncMetrics{pushed: pushed, failed: failed, runs: runs, duration: duration}, nil
}

func (m *syncMetrics) recordEntity(ctx context.Context, e models.EntityType, r models.EntityReport) {
	attrs := metric.WithAttributes(attribute.String("entity", e.String()))
	if r.Pushed > 0 {
		m.pushed.Add(ctx, int64(r.Pushed), attrs)
	}
	if r.Failed > 0 {
		m.failed.Add(ctx, int64(r.Failed), attrs)
	}
}

func (m *syncMetrics) recordRun(ctx context.Context, report models.RunReport) {
	attrs := metric.WithAttributes(attribute.String("outcome", report.Outcome.String()))
	m.runs.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(report.Duration.Milliseconds()), attrs)
}
