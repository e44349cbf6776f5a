package traversal

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("brkset.traversal")
	meter  = otel.Meter("brkset.traversal")
)

var (
	insertedTotal metric.Int64Counter
	skippedTotal  metric.Int64Counter
	retriesTotal  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the counters. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		insertedTotal, err = meter.Int64Counter(
			"brkset_breakpoints_inserted_total",
			metric.WithDescription("Breakpoints accepted by the debugger service"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		skippedTotal, err = meter.Int64Counter(
			"brkset_nodes_skipped_total",
			metric.WithDescription("Nodes abandoned after an error or exhausted retries"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		retriesTotal, err = meter.Int64Counter(
			"brkset_busy_retries_total",
			metric.WithDescription("Namespace reads retried because the host was busy"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordOutcome(ctx context.Context, o Outcome) {
	if err := initMetrics(); err != nil {
		return
	}
	switch o.Status {
	case StatusOK:
		if o.Scope == ScopeFunction {
			insertedTotal.Add(ctx, 1)
		}
	default:
		skippedTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("scope", string(o.Scope)),
			attribute.String("status", string(o.Status)),
		))
	}
}

func recordRetry(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	retriesTotal.Add(ctx, 1)
}
