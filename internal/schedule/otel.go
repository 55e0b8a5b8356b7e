package schedule

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/arbys/arbitrations/internal/schedule"

type metrics struct {
	enriched metric.Int64Counter
	dropped  metric.Int64Counter
	duration metric.Float64Histogram
}

// newMetrics creates the build instruments. Instruments that fail to register
// are left nil and skipped, metrics never fail a build.
func newMetrics(mp metric.MeterProvider, logger *slog.Logger) *metrics {
	m := mp.Meter(instrumentationName)
	out := &metrics{}

	var err error
	out.enriched, err = m.Int64Counter(
		"schedule.rows.enriched",
		metric.WithDescription("Schedule rows turned into index entries"),
	)
	if err != nil {
		logger.Warn("creating enriched counter", "error", err)
	}

	out.dropped, err = m.Int64Counter(
		"schedule.rows.dropped",
		metric.WithDescription("Schedule rows skipped for missing region metadata"),
	)
	if err != nil {
		logger.Warn("creating dropped counter", "error", err)
	}

	out.duration, err = m.Float64Histogram(
		"schedule.build.duration",
		metric.WithDescription("Time spent enriching and indexing a schedule"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("creating build duration histogram", "error", err)
	}

	return out
}

func (m *metrics) record(ctx context.Context, enriched, dropped int, elapsed time.Duration) {
	if m.enriched != nil {
		m.enriched.Add(ctx, int64(enriched))
	}
	if m.dropped != nil {
		m.dropped.Add(ctx, int64(dropped))
	}
	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds())
	}
}
