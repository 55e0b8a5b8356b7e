// Package schedule builds the time-ordered arbitration index and answers
// "what is coming up" queries against it.
package schedule

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/arbys/arbitrations/internal/parser"
	"github.com/arbys/arbitrations/pkg/core"
)

// Index maps activation time (unix seconds) to arbitrations. Keys are unique
// and kept in ascending order. An Index is safe for concurrent reads; Insert
// must not run concurrently with anything else.
type Index struct {
	entries map[int64]*core.Arbitration
	keys    []int64
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[int64]*core.Arbitration)}
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.keys)
}

// MaxKey returns the latest activation time. ok is false for an empty index.
func (ix *Index) MaxKey() (key int64, ok bool) {
	if len(ix.keys) == 0 {
		return 0, false
	}
	return ix.keys[len(ix.keys)-1], true
}

// Get returns the arbitration activating exactly at key.
func (ix *Index) Get(key int64) (*core.Arbitration, bool) {
	arb, ok := ix.entries[key]
	return arb, ok
}

// Keys returns a copy of the keys in ascending order.
func (ix *Index) Keys() []int64 {
	return slices.Clone(ix.keys)
}

// All iterates every entry in ascending key order.
func (ix *Index) All() iter.Seq2[int64, *core.Arbitration] {
	return func(yield func(int64, *core.Arbitration) bool) {
		for _, k := range ix.keys {
			if !yield(k, ix.entries[k]) {
				return
			}
		}
	}
}

// Insert stores arb under its activation time, replacing any entry already
// there.
func (ix *Index) Insert(arb *core.Arbitration) {
	key := arb.Activation.Unix()
	if _, exists := ix.entries[key]; !exists {
		pos, _ := slices.BinarySearch(ix.keys, key)
		ix.keys = slices.Insert(ix.keys, pos, key)
	}
	ix.entries[key] = arb
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	now           func() time.Time
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	firstRecord   int
}

// WithClock sets the clock used for ETA strings. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *buildConfig) {
		c.now = now
	}
}

// WithLogger sets the logger for build summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// WithMeterProvider sets the meter provider for build metrics. Defaults to
// the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *buildConfig) {
		c.meterProvider = mp
	}
}

// withFirstRecord sets the input record number of rows[0], so errors from
// Build name the same record as the CSV reader would.
func withFirstRecord(n int) Option {
	return func(c *buildConfig) {
		c.firstRecord = n
	}
}

func newBuildConfig(opts []Option) *buildConfig {
	cfg := &buildConfig{
		firstRecord:   1,
		now:           time.Now,
		logger:        slog.New(slog.DiscardHandler),
		meterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Build enriches rows in order and indexes the survivors. A later row with
// the same time replaces an earlier one. Rows without region metadata are
// skipped. An invalid timestamp aborts the whole build, and a build with no
// surviving rows fails with ErrEmptyResult.
func Build(rows []core.RawRow, regions RegionLookup, dict Translator, ranker Ranker, opts ...Option) (*Index, error) {
	cfg := newBuildConfig(opts)
	m := newMetrics(cfg.meterProvider, cfg.logger)

	start := time.Now()
	now := cfg.now()
	enricher := NewEnricher(regions, dict, ranker)

	entries := make(map[int64]*core.Arbitration, len(rows))
	var dropped, replaced int
	for i, row := range rows {
		arb, ok, err := enricher.Enrich(row, now)
		if err != nil {
			return nil, &BuildError{Row: cfg.firstRecord + i, Err: err}
		}
		if !ok {
			dropped++
			cfg.logger.Debug("No region for location code, skipping", "node", row.Node, "time", row.Time)
			continue
		}
		if _, exists := entries[row.Time]; exists {
			replaced++
		}
		entries[row.Time] = arb
	}

	ctx := context.Background()
	m.record(ctx, len(rows)-dropped, dropped, time.Since(start))

	if len(entries) == 0 {
		return nil, ErrEmptyResult
	}

	ix := &Index{
		entries: entries,
		keys:    slices.Sorted(maps.Keys(entries)),
	}

	maxKey, _ := ix.MaxKey()
	cfg.logger.Debug("Built schedule index",
		"rows", len(rows),
		"entries", ix.Len(),
		"dropped", dropped,
		"replaced", replaced,
		"maxKey", maxKey)

	return ix, nil
}

// BuildFromCSV reads a schedule file and builds its index. Read failures are
// reported as *BuildError. Row in every BuildError it returns is the CSV
// record number, header included.
func BuildFromCSV(r io.Reader, parseOpts parser.Options, regions RegionLookup, dict Translator, ranker Ranker, opts ...Option) (*Index, error) {
	cfg := newBuildConfig(opts)

	rows, err := parser.NewRowParser(cfg.logger, parseOpts).ReadRows(r)
	if err != nil {
		var rowErr *parser.RowError
		if errors.As(err, &rowErr) {
			return nil, &BuildError{Row: rowErr.Record, Err: rowErr.Err}
		}
		return nil, &BuildError{Err: err}
	}

	if parseOpts.SkipHeader {
		opts = append(slices.Clone(opts), withFirstRecord(2))
	}
	return Build(rows, regions, dict, ranker, opts...)
}
