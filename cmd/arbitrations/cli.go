package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/arbys/arbitrations/internal/config"
	"github.com/arbys/arbitrations/internal/dispatcher"
	"github.com/arbys/arbitrations/internal/export"
	"github.com/arbys/arbitrations/internal/parser"
	"github.com/arbys/arbitrations/internal/schedule"
	"github.com/arbys/arbitrations/pkg/core"
	"go.opentelemetry.io/otel/metric"
)

// app holds the state of one CLI run. The index is built on first use.
type app struct {
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	now           time.Time
	out           io.Writer

	limit     int
	compress  bool
	outputDir string

	holder *schedule.Holder
}

func newApp(logger *slog.Logger, mp metric.MeterProvider, now time.Time, out io.Writer) *app {
	return &app{
		logger:        logger,
		meterProvider: mp,
		now:           now,
		out:           out,
		holder:        schedule.NewHolder(nil),
	}
}

func (a *app) dispatcher() (*dispatcher.Dispatcher, error) {
	d, err := dispatcher.New(a.logger)
	if err != nil {
		return nil, err
	}

	d.Register("next", a.handleNext, dispatcher.Logged(),
		dispatcher.Usage("next                arbitration starting at the next full hour"))
	d.Register("next-tier", a.handleNextTier, dispatcher.Logged(), dispatcher.MinArgs(1),
		dispatcher.Usage("next-tier <tier>    next arbitration of tier S, A, B, C, D or F"))
	d.Register("upcoming", a.handleUpcoming, dispatcher.Logged(),
		dispatcher.Usage("upcoming            all future arbitrations, see --limit"))
	d.Register("import-refs", a.handleImportRefs, dispatcher.Logged(),
		dispatcher.Usage("import-refs         copy region and dictionary files into the reference database"))

	return d, nil
}

// dispatch runs command and renders its result.
func (a *app) dispatch(d *dispatcher.Dispatcher, command string, args []string) error {
	result, err := d.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: a.now,
	})
	if err != nil {
		return err
	}

	switch r := result.(type) {
	case export.Document:
		return a.render(r)
	case string:
		_, err := fmt.Fprintln(a.out, r)
		return err
	default:
		return nil
	}
}

func (a *app) render(doc export.Document) error {
	if a.outputDir == "" {
		return export.Write(a.out, doc, a.compress)
	}

	path, err := export.WriteFile(a.outputDir, doc, a.compress)
	if err != nil {
		return err
	}
	a.logger.Info("Wrote export", "path", path, "count", doc.Count)
	_, err = fmt.Fprintln(a.out, path)
	return err
}

// index returns the schedule snapshot, building it on first call.
func (a *app) index() (*schedule.Index, error) {
	if ix := a.holder.Load(); ix != nil {
		return ix, nil
	}
	if err := a.holder.Rebuild(a.buildIndex); err != nil {
		return nil, err
	}
	return a.holder.Load(), nil
}

func (a *app) buildIndex() (*schedule.Index, error) {
	ctx := context.Background()
	start := time.Now()

	regions, dict, err := loadRefs(ctx, a.logger)
	if err != nil {
		return nil, err
	}

	ranker, err := loadClassifier(a.logger)
	if err != nil {
		return nil, err
	}

	sc := config.GetScheduleConfig()
	f, err := os.Open(sc.Path)
	if err != nil {
		return nil, fmt.Errorf("error opening schedule file: %w", err)
	}
	defer f.Close()

	opts := []schedule.Option{
		schedule.WithClock(func() time.Time { return a.now }),
		schedule.WithLogger(a.logger),
	}
	if a.meterProvider != nil {
		opts = append(opts, schedule.WithMeterProvider(a.meterProvider))
	}

	ix, err := schedule.BuildFromCSV(f, parser.Options{SkipHeader: sc.SkipHeader}, regions, dict, ranker, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sc.Path, err)
	}

	a.logger.Info("Schedule loaded", "path", sc.Path, "entries", ix.Len(), "duration", time.Since(start))
	return ix, nil
}

func (a *app) handleNext(e dispatcher.Event) (any, error) {
	ix, err := a.index()
	if err != nil {
		return nil, err
	}

	arb, ok, err := ix.NextUpcoming(a.now)
	if err != nil {
		return nil, err
	}

	var records []*core.Arbitration
	if ok {
		records = append(records, arb)
	} else {
		a.logger.Info("No arbitration scheduled for the next hour", "now", a.now.UTC())
	}
	return export.NewDocument("next", a.now, records), nil
}

func (a *app) handleNextTier(e dispatcher.Event) (any, error) {
	t, err := core.ParseTier(e.Args[0])
	if err != nil {
		return nil, err
	}

	ix, err := a.index()
	if err != nil {
		return nil, err
	}

	arb, ok, err := ix.NextUpcomingByTier(a.now, t)
	if err != nil {
		return nil, err
	}

	var records []*core.Arbitration
	if ok {
		records = append(records, arb)
	} else {
		a.logger.Info("No upcoming arbitration of tier", "tier", t)
	}
	return export.NewDocument("next-tier "+t.String(), a.now, records), nil
}

func (a *app) handleUpcoming(e dispatcher.Event) (any, error) {
	ix, err := a.index()
	if err != nil {
		return nil, err
	}

	records := make([]*core.Arbitration, 0)
	for _, arb := range ix.Upcoming(a.now) {
		if a.limit > 0 && len(records) >= a.limit {
			break
		}
		records = append(records, arb)
	}
	return export.NewDocument("upcoming", a.now, records), nil
}

func (a *app) handleImportRefs(e dispatcher.Event) (any, error) {
	regions, translations, err := importRefs(context.Background(), a.logger)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("imported %d regions and %d translations", regions, translations), nil
}
