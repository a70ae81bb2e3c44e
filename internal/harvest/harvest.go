// Package harvest runs the acquisition pipeline: scrape, annotate, normalize
// and store.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"swimrank-backend/internal/assert"
	"swimrank-backend/internal/chrono"
	"swimrank-backend/internal/config"
	"swimrank-backend/internal/normalize"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/telemetry"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("swimrank/harvest")

const (
	report_harvest_run   = "harvest.run"
	report_harvest_watch = "harvest.watch"
)

// Sink is where drafts end up, store.Store implements it.
type Sink interface {
	Add(ctx context.Context, drafts []normalize.Draft) (int, error)
}

type Harvester struct {
	source ranking.Source
	sink   Sink
	tel    telemetry.API
}

func New(source ranking.Source, sink Sink, tel telemetry.API) Harvester {
	assert.NotNil("source", source)
	assert.NotNil("sink", sink)
	assert.NotNil("tel", tel)
	return Harvester{
		source: source,
		sink:   sink,
		tel:    telemetry.NewScopedAPI("harvest", tel),
	}
}

// Report is the outcome of one successful run.
type Report struct {
	Filter ranking.Filter
	// Fetched is the number of rows the source returned.
	Fetched int
	// Inserted is the number of records that were not stored before.
	Inserted int
	// Skipped is the number of rows that could not be normalized.
	Skipped int
	// Empty is true when the query matched nothing, it is not a failure.
	Empty bool
}

func (r Report) String() string {
	if r.Empty {
		return fmt.Sprintf("%s: no rows", r.Filter)
	}
	return fmt.Sprintf("%s: fetched %d, inserted %d, skipped %d", r.Filter, r.Fetched, r.Inserted, r.Skipped)
}

// Run acquires rows for `filter` and stores them. An acquisition failure is
// returned as an error wrapping ranking.ErrAcquisition, never as an empty report.
func (h Harvester) Run(ctx context.Context, filter ranking.Filter) (Report, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.String("filter", filter.String()))

	report := Report{Filter: filter}

	outcome, err := h.source.Scrape(ctx, filter)
	if err != nil {
		h.tel.ReportBroken(report_harvest_run, err, filter.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}
	if outcome.Empty() {
		report.Empty = true
		h.tel.ReportDebug(report_harvest_run, "empty result", filter.String())
		return report, nil
	}
	report.Fetched = len(outcome.Rows)

	drafts, errs := normalize.Drafts(ranking.Annotate(outcome.Rows, filter))
	report.Skipped = len(errs)
	if len(errs) > 0 {
		h.tel.ReportWarning(report_harvest_run, "skipped rows", errors.Join(errs...))
	}

	report.Inserted, err = h.sink.Add(ctx, drafts)
	if err != nil {
		h.tel.ReportBroken(report_harvest_run, fmt.Errorf("store: %w", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}

	span.SetAttributes(
		attribute.Int("fetched", report.Fetched),
		attribute.Int("inserted", report.Inserted),
	)
	h.tel.ReportCount(report_harvest_run, int64(report.Inserted))
	return report, nil
}

// RunJobs runs every job one after another, a failed job does not stop the rest.
func (h Harvester) RunJobs(ctx context.Context, jobs []config.Job, now time.Time) ([]Report, error) {
	var reports []Report
	var errs []error
	for i, job := range jobs {
		filter, err := job.Filter(now)
		if err != nil {
			errs = append(errs, fmt.Errorf("job %d: %w", i, err))
			continue
		}
		report, err := h.Run(ctx, filter)
		if err != nil {
			errs = append(errs, fmt.Errorf("job %d: %w", i, err))
			continue
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

// Watch schedules RunJobs on `spec`. Runs never overlap, a tick that comes
// while a run is still going is skipped by the scheduler.
func (h Harvester) Watch(ctx context.Context, cron chrono.CronAPI, clock chrono.API, spec string, jobs []config.Job) error {
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs to watch")
	}
	// fail fast on jobs that could never run
	for i, job := range jobs {
		_, err := job.Filter(clock.Now())
		if err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}

	return cron.Cron(spec, func() {
		reports, err := h.RunJobs(ctx, jobs, clock.Now())
		for _, report := range reports {
			h.tel.ReportDebug(report_harvest_watch, report.String())
		}
		if err != nil {
			h.tel.ReportBroken(report_harvest_watch, err)
		}
	})
}
