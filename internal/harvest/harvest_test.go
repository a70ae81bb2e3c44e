package harvest

import (
	"context"
	"errors"
	"swimrank-backend/internal/chrono"
	"swimrank-backend/internal/config"
	"swimrank-backend/internal/normalize"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/store"
	"swimrank-backend/internal/store/db"
	"swimrank-backend/internal/telemetry"
	"swimrank-backend/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rows    []ranking.Row
	err     error
	filters []ranking.Filter
}

func (s *fakeSource) Scrape(ctx context.Context, filter ranking.Filter) (ranking.Outcome, error) {
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return ranking.Outcome{}, s.err
	}
	return ranking.Outcome{Rows: s.rows}, nil
}

func (s *fakeSource) Close() error {
	return nil
}

type fakeCron struct {
	spec     string
	callback func()
}

func (c *fakeCron) Cron(spec string, callback func()) error {
	c.spec = spec
	c.callback = callback
	return nil
}

func (c *fakeCron) Stop() {}

var scenarioRows = []ranking.Row{
	{Rank: "1", Name: "Alice Swim", Club: "Bangkok SC", Nationality: "THA", Time: "00:35.10", Competition: "Age Group Championships", CompetitionDate: "15 ม.ค. 2567"},
	{Rank: "2", Name: "Bea Swim", Club: "Chiang Mai SC", Nationality: "THA", Time: "00:36.02", Competition: "Age Group Championships", CompetitionDate: "15 ม.ค. 2567"},
	{Rank: "3", Name: "Cat Swim", Club: "Phuket SC", Nationality: "THA", Time: "00:37.50", Competition: "Youth Open", CompetitionDate: "2 มี.ค. 2566"},
}

func scenarioFilter() ranking.Filter {
	return ranking.Filter{
		Stroke:   ranking.Backstroke,
		Distance: ranking.Distance50,
		Gender:   ranking.Female,
		Pool:     ranking.LongCourse,
		MinAge:   "9",
		MaxAge:   "9",
		Start:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestStore(t *testing.T) store.Store {
	return store.New(testutil.OpenDB(t, db.Schema, db.SchemaVersion), &telemetry.Recorder{})
}

func TestRunEndToEnd(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	h := New(&fakeSource{rows: scenarioRows}, s, &telemetry.Recorder{})

	report, err := h.Run(ctx, scenarioFilter())
	require.NoError(t, err)
	require.Equal(t, 3, report.Fetched)
	require.Equal(t, 3, report.Inserted)
	require.False(t, report.Empty)

	records, err := s.Records(ctx, store.RecordQuery{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		require.Equal(t, "Backstroke", r.Stroke)
		require.Equal(t, "50 m", r.Distance)
		require.Equal(t, "Female", r.Gender)
		require.Equal(t, "9", r.Age)
	}

	swimmers, err := s.Swimmers(ctx)
	require.NoError(t, err)
	require.Len(t, swimmers, 3)

	// running it again stores nothing new
	report, err = h.Run(ctx, scenarioFilter())
	require.NoError(t, err)
	require.Equal(t, 3, report.Fetched)
	require.Zero(t, report.Inserted)
}

func TestRunCollidingNames(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	rows := append([]ranking.Row{}, scenarioRows...)
	rows[1].Name = "alice  SWIM"
	h := New(&fakeSource{rows: rows}, s, &telemetry.Recorder{})

	report, err := h.Run(ctx, scenarioFilter())
	require.NoError(t, err)
	require.Equal(t, 3, report.Inserted)

	swimmers, err := s.Swimmers(ctx)
	require.NoError(t, err)
	require.Len(t, swimmers, 2)
}

func TestRunEmptyIsNotFailure(t *testing.T) {
	h := New(&fakeSource{}, newTestStore(t), &telemetry.Recorder{})
	report, err := h.Run(context.Background(), scenarioFilter())
	require.NoError(t, err)
	require.True(t, report.Empty)
	require.Zero(t, report.Inserted)
}

func TestRunFailureIsNotEmpty(t *testing.T) {
	tel := &telemetry.Recorder{}
	failure := ranking.Fail("navigate", errors.New("net::ERR_CONNECTION_RESET"))
	h := New(&fakeSource{err: failure}, newTestStore(t), tel)

	report, err := h.Run(context.Background(), scenarioFilter())
	require.ErrorIs(t, err, ranking.ErrAcquisition)
	require.False(t, report.Empty)
	require.NotEmpty(t, tel.Broken(report_harvest_run))
}

func TestRunSkipsNamelessRows(t *testing.T) {
	rows := append([]ranking.Row{}, scenarioRows...)
	rows = append(rows, ranking.Row{Rank: "4", Time: "00:40.00"})
	h := New(&fakeSource{rows: rows}, newTestStore(t), &telemetry.Recorder{})

	report, err := h.Run(context.Background(), scenarioFilter())
	require.NoError(t, err)
	require.Equal(t, 4, report.Fetched)
	require.Equal(t, 1, report.Skipped)
	require.Equal(t, 3, report.Inserted)
}

type countingSink struct {
	drafts []normalize.Draft
}

func (s *countingSink) Add(ctx context.Context, drafts []normalize.Draft) (int, error) {
	s.drafts = append(s.drafts, drafts...)
	return len(drafts), nil
}

func TestWatch(t *testing.T) {
	source := &fakeSource{rows: scenarioRows}
	sink := &countingSink{}
	tel := &telemetry.Recorder{}
	h := New(source, sink, tel)

	clock := chrono.NewFakeClock(time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC))
	cron := &fakeCron{}
	jobs := []config.Job{
		{Stroke: "backstroke", Distance: "50", Gender: "female", Pool: "long", MinAge: 9, MaxAge: 9, LookbackDays: 365},
		{Stroke: "freestyle", Distance: "100", Gender: "male", Pool: "short", MinAge: 10, MaxAge: 12, Start: "2023-01-01", End: "2024-01-01"},
	}

	err := h.Watch(context.Background(), cron, clock, config.DefaultWatchCron, jobs)
	require.NoError(t, err)
	require.Equal(t, config.DefaultWatchCron, cron.spec)
	require.Empty(t, source.filters)

	cron.callback()
	require.Len(t, source.filters, 2)
	require.Equal(t, time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC), source.filters[0].Start)
	require.Equal(t, ranking.ShortCourse, source.filters[1].Pool)
	require.Len(t, sink.drafts, 6)
}

func TestWatchRejectsBadJobs(t *testing.T) {
	h := New(&fakeSource{}, &countingSink{}, &telemetry.Recorder{})
	clock := chrono.NewFakeClock(time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC))

	err := h.Watch(context.Background(), &fakeCron{}, clock, config.DefaultWatchCron, nil)
	require.Error(t, err)

	err = h.Watch(context.Background(), &fakeCron{}, clock, config.DefaultWatchCron, []config.Job{{Stroke: "doggy paddle"}})
	require.Error(t, err)
}
