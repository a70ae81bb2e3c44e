package config

import (
	"os"
	"path/filepath"
	"swimrank-backend/internal/ranking"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, DefaultDatabase, cfg.Database.File)
	require.Equal(t, SourceInteractive, cfg.Source.Kind)
	require.Equal(t, DefaultBaseUrl, cfg.Source.BaseUrl)
	require.True(t, *cfg.Source.Headless)
	require.Equal(t, 2000, cfg.Wait.ProbeTimeoutMs)
	require.Equal(t, 15000, cfg.Wait.SettleTimeoutMs)
	require.Equal(t, DefaultWatchCron, cfg.Watch.Cron)
}

func TestReadWithLocalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// shared settings
		source: { kind: "direct", rate_per_second: 1 },
		watch: { jobs: [{ stroke: "backstroke", distance: "50", gender: "female", pool: "long", min_age: 9, max_age: 9, lookback_days: 30 }] },
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		database: { url: "libsql://swimrank.example.turso.io", auth_token: "secret" },
	}`), 0644))

	cfg, err := Read(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, SourceDirect, cfg.Source.Kind)
	require.Equal(t, 1.0, cfg.Source.RatePerSecond)
	require.Equal(t, "libsql://swimrank.example.turso.io", cfg.Database.Url)
	require.Empty(t, cfg.Database.File)
	require.Len(t, cfg.Watch.Jobs, 1)
}

func TestReadRejectsUnknownSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{source: {kind: "carrier-pigeon"}}`), 0644))
	_, err := Read(filepath.Join(dir, "config.json5"))
	require.Error(t, err)
}

func TestReadRejectsBadCron(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{watch: {cron: "at dawn"}}`), 0644))
	_, err := Read(filepath.Join(dir, "config.json5"))
	require.ErrorContains(t, err, "watch")
}

func TestJobFilter(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		job   Job
		start time.Time
		end   time.Time
		fails bool
	}{
		{
			name:  "lookback",
			job:   Job{Stroke: "backstroke", Distance: "50 m", Gender: "female", Pool: "long", MinAge: 9, MaxAge: 9, LookbackDays: 10},
			start: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "absolute",
			job:   Job{Stroke: "3", Distance: "1", Gender: "2", Pool: "1", MinAge: 9, MaxAge: 10, Start: "2023-01-01", End: "2024-01-01"},
			start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "bad stroke",
			job:   Job{Stroke: "doggy paddle", Distance: "1", Gender: "2", Pool: "1", MinAge: 9, MaxAge: 9, LookbackDays: 1},
			fails: true,
		},
		{
			name:  "missing dates",
			job:   Job{Stroke: "3", Distance: "1", Gender: "2", Pool: "1", MinAge: 9, MaxAge: 9},
			fails: true,
		},
		{
			name:  "inverted ages",
			job:   Job{Stroke: "3", Distance: "1", Gender: "2", Pool: "1", MinAge: 12, MaxAge: 9, LookbackDays: 1},
			fails: true,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			filter, err := test.job.Filter(now)
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, ranking.Backstroke, filter.Stroke)
			require.Equal(t, ranking.Female, filter.Gender)
			require.True(t, test.start.Equal(filter.Start), filter.Start)
			require.True(t, test.end.Equal(filter.End), filter.End)
		})
	}
}
