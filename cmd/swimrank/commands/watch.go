package commands

import (
	"log/slog"
	"swimrank-backend/internal/chrono"
	"swimrank-backend/internal/harvest"
	"swimrank-backend/internal/ranking/sources"
	"swimrank-backend/internal/telemetry"
	"time"

	"github.com/spf13/cobra"
)

var watchRunNow *bool

func init() {
	watchRunNow = watchCmd.Flags().Bool("now", false, "Run every job once before waiting for the schedule.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--now]",
	Short: "Runs the configured jobs on the configured cron schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		clock, err := chrono.NewStandardImpl()
		if err != nil {
			return err
		}
		source, err := sources.New(cfg, clock, tel)
		if err != nil {
			return err
		}
		defer source.Close()

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		telemetry.InstrumentPerfStats(ctx, time.Minute)

		harvester := harvest.New(source, s, tel)
		if *watchRunNow {
			reports, err := harvester.RunJobs(ctx, cfg.Watch.Jobs, clock.Now())
			for _, report := range reports {
				slog.Info("harvested", "report", report.String())
			}
			if err != nil {
				slog.Warn("some jobs failed", "err", err)
			}
		}

		cron := chrono.NewStandardCron(tel, clock.Location())
		defer cron.Stop()

		err = harvester.Watch(ctx, cron, clock, cfg.Watch.Cron, cfg.Watch.Jobs)
		if err != nil {
			return err
		}
		next, err := chrono.NextRun(cfg.Watch.Cron, clock.Now())
		if err != nil {
			return err
		}
		slog.Info("watching", "cron", cfg.Watch.Cron, "jobs", len(cfg.Watch.Jobs), "next", next)

		<-ctx.Done()
		slog.Info("stopping, waiting for running jobs")
		return nil
	},
}
