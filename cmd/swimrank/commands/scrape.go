package commands

import (
	"fmt"
	"log/slog"
	"swimrank-backend/internal/chrono"
	"swimrank-backend/internal/config"
	"swimrank-backend/internal/harvest"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/ranking/sources"
	"time"

	"github.com/spf13/cobra"
)

var scrapeFlags struct {
	stroke   *string
	distance *string
	gender   *string
	pool     *string
	minAge   *int
	maxAge   *int
	start    *string
	end      *string
	source   *string
	dryRun   *bool
}

func init() {
	flags := scrapeCmd.Flags()
	scrapeFlags.stroke = flags.String("stroke", "freestyle", "Stroke name or id.")
	scrapeFlags.distance = flags.String("distance", "50", "Distance, e.g. 50, \"100 m\" or the remote id.")
	scrapeFlags.gender = flags.String("gender", "male", "male or female.")
	scrapeFlags.pool = flags.String("pool", "long", "long or short course.")
	scrapeFlags.minAge = flags.Int("min-age", 0, "Lower bound of the age group.")
	scrapeFlags.maxAge = flags.Int("max-age", 0, "Upper bound of the age group, defaults to --min-age.")
	scrapeFlags.start = flags.String("start", "", "First competition date, YYYY-MM-DD. Defaults to a year before --end.")
	scrapeFlags.end = flags.String("end", "", "Last competition date, YYYY-MM-DD. Defaults to today.")
	scrapeFlags.source = flags.String("source", "", "Override the configured source (interactive or direct).")
	scrapeFlags.dryRun = flags.Bool("dry-run", false, "Print the rows instead of storing them.")
	rootCmd.AddCommand(scrapeCmd)
}

func scrapeFilter(now time.Time) (ranking.Filter, error) {
	maxAge := *scrapeFlags.maxAge
	if maxAge == 0 {
		maxAge = *scrapeFlags.minAge
	}
	job := config.Job{
		Stroke:   *scrapeFlags.stroke,
		Distance: *scrapeFlags.distance,
		Gender:   *scrapeFlags.gender,
		Pool:     *scrapeFlags.pool,
		MinAge:   *scrapeFlags.minAge,
		MaxAge:   maxAge,
		Start:    *scrapeFlags.start,
		End:      *scrapeFlags.end,
	}
	if job.End == "" {
		job.End = now.Format(time.DateOnly)
	}
	if job.Start == "" {
		end, err := time.Parse(time.DateOnly, job.End)
		if err != nil {
			return ranking.Filter{}, fmt.Errorf("end: %w", err)
		}
		job.Start = end.AddDate(-1, 0, 0).Format(time.DateOnly)
	}
	return job.Filter(now)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--stroke <name>] [--distance <m>] [--gender <g>] [--pool <long|short>] [--min-age <n>] [--max-age <n>]",
	Short: "Acquires one ranking query and stores the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		clock, err := chrono.NewStandardImpl()
		if err != nil {
			return err
		}
		filter, err := scrapeFilter(clock.Now())
		if err != nil {
			return err
		}

		if *scrapeFlags.source != "" {
			cfg.Source.Kind = *scrapeFlags.source
			err = cfg.Validate()
			if err != nil {
				return err
			}
		}
		source, err := sources.New(cfg, clock, tel)
		if err != nil {
			return err
		}
		defer source.Close()

		slog.Info("scraping", "filter", filter.String(), "source", cfg.Source.Kind)

		if *scrapeFlags.dryRun {
			outcome, err := source.Scrape(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if outcome.Empty() {
				fmt.Println("no rows matched")
				return nil
			}
			renderRows(ranking.Annotate(outcome.Rows, filter))
			return nil
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := harvest.New(source, s, tel).Run(cmd.Context(), filter)
		if err != nil {
			return err
		}
		fmt.Println(report.String())
		return nil
	},
}
