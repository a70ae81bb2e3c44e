package commands

import (
	"fmt"
	"swimrank-backend/internal/store"
	"time"

	"github.com/spf13/cobra"
)

var recordsFlags struct {
	swimmer  *string
	stroke   *string
	distance *string
	gender   *string
	minAge   *int
	maxAge   *int
	start    *string
	end      *string
	json     *bool
}

func init() {
	flags := recordsListCmd.Flags()
	recordsFlags.swimmer = flags.String("swimmer", "", "Exact swimmer name.")
	recordsFlags.stroke = flags.String("stroke", "", "Stroke as stored, e.g. Backstroke.")
	recordsFlags.distance = flags.String("distance", "", "Distance as stored, e.g. \"50 m\".")
	recordsFlags.gender = flags.String("gender", "", "Gender of the linked swimmer.")
	recordsFlags.minAge = flags.Int("min-age", -1, "Only records whose age group reaches this age.")
	recordsFlags.maxAge = flags.Int("max-age", -1, "Only records whose age group starts at or below this age.")
	recordsFlags.start = flags.String("start", "", "Earliest competition date, YYYY-MM-DD.")
	recordsFlags.end = flags.String("end", "", "Latest competition date, YYYY-MM-DD.")
	recordsFlags.json = flags.Bool("json", false, "Print JSON instead of a table.")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsEditCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Lists and edits stored records.",
}

func recordQuery() (store.RecordQuery, error) {
	query := store.RecordQuery{
		Swimmer:  *recordsFlags.swimmer,
		Stroke:   *recordsFlags.stroke,
		Distance: *recordsFlags.distance,
		Gender:   *recordsFlags.gender,
	}
	if *recordsFlags.minAge >= 0 {
		query.MinAge = recordsFlags.minAge
	}
	if *recordsFlags.maxAge >= 0 {
		query.MaxAge = recordsFlags.maxAge
	}
	var err error
	if *recordsFlags.start != "" {
		query.Start, err = time.Parse(time.DateOnly, *recordsFlags.start)
		if err != nil {
			return store.RecordQuery{}, fmt.Errorf("start: %w", err)
		}
	}
	if *recordsFlags.end != "" {
		query.End, err = time.Parse(time.DateOnly, *recordsFlags.end)
		if err != nil {
			return store.RecordQuery{}, fmt.Errorf("end: %w", err)
		}
	}
	return query, nil
}

var recordsListCmd = &cobra.Command{
	Use:   "list [--swimmer <name>] [--stroke <s>] [--distance <d>] [--start <date>] [--end <date>]",
	Short: "Lists stored records with the profile of their swimmer.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := recordQuery()
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.Records(cmd.Context(), query)
		if err != nil {
			return err
		}
		if *recordsFlags.json {
			return writeJSON(records)
		}
		renderRecords(records)
		return nil
	},
}

var recordsEditCmd = &cobra.Command{
	Use:   "edit <edits.json | ->",
	Short: "Applies a JSON array of record edits, records are never deleted by an edit.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var edits []store.RecordEdit
		err := readJSON(args[0], &edits)
		if err != nil {
			return fmt.Errorf("read edits: %w", err)
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		updated, err := s.SyncRecords(cmd.Context(), edits)
		if err != nil {
			return err
		}
		fmt.Printf("updated %d of %d records\n", updated, len(edits))
		return nil
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Deletes records by id.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		deleted, err := s.DeleteRecords(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d records\n", deleted)
		return nil
	},
}
