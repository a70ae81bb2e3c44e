package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"swimrank-backend/internal/store"

	"github.com/spf13/cobra"
)

var addEntry store.ManualEntry

func init() {
	flags := addCmd.Flags()
	flags.StringVar(&addEntry.Name, "name", "", "Swimmer name. (required)")
	flags.StringVar(&addEntry.Gender, "gender", "", "Gender, only used when the swimmer is new.")
	flags.StringVar(&addEntry.Club, "club", "", "Club.")
	flags.StringVar(&addEntry.School, "school", "", "School, only used when the swimmer is new.")
	flags.StringVar(&addEntry.Age, "age", "", "Age or age group, e.g. 12 or 11-12.")
	flags.StringVar(&addEntry.Stroke, "stroke", "", "Stroke. (required)")
	flags.StringVar(&addEntry.Distance, "distance", "", "Distance, e.g. \"50 m\". (required)")
	flags.StringVar(&addEntry.Time, "time", "", "Swim time, e.g. 00:35.10. (required)")
	flags.StringVar(&addEntry.Competition, "competition", "", "Competition name. (required)")
	flags.StringVar(&addEntry.CompetitionDate, "date", "", "Competition date, taken from an earlier record of the competition when omitted.")
	flags.StringVar(&addEntry.Nationality, "nationality", "", "Nationality.")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add --name <name> --stroke <s> --distance <d> --time <t> --competition <c> [--date <date>]",
	Short: "Stores a single manually entered record.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		if addEntry.CompetitionDate == "" && addEntry.Competition != "" {
			date, found, err := s.GetCompetitionDate(cmd.Context(), addEntry.Competition)
			if err != nil {
				return err
			}
			if found {
				slog.Info("using stored competition date", "competition", addEntry.Competition, "date", date)
				addEntry.CompetitionDate = date
			}
		}

		created, err := s.AddSingle(cmd.Context(), addEntry)
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			for _, field := range verr.Missing {
				fmt.Printf("missing: %s\n", field)
			}
			return err
		}
		if err != nil {
			return err
		}
		if !created {
			fmt.Println("record already exists")
			return nil
		}
		fmt.Println("record added")
		return nil
	},
}
