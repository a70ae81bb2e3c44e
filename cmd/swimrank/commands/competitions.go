package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	competitionsCmd.AddCommand(competitionsSearchCmd)
	rootCmd.AddCommand(competitionsCmd)
}

var competitionsCmd = &cobra.Command{
	Use:   "competitions",
	Short: "Looks up stored competitions.",
}

var competitionsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Lists competitions whose name contains the query, with their date.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		names, err := s.SearchCompetitions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, name := range names {
			date, _, err := s.GetCompetitionDate(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", date, name)
		}
		return nil
	},
}
