package commands

import (
	"fmt"
	"swimrank-backend/internal/schools"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var schoolsFile *string

func init() {
	schoolsFile = schoolsRefreshCmd.Flags().String("file", "", "Schools list, defaults to the configured schools_file.")

	schoolsCmd.AddCommand(schoolsRefreshCmd)
	schoolsCmd.AddCommand(schoolsListCmd)
	rootCmd.AddCommand(schoolsCmd)
}

var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "Manages the reference list of schools.",
}

var schoolsRefreshCmd = &cobra.Command{
	Use:   "refresh [--file <path>]",
	Short: "Replaces the stored schools with the contents of the schools file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.SchoolsFile
		if *schoolsFile != "" {
			path = *schoolsFile
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		count, err := schools.Refresh(cmd.Context(), s, path)
		if err != nil {
			return err
		}
		fmt.Printf("loaded %d schools from %s\n", count, path)
		return nil
	},
}

var schoolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the stored schools.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.Schools(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Thai", "English", "Participating"})
		for _, school := range list {
			t.AppendRow(table.Row{school.Name, school.ThaiAbbrev, school.EngAbbrev, school.Participating})
		}
		t.Render()
		return nil
	},
}
