package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints how many swimmers and records are stored.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		swimmers, records, err := s.Counts(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("swimmers: %d\nrecords: %d\n", swimmers, records)
		return nil
	},
}
