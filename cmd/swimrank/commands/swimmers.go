package commands

import (
	"fmt"
	"swimrank-backend/internal/store"

	"github.com/spf13/cobra"
)

var swimmersJSON *bool

func init() {
	swimmersJSON = swimmersCmd.PersistentFlags().Bool("json", false, "Print JSON instead of a table.")

	swimmersCmd.AddCommand(swimmersListCmd)
	swimmersCmd.AddCommand(swimmersSearchCmd)
	swimmersCmd.AddCommand(swimmersSuggestCmd)
	swimmersCmd.AddCommand(swimmersSyncCmd)
	rootCmd.AddCommand(swimmersCmd)
}

var swimmersCmd = &cobra.Command{
	Use:   "swimmers",
	Short: "Lists, searches and syncs swimmer profiles.",
}

func printSwimmers(swimmers []store.Swimmer) error {
	if *swimmersJSON {
		return writeJSON(swimmers)
	}
	renderSwimmers(swimmers)
	return nil
}

var swimmersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every swimmer profile.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		swimmers, err := s.Swimmers(cmd.Context())
		if err != nil {
			return err
		}
		return printSwimmers(swimmers)
	},
}

var swimmersSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Finds swimmers whose name contains the query, closest first.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		swimmers, err := s.SearchSwimmers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printSwimmers(swimmers)
	},
}

var swimmersSuggestCmd = &cobra.Command{
	Use:   "suggest <name>",
	Short: "Lists swimmers with a name similar to the given one, to catch misspellings before an add.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		swimmers, err := s.SuggestSwimmers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printSwimmers(swimmers)
	},
}

var swimmersSyncCmd = &cobra.Command{
	Use:   "sync <swimmers.json | ->",
	Short: "Replaces the swimmer profiles with a JSON array, profiles missing from it are deleted.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var swimmers []store.Swimmer
		err := readJSON(args[0], &swimmers)
		if err != nil {
			return fmt.Errorf("read swimmers: %w", err)
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := s.SyncSwimmers(cmd.Context(), swimmers)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d, upserted %d, skipped %d\n", result.Deleted, result.Upserted, result.Skipped)
		return nil
	},
}
