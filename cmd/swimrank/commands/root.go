package commands

import (
	"context"
	"fmt"
	"os"
	"swimrank-backend/internal/config"
	"swimrank-backend/internal/store"
	"swimrank-backend/internal/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	logJSON    *bool

	cfg config.Config
	tel telemetry.API = telemetry.SlogAPI{}
)

var rootCmd = &cobra.Command{
	Use:   "swimrank",
	Short: "swimrank acquires swimming rankings and keeps a deduplicated record of them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose, *logJSON)

		var err error
		cfg, err = config.Read(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "Path to the configuration file.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output.")
	logJSON = rootCmd.PersistentFlags().Bool("log-json", false, "Log JSON lines instead of text.")
}

func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, cfg.Database, tel)
	if err != nil {
		return store.Store{}, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// ExecuteContext runs the command line, the error has already been printed.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}
