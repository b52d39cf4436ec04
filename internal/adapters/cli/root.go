package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/devbush/social2csv/internal/config"
	"github.com/devbush/social2csv/internal/domain"
	"github.com/devbush/social2csv/internal/logging"
)

var (
	configFlag   string
	importerFlag string
	envFileFlag  string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "social2csv",
		Short: "Import social account metrics to CSV/Postgres sinks",
		Long: `social2csv pulls the tracked accounts for a platform from the
database, fetches their profile and content metrics from the platform's
API, and appends the normalized records to the configured sinks.

A completed run exits 0 even when individual accounts partially failed;
only startup failures (config, database, unknown importer) exit non-zero.`,
		Args:         cobra.NoArgs,
		RunE:         runRoot,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "config.yaml", "Path to the config file")
	rootCmd.Flags().StringVar(&importerFlag, "importer", "", "Platform importer to run (overrides config)")
	rootCmd.Flags().StringVar(&envFileFlag, "env-file", "", "Env file with credentials (default: .env when present)")

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if envFileFlag != "" {
		if err := godotenv.Load(envFileFlag); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		// Best effort; credentials may come from the environment itself.
		_ = godotenv.Load()
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	if importerFlag != "" {
		cfg.Importer = importerFlag
	}

	platform, err := domain.ParsePlatform(cfg.Importer)
	if err != nil {
		return err
	}

	log := logging.New("social2csv")

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	runner, err := app.Registry.Lookup(platform)
	if err != nil {
		return err
	}

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d accounts, %d profiles, %d content rows, %d errors (%s)\n",
		summary.RunID, summary.Accounts, summary.ProfilesWritten,
		summary.ContentRows, summary.Errors, summary.Duration.Round(time.Millisecond))

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
