package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"countries/internal/platform/config"
	"countries/internal/platform/logger"
	"countries/internal/storage"
)

var (
	verbose  bool
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "countryctl",
	Short: "Manage country records outside the API",
	Long: `countryctl seeds and inspects the record store used by the country API.
It reads the same environment configuration as the server.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Additional .env files to load")
	rootCmd.AddCommand(seedCmd, listCmd)
}

// openStore loads configuration and opens the configured backend.
func openStore(ctx context.Context) (*storage.Handle, *slog.Logger, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log := logger.NewWithWriter(os.Stderr, cfg.Log)
	h, err := storage.Open(ctx, cfg.Store, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return h, log, nil
}
