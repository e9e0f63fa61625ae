package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nomsim/internal/config"
	"github.com/katalvlaran/nomsim/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nomsim",
		Short: "Simulate correlated nominal responses",
		Long: `nomsim simulates clustered nominal responses whose marginal
distributions follow a baseline-category logit model, with latent utilities
correlated across occasions through NORTA.

The simulation is described by a YAML file (see --config).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Simulation config file (YAML)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newValidateCmd(),
	)

	return rootCmd
}

// loadConfig reads --config, applies env and flag overrides and validates.
// It returns the config, the directory relative paths resolve against, and
// a logger writing to the command's stderr.
func loadConfig(cmd *cobra.Command) (*config.SimConfig, string, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil, "", nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err = cfg.Validate(); err != nil {
		return nil, "", nil, err
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	return cfg, filepath.Dir(path), logger, nil
}
