// Package cli implements the hubscan command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hubscan/internal/config"
	"hubscan/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hubscan",
	Short: "Inventory the local Hugging Face model cache",
	Long: `hubscan inventories locally cached Hugging Face models, groups them
by publishing organization, and reports per-model and per-organization
disk usage on the console or in a small web UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $HUBSCAN_HOME/config.toml)")
}

// loadConfig reads the configuration and installs the logger. Called by
// each subcommand rather than a PersistentPreRun so that --help never
// touches the filesystem.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	logging.Setup(cfg.Logging.Format, cfg.Logging.Level)
	return cfg, nil
}

// Execute runs the root command. Called from main.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
