// Package cli implements the scout command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/scout/internal/config"
	"github.com/rileyhilliard/scout/internal/errors"
)

// Global flags shared by all commands.
var (
	configFlag  string
	jsonFlag    bool
	noCacheFlag bool
)

// rootCmd is the base command for scout.
var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Find the least-loaded machine in your fleet",
	Long: `scout polls a fleet of SSH-reachable hosts for CPU, memory, load,
and GPU utilization, and picks the best machine for your next job.

Hosts are defined in servers.yaml. Results are cached briefly so repeated
queries don't hammer the fleet; use --no-cache to force fresh probes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to servers.yaml")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "skip the snapshot cache and probe fresh")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if jsonFlag {
			_ = WriteJSONFromError(os.Stdout, err)
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}

// loadConfig finds, loads, and validates the configuration.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'scout init' to create a starter servers.yaml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
