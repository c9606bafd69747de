package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stylekit/internal/config"
	"stylekit/internal/diag"
)

// loadConfig reads --config or discovers the nearest configuration file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	return config.Discover(wd)
}

// applyOverrides lets command flags win over the configuration file.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := flags.GetString("mode")
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if flags.Changed("support") {
		support, err := flags.GetStringSlice("support")
		if err != nil {
			return err
		}
		cfg.Support = support
	}
	if flags.Changed("no-prefix") {
		off, err := flags.GetBool("no-prefix")
		if err != nil {
			return err
		}
		cfg.Prefixer.Enabled = !off
	}
	if flags.Changed("selector-depth") {
		depth, err := flags.GetInt("selector-depth")
		if err != nil {
			return err
		}
		cfg.Validators.SelectorDepth = depth
	}
	if failOn, err := flags.GetString("fail-on"); err == nil {
		if _, err := diag.ParseSeverity(failOn); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func addProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", "output mode (verbose|inline|compressed)")
	cmd.Flags().StringSlice("support", nil, "supported browsers, e.g. \"chrome last 2\" (repeatable)")
	cmd.Flags().Bool("no-prefix", false, "disable vendor prefixing")
	cmd.Flags().Int("selector-depth", 0, "fail on selectors with more parts than this (0 disables)")
	cmd.Flags().String("fail-on", "error", "lowest severity that fails the run (info|warning|error)")
}
