package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Save it to ~/.arcade/configs/defense.yaml (or pass --config) to override values.

Examples:
  defense config > ~/.arcade/configs/defense.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		//nolint:errcheck // stdout
		os.Stdout.Write(config.GetDefaultYAML())
	},
}
