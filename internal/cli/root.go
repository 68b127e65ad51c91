// Package cli implements the vitrify command tree: batch assessment,
// scenario comparison, the full-chain breakdown and config management.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/config"
	"github.com/SimosManiatis/vitrify/internal/tui"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return tui.IsTTY(f)
}

// NewRootCmd creates the root Cobra command for the vitrify CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vitrify",
		Short:   "Life-cycle GHG estimator for IGU end-of-life recovery",
		Long: "Vitrify estimates greenhouse-gas emissions for end-of-life recovery\n" +
			"pathways of insulated glazing units: system reuse, component reuse,\n" +
			"repurposing, and closed- and open-loop recycling.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "path to vitrify.yaml (default: ./"+config.DefaultFileName+")")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-format", "", "log format: console or json (overrides config)")
	cmd.PersistentFlags().String("log-file", "", "log file path (overrides config)")
	cmd.PersistentFlags().Bool("json", false, "emit machine-readable JSON instead of tables")

	cmd.AddCommand(newAssessCmd(), newCompareCmd(), newChainCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Write a starter configuration
  vitrify config init

  # Validate a configuration file
  vitrify config validate --config site.yaml

  # Run one recovery scenario
  vitrify assess system-reuse --destination "52.37,4.90" --repair

  # Compare all five scenarios
  vitrify compare --destination Amsterdam

  # Browse the comparison interactively
  vitrify compare --destination Amsterdam --interactive

  # Project-level full-chain breakdown
  vitrify chain --level component`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}

// loadConfig reads the config named by --config, or the default file name in
// the working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFileName
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w (run `vitrify config init` to create one)", err)
	}
	return cfg, nil
}
