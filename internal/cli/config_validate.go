package cli

import (
	"github.com/spf13/cobra"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long: "Validate checks the configuration file for schema version compatibility\n" +
			"and for values the emission model cannot run with, reporting every\n" +
			"problem in one pass.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cmd.Printf("Configuration is valid (schema %s, %d IGU group(s))\n",
				cfg.SchemaVersion, len(cfg.Groups))
			return nil
		},
	}

	return cmd
}
