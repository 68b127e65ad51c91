package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SimosManiatis/vitrify/internal/config"
)

// NewConfigInitCmd creates the config init command. It writes a starter
// vitrify.yaml with the model defaults and one illustrative IGU group.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultFileName
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}

			cmd.Printf("Wrote %s\n", path)
			cmd.Println("Edit the groups section to describe your batch, then run `vitrify compare`.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
