package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathgrid/pkg/config"
)

// configCommand creates the config command that prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The output merges the config file (--config, or ~/.config/pathgrid/config.toml
when present) over the built-in defaults and can be saved as a starting point:

  pathgrid config > ~/.config/pathgrid/config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showPath {
				_, used, err := config.Resolve(c.configPath)
				if err != nil {
					return err
				}
				if used == "" {
					def, err := config.DefaultPath()
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(out, "%s (not found, using defaults)\n", def)
					return err
				}
				_, err = fmt.Fprintln(out, used)
				return err
			}

			cfg, err := c.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			return cfg.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file location instead")

	return cmd
}
