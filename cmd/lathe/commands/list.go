package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lathe/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every task in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, load, err := c.loadOptions(cmd)
			if err != nil {
				return err
			}
			deps, _ := cmd.Flags().GetBool("deps")
			return c.app.List(cwd, app.ListOptions{LoadOptions: load, Deps: deps}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("deps", false, "Also print the file dependencies of each task")
	return cmd
}
