// Package commands implements the CLI commands for the lathe build tool.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/lathe/internal/app"
	"go.trai.ch/lathe/internal/build"
	"go.trai.ch/lathe/internal/core/domain"
)

// CLI represents the command line interface for lathe.
type CLI struct {
	app     *app.App
	output  app.LogOutput
	rootCmd *cobra.Command
	getwd   func() (string, error)
}

// New creates a new CLI instance with the given app.
func New(a *app.App, output app.LogOutput) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lathe",
		Short:         "Incremental builds for Vala and C libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to lathe.yaml or lathe.hcl (default: search upwards)")
	rootCmd.PersistentFlags().String("platform", "", "Target platform, overriding the configuration")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log composed commands and up-to-date decisions")

	c := &CLI{
		app:     a,
		output:  output,
		rootCmd: rootCmd,
		getwd:   os.Getwd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		if verbose && c.output != nil {
			c.output.SetLevel(domain.LogLevelDebug)
		}
		return nil
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the destination of command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// SetWorkingDir fixes the directory configuration discovery starts from. Used for testing.
func (c *CLI) SetWorkingDir(dir string) {
	c.getwd = func() (string, error) { return dir, nil }
}

func (c *CLI) loadOptions(cmd *cobra.Command) (string, app.LoadOptions, error) {
	cwd, err := c.getwd()
	if err != nil {
		return "", app.LoadOptions{}, err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", app.LoadOptions{}, err
	}
	platform, err := cmd.Flags().GetString("platform")
	if err != nil {
		return "", app.LoadOptions{}, err
	}
	return cwd, app.LoadOptions{ConfigPath: configPath, Platform: platform}, nil
}
