package commands

import (
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.trai.ch/lathe/internal/app"
	"go.trai.ch/lathe/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Build the given tasks or modules, or everything",
		Long: "Build runs every out-of-date task needed by the targets. A target is a task name " +
			"such as \"libxmlbird.compile:xmlbird.o\" or a module directory. Without targets everything is built.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, load, err := c.loadOptions(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			jobs, _ := cmd.Flags().GetInt("jobs")
			progress, _ := cmd.Flags().GetBool("progress")
			return c.app.Build(cmd.Context(), cwd, app.BuildOptions{
				LoadOptions: load,
				Targets:     args,
				Force:       force,
				Jobs:        jobs,
				Progress:    progress,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Run every selected task, ignoring recorded state")
	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "Number of tasks to run in parallel")
	cmd.Flags().Bool("progress", false, "Write every task update to "+filepath.Join("<build>", domain.StateDirName, domain.ProgressName))
	return cmd
}
