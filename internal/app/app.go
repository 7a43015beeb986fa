// Package app implements the application layer for lathe.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"slices"
	"time"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/lathe/internal/engine/planner"
	"go.trai.ch/lathe/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	planner      *planner.Planner
	scheduler    *scheduler.Scheduler
	stores       ports.StoreOpener
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	plan *planner.Planner,
	sched *scheduler.Scheduler,
	stores ports.StoreOpener,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		planner:      plan,
		scheduler:    sched,
		stores:       stores,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// LoadOptions select and adjust the project configuration.
type LoadOptions struct {
	// ConfigPath is an explicit configuration file. Empty searches from the working directory.
	ConfigPath string
	// Platform overrides the configured platform when not empty.
	Platform string
}

// BuildOptions configure a build.
type BuildOptions struct {
	LoadOptions
	Targets []string
	Force   bool
	Jobs    int
	// Progress records every task update in the progress journal under the build root.
	Progress bool
}

// ListOptions configure the task listing.
type ListOptions struct {
	LoadOptions
	// Deps also prints every file_dep of each task.
	Deps bool
}

// Load reads the project from cwd and plans its task graph.
func (a *App) Load(cwd string, opts LoadOptions) (*domain.Project, *domain.Graph, error) {
	project, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Platform != "" {
		project.Platform = opts.Platform
	}

	graph, err := a.planner.Plan(project)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to plan build")
	}
	return project, graph, nil
}

// Build runs the selected targets and everything they depend on.
func (a *App) Build(ctx context.Context, cwd string, opts BuildOptions) error {
	project, graph, err := a.Load(cwd, opts.LoadOptions)
	if err != nil {
		return err
	}

	store, err := a.stores.Open(buildRoot(project), project.State)
	if err != nil {
		return zerr.Wrap(err, "failed to open build state")
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Warn(fmt.Sprintf("failed to close build state: %v", closeErr))
		}
	}()

	if opts.Progress {
		if err := a.openJournal(buildRoot(project)); err != nil {
			return err
		}
	}

	runErr := a.scheduler.Run(ctx, graph, store, scheduler.Options{
		Targets: opts.Targets,
		Jobs:    opts.Jobs,
		Force:   opts.Force,
	})

	counts := a.scheduler.Counts()
	summary := a.telemetry.Summary()
	a.logger.Info(fmt.Sprintf("%d built, %d up to date, %d failed in %s",
		counts[scheduler.StatusCompleted], counts[scheduler.StatusCached], counts[scheduler.StatusFailed],
		summary.Duration.Round(time.Millisecond)))

	if runErr != nil {
		return zerr.Wrap(runErr, domain.ErrBuildExecutionFailed.Error())
	}
	return nil
}

func (a *App) openJournal(root string) error {
	dir := domain.StatePath(root)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMkdirFailed.Error()), "path", dir)
	}
	path := domain.ProgressPath(root)
	if err := a.telemetry.Journal(path); err != nil {
		return err
	}
	a.logger.Debug("writing progress journal to " + path)
	return nil
}

// List writes every task in execution order with its stage.
func (a *App) List(cwd string, opts ListOptions, w io.Writer) error {
	_, graph, err := a.Load(cwd, opts.LoadOptions)
	if err != nil {
		return err
	}

	for task := range graph.Walk() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", task.Name, task.Stage); err != nil {
			return err
		}
		if !opts.Deps {
			continue
		}
		for _, dep := range task.Inputs {
			if _, err := fmt.Fprintf(w, "\t<- %s\n", dep); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clean removes every declared target and the build state. It returns the removed paths.
func (a *App) Clean(cwd string, opts LoadOptions) ([]string, error) {
	project, graph, err := a.Load(cwd, opts)
	if err != nil {
		return nil, err
	}

	var targets []string
	for task := range graph.Walk() {
		targets = append(targets, domain.Strings(task.Outputs)...)
	}
	// Dependents first, so links go before the files they point at.
	slices.Reverse(targets)

	var removed []string
	for _, target := range targets {
		path := domain.ResolvePath(project.Root, target)
		if err := os.Remove(path); err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return removed, zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()), "file", path)
		}
		removed = append(removed, target)
	}

	statePath := domain.StatePath(buildRoot(project))
	if _, err := os.Stat(statePath); err == nil {
		if err := os.RemoveAll(statePath); err != nil {
			return removed, zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()), "file", statePath)
		}
		removed = append(removed, statePath)
	}

	a.logger.Info(fmt.Sprintf("removed %d paths", len(removed)))
	return removed, nil
}

// Close flushes the telemetry of the session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func buildRoot(project *domain.Project) string {
	return domain.ResolvePath(project.Root, project.BuildDir)
}
