// Package shell provides the action executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor. Commands run as argument vectors through os/exec,
// filesystem actions run in-process.
type Executor struct {
	logger   ports.Logger
	flags    ports.PackageFlagResolver
	resolver ports.GlobResolver
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, flags ports.PackageFlagResolver, resolver ports.GlobResolver) *Executor {
	return &Executor{
		logger:   logger,
		flags:    flags,
		resolver: resolver,
	}
}

// Execute runs every action of the task in order from root.
// The first failing action stops the task.
func (e *Executor) Execute(ctx context.Context, root string, task *domain.Task, stdout, stderr io.Writer) error {
	for _, action := range task.Actions {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch action.Kind() {
		case domain.ActionExec:
			err = e.run(ctx, root, action.Command(), stdout, stderr)
		case domain.ActionMakeDir:
			e.logger.Debug(action.String())
			err = makeDir(root, action.Path())
		case domain.ActionCopyInto:
			e.logger.Debug(action.String())
			err = copyInto(root, action.Path(), action.Target())
		case domain.ActionSymlink:
			e.logger.Debug(action.String())
			err = symlink(root, action.Target(), action.Path())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) run(ctx context.Context, root string, command domain.Command, stdout, stderr io.Writer) error {
	argv, err := command.Argv(func(f domain.Fragment) ([]string, error) {
		return e.expand(ctx, root, f)
	})
	if err != nil {
		return err
	}

	e.logger.Info(command.String())

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // Commands are composed from the project configuration
	cmd.Dir = root

	outLog := &logWriter{log: e.logger.Info}
	errLog := &logWriter{log: e.logger.Warn}
	cmd.Stdout = io.MultiWriter(outLog, stdout)
	cmd.Stderr = io.MultiWriter(errLog, stderr)

	runErr := cmd.Run()
	outLog.Flush()
	errLog.Flush()

	if runErr != nil {
		exitCode := -1 // Unknown or signal
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err := zerr.With(zerr.Wrap(runErr, "command failed"), "exit_code", exitCode)
		return zerr.With(err, "command", argv[0])
	}

	return nil
}

// expand resolves the fragments whose value is only known at execution time.
func (e *Executor) expand(ctx context.Context, root string, f domain.Fragment) ([]string, error) {
	switch f.Kind() {
	case domain.FragmentPackageFlags:
		var out []string
		for _, pkg := range f.Packages() {
			flags, err := e.flags.Resolve(ctx, pkg)
			if err != nil {
				return nil, err
			}
			out = append(out, flags...)
		}
		return out, nil
	case domain.FragmentGlob:
		return e.resolver.ResolveGlob(f.Pattern(), root)
	default:
		return nil, nil
	}
}

func makeDir(root, dir string) error {
	path := domain.ResolvePath(root, dir)
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMkdirFailed.Error()), "path", path)
	}
	return nil
}

// copyInto copies src into dir unless the copy already exists and is not older than src.
func copyInto(root, src, dir string) error {
	srcPath := domain.ResolvePath(root, src)
	dstPath := filepath.Join(domain.ResolvePath(root, dir), filepath.Base(src))

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "src", srcPath)
	}
	if dstInfo, err := os.Stat(dstPath); err == nil && !dstInfo.ModTime().Before(srcInfo.ModTime()) {
		return nil
	}

	in, err := os.Open(srcPath) //nolint:gosec // Source paths come from discovery
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "src", srcPath)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dstPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, srcInfo.Mode().Perm()) //nolint:gosec // Destination is inside the build root
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "dst", dstPath)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "dst", dstPath)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "dst", dstPath)
	}
	return nil
}

// symlink replaces link with a symbolic link to target. target is stored as given.
func symlink(root, target, link string) error {
	path := domain.ResolvePath(root, link)
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSymlinkFailed.Error()), "link", path)
		}
	}
	if err := os.Symlink(target, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSymlinkFailed.Error()), "link", path)
	}
	return nil
}
