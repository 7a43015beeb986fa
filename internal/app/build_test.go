package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lathe/internal/adapters/cas"
	"go.trai.ch/lathe/internal/adapters/fs"
	"go.trai.ch/lathe/internal/adapters/logger"
	"go.trai.ch/lathe/internal/adapters/pkgconfig"
	"go.trai.ch/lathe/internal/adapters/shell"
	"go.trai.ch/lathe/internal/adapters/telemetry"
	"go.trai.ch/lathe/internal/adapters/telemetry/progrock"
	"go.trai.ch/lathe/internal/app"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/lathe/internal/core/ports/mocks"
	"go.trai.ch/lathe/internal/engine/planner"
	"go.trai.ch/lathe/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

// fakeCC creates the output named after -o for every invocation.
const fakeCC = `#!/bin/sh
while [ $# -gt 0 ]; do
	if [ "$1" = "-o" ]; then
		shift
		: > "$1"
	fi
	shift
done
`

type liveBuild struct {
	root string
	log  *bytes.Buffer
	app  *app.App
}

// newLiveBuild wires the real adapters around a mocked configuration loader.
// The toolchain is a shell script, so nothing but sh is needed on the host.
func newLiveBuild(t *testing.T, buildDir string, packages []string, query pkgconfig.QueryFunc, tel ports.Telemetry) *liveBuild {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "a.c"), "int a(void) { return 1; }\n")
	writeFile(t, filepath.Join(root, "lib", "a.h"), "int a(void);\n")
	writeFile(t, filepath.Join(root, "tool", "main.c"), "int main(void) { return 0; }\n")

	cc := filepath.Join(t.TempDir(), "cc")
	require.NoError(t, os.WriteFile(cc, []byte(fakeCC), 0o700)) //nolint:gosec // The script must be executable

	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(root, "").Return(&domain.Project{
		Root:      root,
		BuildDir:  buildDir,
		Platform:  "linux",
		Toolchain: domain.Toolchain{Translator: "valac", CC: cc},
		State:     domain.StateBackendJSON,
		Modules: []domain.ModuleSpec{
			{Dir: "lib", Library: "a", Version: "1.0.0", Packages: packages},
			{Dir: "tool", DependsOn: []string{"lib"}},
		},
	}, nil).AnyTimes()

	executor := shell.NewExecutor(log, pkgconfig.New(query), fs.NewResolver())
	sched := scheduler.NewScheduler(executor, fs.NewHasher(fs.NewWalker()), fs.NewVerifier(), tel, log)
	a := app.New(loader, planner.New(fs.NewWalker()), sched, cas.NewOpener(), tel, log)

	return &liveBuild{root: root, log: &buf, app: a}
}

func noPackages(context.Context, string) ([]byte, error) {
	return nil, errors.New("no package queries expected")
}

func TestApp_Build_AbsoluteBuildDir(t *testing.T) {
	out := t.TempDir()
	b := newLiveBuild(t, out, nil, noPackages, telemetry.NewNoOp())

	require.NoError(t, b.app.Build(context.Background(), b.root, app.BuildOptions{Jobs: 2}))

	assert.FileExists(t, filepath.Join(out, "lib", "a.c"))
	assert.FileExists(t, filepath.Join(out, "lib", "a.o"))
	assert.FileExists(t, filepath.Join(out, "lib.so.1.0.0"))
	assert.FileExists(t, filepath.Join(out, "bin", "tool"))
	link, err := os.Readlink(filepath.Join(out, "lib.so"))
	require.NoError(t, err)
	assert.Equal(t, "lib.so.1.0.0", link)
	assert.DirExists(t, domain.StorePath(out))

	entries, err := os.ReadDir(b.root)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"lib", "tool"}, names, "nothing may be written below the project root")

	// Only the three copy tasks have no file_dep and run again.
	b.log.Reset()
	require.NoError(t, b.app.Build(context.Background(), b.root, app.BuildOptions{Jobs: 2}))
	assert.Contains(t, b.log.String(), "3 built, 5 up to date, 0 failed")
}

func TestApp_Build_MissingPackageIsReported(t *testing.T) {
	query := func(context.Context, string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}
	b := newLiveBuild(t, "build", []string{"no-such-pkg-xyz"}, query, telemetry.NewNoOp())

	err := b.app.Build(context.Background(), b.root, app.BuildOptions{Jobs: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Contains(t, err.Error(), "no-such-pkg-xyz")

	logged := b.log.String()
	assert.Contains(t, logged, "library not found: no-such-pkg-xyz")
	assert.Contains(t, logged, "package=no-such-pkg-xyz")
	assert.Contains(t, logged, "task=lib.compile:a.o")
}

func TestApp_Build_ProgressJournal(t *testing.T) {
	rec := progrock.New()
	b := newLiveBuild(t, "build", nil, noPackages, rec)

	require.NoError(t, b.app.Build(context.Background(), b.root, app.BuildOptions{Jobs: 2, Progress: true}))
	require.NoError(t, b.app.Close())

	journal, err := os.ReadFile(domain.ProgressPath(filepath.Join(b.root, "build")))
	require.NoError(t, err)
	assert.Contains(t, string(journal), `"name":"lib.compile:a.o"`)
	assert.Contains(t, string(journal), `"name":"tool.bin:bin"`)

	summary := rec.Summary()
	assert.Equal(t, summary.Total, summary.Built)
	assert.Zero(t, summary.Failed)
}
