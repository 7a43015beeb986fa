package planner_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lathe/internal/adapters/fs"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports/mocks"
	"go.trai.ch/lathe/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

func touch(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte("// "+p+"\n"), 0o600))
	}
}

func birdfontProject(root string) *domain.Project {
	return &domain.Project{
		Root:      root,
		BuildDir:  "build",
		Platform:  "linux",
		Toolchain: domain.DefaultToolchain(),
		State:     domain.StateBackendJSON,
		Modules: []domain.ModuleSpec{
			{Dir: "libxmlbird", Library: "xmlbird", Version: "1.2.3", Packages: []string{"glib-2.0"}},
			{Dir: "birdfont", Packages: []string{"gio-2.0"}, DependsOn: []string{"libxmlbird"}},
		},
	}
}

func TestDescribe(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"libxmlbird/Parser.vala",
		"libxmlbird/sub/Tag.vala",
		"libxmlbird/helper.c",
		"libxmlbird/helper.h",
		"libxmlbird/ext.vapi",
		"birdfont/Main.vala",
	)

	modules, err := planner.New(fs.NewWalker()).Describe(birdfontProject(root))
	require.NoError(t, err)
	require.Len(t, modules, 2)

	lib := modules[0]
	assert.Equal(t, []string{"libxmlbird/Parser.vala", "libxmlbird/sub/Tag.vala"}, lib.Sources().Vala)
	assert.Equal(t, []string{"Parser.vala", "Tag.vala"}, lib.Sources().ValaNames)
	assert.Equal(t, []string{"libxmlbird/helper.c"}, lib.Sources().C)
	assert.Equal(t, []string{"libxmlbird/helper.h"}, lib.Sources().Headers)
	assert.Equal(t, []string{"libxmlbird/ext.vapi"}, lib.Sources().Vapi)

	paths, ok := lib.LibraryPaths()
	require.True(t, ok)
	assert.Equal(t, "libxmlbird.so", paths.SOName)

	app := modules[1]
	deps := app.Dependencies()
	require.Len(t, deps, 1)
	assert.Same(t, lib, deps[0])
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"libxmlbird/Parser.vala",
		"libxmlbird/Tag.vala",
		"libxmlbird/helper.c",
		"birdfont/Main.vala",
	)

	g, err := planner.New(fs.NewWalker()).Plan(birdfontProject(root))
	require.NoError(t, err)
	assert.Equal(t, root, g.Root())

	bin, ok := g.GetTask(domain.NewInternedString("birdfont.bin:bin"))
	require.True(t, ok)
	assert.Equal(t, []string{"birdfont.translate:compile_c", "libxmlbird.symlink:libxmlbird.so"}, domain.Strings(bin.Dependencies))

	translate, ok := g.GetTask(domain.NewInternedString("birdfont.translate:compile_c"))
	require.True(t, ok)
	assert.Equal(t, []string{"libxmlbird.translate:compile_c"}, domain.Strings(translate.Dependencies))

	helper, ok := g.GetTask(domain.NewInternedString("libxmlbird.compile:helper.o"))
	require.True(t, ok)
	assert.Equal(t, []string{"libxmlbird.translate:copy_c_libxmlbird/helper.c"}, domain.Strings(helper.Dependencies))

	// Walk yields every task after its dependencies.
	seen := make(map[string]bool)
	for task := range g.Walk() {
		for _, dep := range task.Dependencies {
			assert.True(t, seen[dep.String()], "%s walked before %s", dep, task.Name)
		}
		seen[task.Name.String()] = true
	}
	assert.Len(t, seen, g.TaskCount())
}

func TestDescribe_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modules []domain.ModuleSpec
		want    error
	}{
		{
			name: "duplicate module",
			modules: []domain.ModuleSpec{
				{Dir: "liba", Library: "a", Version: "1.0"},
				{Dir: "liba", Library: "a", Version: "1.0"},
			},
			want: domain.ErrDuplicateModule,
		},
		{
			name:    "unknown dependency",
			modules: []domain.ModuleSpec{{Dir: "app", DependsOn: []string{"libmissing"}}},
			want:    domain.ErrUnknownModule,
		},
		{
			name: "dependency is not a library",
			modules: []domain.ModuleSpec{
				{Dir: "tool"},
				{Dir: "app", DependsOn: []string{"tool"}},
			},
			want: domain.ErrDependencyNotLibrary,
		},
		{
			name:    "self dependency",
			modules: []domain.ModuleSpec{{Dir: "liba", Library: "a", Version: "1.0", DependsOn: []string{"liba"}}},
			want:    domain.ErrCycleDetected,
		},
		{
			name:    "missing directory",
			modules: []domain.ModuleSpec{{Dir: "nowhere"}},
			want:    domain.ErrModuleDirNotFound,
		},
		{
			name:    "invalid version",
			modules: []domain.ModuleSpec{{Dir: "liba", Library: "a", Version: "one"}},
			want:    domain.ErrInvalidLibraryVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			touch(t, root, "liba/a.vala", "app/main.vala", "tool/tool.vala")

			project := birdfontProject(root)
			project.Modules = tt.modules

			_, err := planner.New(fs.NewWalker()).Describe(project)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlan_ModuleCycle(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "liba/a.vala", "libb/b.vala")

	project := birdfontProject(root)
	project.Modules = []domain.ModuleSpec{
		{Dir: "liba", Library: "a", Version: "1.0", DependsOn: []string{"libb"}},
		{Dir: "libb", Library: "b", Version: "1.0", DependsOn: []string{"liba"}},
	}

	_, err := planner.New(fs.NewWalker()).Plan(project)
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestPlan_DuplicateTarget(t *testing.T) {
	root := t.TempDir()
	// Both headers are copied to build/m/x.h.
	touch(t, root, "m/a/x.h", "m/b/x.h")

	project := birdfontProject(root)
	project.Modules = []domain.ModuleSpec{{Dir: "m"}}

	_, err := planner.New(fs.NewWalker()).Plan(project)
	require.ErrorIs(t, err, domain.ErrDuplicateTarget)
}

func TestPlan_CollidingObjectNames(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "m/x.c", "m/x.vala")

	project := birdfontProject(root)
	project.Modules = []domain.ModuleSpec{{Dir: "m"}}

	_, err := planner.New(fs.NewWalker()).Plan(project)
	require.ErrorIs(t, err, domain.ErrTaskAlreadyExists)
}

func TestDescribe_DiscoveryError(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "m/a.vala")

	ctrl := gomock.NewController(t)
	discoverer := mocks.NewMockSourceDiscoverer(ctrl)
	boom := errors.New("walk failed")
	discoverer.EXPECT().SourcePaths(filepath.Join(root, "m"), "*.vala").Return(nil, boom)

	project := birdfontProject(root)
	project.Modules = []domain.ModuleSpec{{Dir: "m"}}

	_, err := planner.New(discoverer).Describe(project)
	require.ErrorIs(t, err, boom)
}
