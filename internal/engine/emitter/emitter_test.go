package emitter_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/engine/emitter"
)

type taskView struct {
	Name    string
	Stage   string
	Actions []string
	Inputs  []string
	Outputs []string
}

func view(t domain.Task) taskView {
	actions := make([]string, len(t.Actions))
	for i, a := range t.Actions {
		actions[i] = a.String()
	}
	return taskView{
		Name:    t.Name.String(),
		Stage:   t.Stage.String(),
		Actions: actions,
		Inputs:  domain.Strings(t.Inputs),
		Outputs: domain.Strings(t.Outputs),
	}
}

func collect(seq func(func(domain.Task) bool)) []taskView {
	var out []taskView
	for task := range seq {
		out = append(out, view(task))
	}
	return out
}

func xmlbird(t *testing.T, platform string) *domain.Module {
	t.Helper()
	m, err := domain.NewModule(domain.ModuleSpec{
		Dir:      "libxmlbird",
		Library:  "xmlbird",
		Version:  "1.2.3",
		Packages: []string{"glib-2.0", "posix"},
	}, "build", domain.SourceSet{
		Vala:      []string{"libxmlbird/Parser.vala", "libxmlbird/Tag.vala"},
		ValaNames: []string{"Parser.vala", "Tag.vala"},
		C:         []string{"libxmlbird/helper.c"},
		CNames:    []string{"helper.c"},
		Headers:   []string{"libxmlbird/helper.h"},
		Vapi:      []string{"libxmlbird/ext.vapi"},
	}, platform)
	require.NoError(t, err)
	return m
}

func birdfont(t *testing.T, platform string, deps ...*domain.Module) *domain.Module {
	t.Helper()
	m, err := domain.NewModule(domain.ModuleSpec{
		Dir:        "birdfont",
		Packages:   []string{"gio-2.0", "posix"},
		BinOptions: []string{"-Wl,-rpath,."},
	}, "build", domain.SourceSet{
		Vala:      []string{"birdfont/Main.vala"},
		ValaNames: []string{"Main.vala"},
	}, platform)
	require.NoError(t, err)
	m.SetDependencies(deps...)
	return m
}

func TestTranslate_Library(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	got := collect(e.Translate(xmlbird(t, "linux")))

	want := []taskView{
		{
			Name:    "libxmlbird.translate:copy_c_libxmlbird/helper.c",
			Stage:   "translate",
			Actions: []string{"mkdir -p build/libxmlbird", "cp libxmlbird/helper.c build/libxmlbird"},
			Inputs:  []string{},
			Outputs: []string{"build/libxmlbird/helper.c"},
		},
		{
			Name:    "libxmlbird.translate:copy_c_libxmlbird/helper.h",
			Stage:   "translate",
			Actions: []string{"mkdir -p build/libxmlbird", "cp libxmlbird/helper.h build/libxmlbird"},
			Inputs:  []string{},
			Outputs: []string{"build/libxmlbird/helper.h"},
		},
		{
			Name:    "libxmlbird.translate:vapi_files_libxmlbird/ext.vapi",
			Stage:   "translate",
			Actions: []string{"mkdir -p build", "cp libxmlbird/ext.vapi build"},
			Inputs:  []string{},
			Outputs: []string{"build/ext.vapi"},
		},
		{
			Name:  "libxmlbird.translate:compile_c",
			Stage: "translate",
			Actions: []string{
				"valac --ccode --basedir build/libxmlbird --vapidir ./ --pkg glib-2.0 --pkg posix " +
					"--library xmlbird --vapi build/xmlbird.vapi --header build/xmlbird.h " +
					"libxmlbird/Parser.vala libxmlbird/Tag.vala",
			},
			Inputs: []string{"libxmlbird/Parser.vala", "libxmlbird/Tag.vala"},
			Outputs: []string{
				"build/libxmlbird/Parser.c",
				"build/libxmlbird/Tag.c",
				"build/xmlbird.h",
				"build/xmlbird.vapi",
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Translate() mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate_PureCModuleHasNoTranslatorTask(t *testing.T) {
	m, err := domain.NewModule(domain.ModuleSpec{Dir: "cutil"}, "build", domain.SourceSet{
		C:      []string{"cutil/a.c"},
		CNames: []string{"a.c"},
	}, "linux")
	require.NoError(t, err)

	e := emitter.New(domain.DefaultToolchain(), "linux")
	for _, task := range collect(e.Translate(m)) {
		assert.NotEqual(t, "cutil.translate:compile_c", task.Name)
	}
	assert.Len(t, collect(e.Translate(m)), 1)
}

func TestCompile(t *testing.T) {
	e := emitter.New(domain.Toolchain{Translator: "valac", CC: "clang"}, "linux")
	m, err := domain.NewModule(domain.ModuleSpec{
		Dir:            "libxmlbird",
		Library:        "xmlbird",
		Version:        "1.2.3",
		Packages:       []string{"posixtypes", "glib-2.0"},
		CompileOptions: []string{"-g -O2"},
	}, "build", domain.SourceSet{
		Vala:      []string{"libxmlbird/Parser.vala"},
		ValaNames: []string{"Parser.vala"},
		C:         []string{"libxmlbird/helper.c"},
		CNames:    []string{"helper.c"},
	}, "linux")
	require.NoError(t, err)

	want := []taskView{
		{
			Name:    "libxmlbird.compile:helper.o",
			Stage:   "compile",
			Actions: []string{"clang -g -O2 $(pkg-config --cflags glib-2.0) -c build/libxmlbird/helper.c -o build/libxmlbird/helper.o"},
			Inputs:  []string{"build/libxmlbird/helper.c"},
			Outputs: []string{"build/libxmlbird/helper.o"},
		},
		{
			Name:    "libxmlbird.compile:Parser.o",
			Stage:   "compile",
			Actions: []string{"clang -g -O2 $(pkg-config --cflags glib-2.0) -c build/libxmlbird/Parser.c -o build/libxmlbird/Parser.o"},
			Inputs:  []string{"build/libxmlbird/Parser.c"},
			Outputs: []string{"build/libxmlbird/Parser.o"},
		},
	}

	if diff := cmp.Diff(want, collect(e.Compile(m))); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkLibraryAndSymlink(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	m := xmlbird(t, "linux")

	link := collect(e.LinkLibrary(m))
	require.Len(t, link, 1)
	assert.Equal(t, "libxmlbird.link:libxmlbird.so.1.2.3", link[0].Name)
	assert.Equal(t, []string{
		"cc -shared -Wl,-soname,libxmlbird.so build/libxmlbird/*.o -o build/libxmlbird.so.1.2.3 $(pkg-config --cflags glib-2.0)",
	}, link[0].Actions)
	assert.Equal(t, []string{"build/libxmlbird/helper.o", "build/libxmlbird/Parser.o", "build/libxmlbird/Tag.o"}, link[0].Inputs)
	assert.Equal(t, []string{"build/libxmlbird.so.1.2.3"}, link[0].Outputs)

	sym := collect(e.Symlink(m))
	require.Len(t, sym, 1)
	assert.Equal(t, taskView{
		Name:    "libxmlbird.symlink:libxmlbird.so",
		Stage:   "symlink",
		Actions: []string{"ln -s -T libxmlbird.so.1.2.3 build/libxmlbird.so"},
		Inputs:  []string{"build/libxmlbird.so.1.2.3"},
		Outputs: []string{"build/libxmlbird.so"},
	}, sym[0])
}

func TestSymlink_PlatformPolicy(t *testing.T) {
	tests := map[string]int{
		"linux":       1,
		"darwin":      1,
		"gnukfreebsd": 1,
		"kfreebsd10":  1,
		"freebsd13":   0,
		"openbsd7":    0,
		"netbsd":      0,
		"msys":        1,
	}
	for platform, want := range tests {
		t.Run(platform, func(t *testing.T) {
			e := emitter.New(domain.DefaultToolchain(), platform)
			assert.Len(t, collect(e.Symlink(xmlbird(t, platform))), want)
		})
	}
}

func TestNonLibraryModule(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	app := birdfont(t, "linux")

	_, ok := app.LibraryPaths()
	assert.False(t, ok)
	assert.Empty(t, collect(e.LinkLibrary(app)))
	assert.Empty(t, collect(e.Symlink(app)))
	// Without dependencies there is nothing to link a binary against.
	assert.Empty(t, collect(e.LinkBinary(app)))
}

func TestLinkBinary(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	lib := xmlbird(t, "linux")
	app := birdfont(t, "linux", lib)

	got := collect(e.LinkBinary(app))
	want := []taskView{{
		Name:  "birdfont.bin:bin",
		Stage: "bin",
		Actions: []string{
			"mkdir -p build/bin",
			"cc build/birdfont/Main.c -Wl,-rpath,. -o build/bin/birdfont -I build -L build -lxmlbird " +
				"$(pkg-config --cflags gio-2.0) $(pkg-config --cflags posix)",
		},
		Inputs:  []string{"build/birdfont/Main.c", "build/libxmlbird.so"},
		Outputs: []string{"build/bin/birdfont"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LinkBinary() mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkBinary_DependencyOrder(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")

	newLib := func(dir, name string) *domain.Module {
		m, err := domain.NewModule(domain.ModuleSpec{Dir: dir, Library: name, Version: "1.0"}, "build", domain.SourceSet{}, "linux")
		require.NoError(t, err)
		return m
	}
	a := newLib("liba", "a")
	b := newLib("libb", "b")
	app := birdfont(t, "linux", b, a)

	got := collect(e.LinkBinary(app))
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Actions[1], "-lb -la")
	assert.Equal(t, []string{"build/birdfont/Main.c", "build/libb.so", "build/liba.so"}, got[0].Inputs)
}

func TestLinkBinary_NoSymlinkPlatformDependsOnSharedObject(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "freebsd13")
	app := birdfont(t, "freebsd13", xmlbird(t, "freebsd13"))

	got := collect(e.LinkBinary(app))
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Inputs, "build/libxmlbird.so.1.2.3")
}

func TestTranslate_DependencyVapis(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	app := birdfont(t, "linux", xmlbird(t, "linux"))

	got := collect(e.Translate(app))
	require.Len(t, got, 1)
	assert.Equal(t, []string{
		"valac --ccode --basedir build/birdfont --vapidir ./ --pkg gio-2.0 --pkg posix build/xmlbird.vapi birdfont/Main.vala",
	}, got[0].Actions)
	assert.Equal(t, []string{"birdfont/Main.vala", "build/xmlbird.vapi"}, got[0].Inputs)
}

func TestTasks_RestartableAndDeterministic(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	m := xmlbird(t, "linux")

	first := collect(e.Tasks(m))
	second := collect(e.Tasks(m))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Tasks() not restartable (-first +second):\n%s", diff)
	}

	names := make([]string, len(first))
	for i, task := range first {
		names[i] = task.Name
	}
	assert.True(t, slices.Contains(names, "libxmlbird.link:libxmlbird.so.1.2.3"))
	assert.Equal(t, "libxmlbird.symlink:libxmlbird.so", names[len(names)-1])
}

func TestTasks_EarlyStop(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	count := 0
	for range e.Tasks(xmlbird(t, "linux")) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestDependenciesFrozenAfterEmission(t *testing.T) {
	e := emitter.New(domain.DefaultToolchain(), "linux")
	app := birdfont(t, "linux", xmlbird(t, "linux"))
	for range e.Tasks(app) {
	}
	assert.Panics(t, func() { app.SetDependencies() })
}
