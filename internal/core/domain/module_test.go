package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lathe/internal/core/domain"
)

func librarySources() domain.SourceSet {
	return domain.SourceSet{
		Vala:      []string{"libxmlbird/Parser.vala", "libxmlbird/sub/Tag.vala"},
		C:         []string{"libxmlbird/native.c"},
		Headers:   []string{"libxmlbird/native.h"},
		Vapi:      []string{"libxmlbird/native.vapi"},
		ValaNames: []string{"Parser.vala", "Tag.vala"},
		CNames:    []string{"native.c"},
	}
}

func TestNewModule_LibraryPaths(t *testing.T) {
	spec := domain.ModuleSpec{Dir: "libxmlbird", Library: "xmlbird", Version: "1.2.3"}
	m, err := domain.NewModule(spec, "build", librarySources(), "linux")
	require.NoError(t, err)

	paths, ok := m.LibraryPaths()
	require.True(t, ok)
	assert.Equal(t, domain.LibraryPaths{
		Header:        "build/xmlbird.h",
		Vapi:          "build/xmlbird.vapi",
		SharedObject:  "build/libxmlbird.so.1.2.3",
		SymlinkPath:   "build/libxmlbird.so",
		SymlinkName:   "libxmlbird.so",
		SOName:        "libxmlbird.so",
		ExternalVapis: []string{"libxmlbird/native.vapi"},
	}, paths)

	assert.Equal(t, []string{
		"build/libxmlbird/native.c",
		"build/libxmlbird/Parser.c",
		"build/libxmlbird/Tag.c",
	}, m.CSources())
	assert.Equal(t, []string{
		"build/libxmlbird/native.o",
		"build/libxmlbird/Parser.o",
		"build/libxmlbird/Tag.o",
	}, m.Objects())
	assert.Equal(t, []string{"libxmlbird/native.c", "libxmlbird/native.h"}, m.CopySources())
}

func TestModule_DerivedPathsAreDeterministic(t *testing.T) {
	spec := domain.ModuleSpec{Dir: "libxmlbird", Library: "xmlbird", Version: "1.0"}
	a, err := domain.NewModule(spec, "build", librarySources(), "darwin")
	require.NoError(t, err)
	b, err := domain.NewModule(spec, "build", librarySources(), "darwin")
	require.NoError(t, err)

	assert.Equal(t, a.CSources(), a.CSources())
	assert.Equal(t, a.CSources(), b.CSources())
	assert.Equal(t, a.Objects(), b.Objects())
	pa, _ := a.LibraryPaths()
	pb, _ := b.LibraryPaths()
	assert.Equal(t, pa, pb)
	assert.Equal(t, "libxmlbird.1.dylib", pa.SOName)
}

func TestModule_NonLibraryHasNoLibraryPaths(t *testing.T) {
	m, err := domain.NewModule(domain.ModuleSpec{Dir: "app"}, "build", domain.SourceSet{}, "linux")
	require.NoError(t, err)

	paths, ok := m.LibraryPaths()
	assert.False(t, ok)
	assert.Zero(t, paths)
	assert.False(t, m.IsLibrary())
	assert.Equal(t, "build/bin/app", m.BinaryPath())
}

func TestNewModule_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec domain.ModuleSpec
		want error
	}{
		{"missing dir", domain.ModuleSpec{}, domain.ErrMissingModuleDir},
		{"missing version", domain.ModuleSpec{Dir: "lib", Library: "x"}, domain.ErrLibraryVersionRequired},
		{"invalid version", domain.ModuleSpec{Dir: "lib", Library: "x", Version: "one"}, domain.ErrInvalidLibraryVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewModule(tt.spec, "build", domain.SourceSet{}, "linux")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestModule_SetDependenciesAfterReadPanics(t *testing.T) {
	lib, err := domain.NewModule(domain.ModuleSpec{Dir: "lib", Library: "x", Version: "1"}, "build", domain.SourceSet{}, "linux")
	require.NoError(t, err)
	app, err := domain.NewModule(domain.ModuleSpec{Dir: "app"}, "build", domain.SourceSet{}, "linux")
	require.NoError(t, err)

	app.SetDependencies(lib)
	assert.Len(t, app.Dependencies(), 1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		panicErr, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, panicErr, domain.ErrDependenciesFrozen)
	}()
	app.SetDependencies()
}

func TestLibrary_Major(t *testing.T) {
	assert.Equal(t, "2", domain.Library{Version: "2.1.0"}.Major())
	assert.Equal(t, "0", domain.Library{Version: "0.9"}.Major())
}
