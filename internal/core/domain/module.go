package domain

import (
	"slices"
	"strings"
	"sync/atomic"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// ModuleSpec is a module as declared in the project configuration.
type ModuleSpec struct {
	Dir       string
	Library   string
	Version   string
	SOName    string
	Packages  []string
	DependsOn []string

	TranslateOptions []string
	CompileOptions   []string
	LinkFlags        []string
	BinOptions       []string
}

// IsLibrary reports whether the declaration produces a shared library.
func (s ModuleSpec) IsLibrary() bool {
	return s.Library != ""
}

// Library is the identity of a shared library produced by a module.
type Library struct {
	Name    string
	Version string
	// SOName is the file name recorded in the shared object, chosen by the platform naming policy.
	SOName string
}

// NewLibrary validates version and returns the library identity.
func NewLibrary(name, version string) (Library, error) {
	if version == "" {
		return Library{}, zerr.With(zerr.Wrap(ErrLibraryVersionRequired, "invalid library"), "library", name)
	}
	if !semver.IsValid("v" + version) {
		err := zerr.With(zerr.Wrap(ErrInvalidLibraryVersion, "invalid library"), "library", name)
		return Library{}, zerr.With(err, "version", version)
	}
	return Library{Name: name, Version: version}, nil
}

// Major returns the major component of the library version.
func (l Library) Major() string {
	return strings.TrimPrefix(semver.Major("v"+l.Version), "v")
}

// SourceSet holds what discovery found in a module's source directory.
// Paths are full paths; names are bare file names in the same order.
type SourceSet struct {
	Vala    []string
	C       []string
	Headers []string
	Vapi    []string

	ValaNames []string
	CNames    []string
}

// ModuleOptions are the caller-supplied option strings per stage.
type ModuleOptions struct {
	Translate []string
	Compile   []string
	Link      []string
	Bin       []string
}

// Module describes one compiled unit: a library or a binary.
// It is immutable after construction except for its dependency list,
// which may only be set until the first stage reads it.
type Module struct {
	dir       string
	buildRoot string
	sources   SourceSet
	packages  []string
	options   ModuleOptions
	library   *Library

	deps   []*Module
	frozen atomic.Bool
}

// NewModule builds a module descriptor from a declaration and its discovered sources.
// The platform names the shared object of library modules.
func NewModule(spec ModuleSpec, buildRoot string, sources SourceSet, platform string) (*Module, error) {
	if spec.Dir == "" {
		return nil, ErrMissingModuleDir
	}

	m := &Module{
		dir:       spec.Dir,
		buildRoot: buildRoot,
		sources:   sources,
		packages:  slices.Clone(spec.Packages),
		options: ModuleOptions{
			Translate: slices.Clone(spec.TranslateOptions),
			Compile:   slices.Clone(spec.CompileOptions),
			Link:      slices.Clone(spec.LinkFlags),
			Bin:       slices.Clone(spec.BinOptions),
		},
	}

	if spec.IsLibrary() {
		lib, err := NewLibrary(spec.Library, spec.Version)
		if err != nil {
			return nil, zerr.With(err, "module", spec.Dir)
		}
		lib.SOName = SharedLibraryName(platform, lib, spec.SOName)
		m.library = &lib
	}

	return m, nil
}

// Dir returns the module's source directory, which identifies it.
func (m *Module) Dir() string { return m.dir }

// BuildRoot returns the global build output root.
func (m *Module) BuildRoot() string { return m.buildRoot }

// Sources returns the discovered sources.
func (m *Module) Sources() SourceSet { return m.sources }

// Packages returns the system packages the module compiles against.
func (m *Module) Packages() []string { return slices.Clone(m.packages) }

// Options returns the caller-supplied per-stage options.
func (m *Module) Options() ModuleOptions { return m.options }

// Library returns the library identity, if the module produces one.
func (m *Module) Library() (Library, bool) {
	if m.library == nil {
		return Library{}, false
	}
	return *m.library, true
}

// IsLibrary reports whether the module produces a shared library.
func (m *Module) IsLibrary() bool { return m.library != nil }

// SetDependencies replaces the dependency modules. It panics once a stage has read them.
func (m *Module) SetDependencies(deps ...*Module) {
	if m.frozen.Load() {
		panic(zerr.With(zerr.Wrap(ErrDependenciesFrozen, "cannot set dependencies"), "module", m.dir))
	}
	m.deps = deps
}

// Dependencies returns the dependency modules in declaration order.
// The first call freezes the list.
func (m *Module) Dependencies() []*Module {
	m.frozen.Store(true)
	return slices.Clone(m.deps)
}
