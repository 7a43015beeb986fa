// Package emitter turns module descriptors into the tasks of the five build stages.
package emitter

import (
	"iter"
	"path/filepath"

	"go.trai.ch/lathe/internal/core/domain"
)

// Emitter yields build tasks for modules. Every stage is a restartable
// iterator: ranging over it twice yields equal tasks.
type Emitter struct {
	toolchain domain.Toolchain
	platform  string
}

// New creates an Emitter for the given toolchain and platform.
func New(toolchain domain.Toolchain, platform string) *Emitter {
	return &Emitter{toolchain: toolchain, platform: platform}
}

// Tasks chains the five stages of m in stage order.
func (e *Emitter) Tasks(m *domain.Module) iter.Seq[domain.Task] {
	stages := []iter.Seq[domain.Task]{
		e.Translate(m),
		e.Compile(m),
		e.LinkLibrary(m),
		e.Symlink(m),
		e.LinkBinary(m),
	}
	return func(yield func(domain.Task) bool) {
		for _, stage := range stages {
			for t := range stage {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Translate yields the copy tasks for plain C sources, headers and external
// vapis, followed by the translator task when the module has Vala sources.
func (e *Emitter) Translate(m *domain.Module) iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		outDir := m.OutputDir()
		for _, src := range m.CopySources() {
			if !yield(copyTask(m, "copy_c_"+src, src, outDir)) {
				return
			}
		}

		lib, isLib := m.LibraryPaths()
		if isLib {
			for _, src := range lib.ExternalVapis {
				if !yield(copyTask(m, "vapi_files_"+src, src, m.BuildRoot())) {
					return
				}
			}
		}

		vala := m.Sources().Vala
		if len(vala) == 0 {
			return
		}

		opts := []domain.Option{
			domain.Opt("basedir", outDir),
			domain.Opt("vapidir", "./"),
			domain.Opt("pkg", m.Packages()...),
		}
		targets := m.TranslatedSources()
		if isLib {
			library, _ := m.Library()
			opts = append(opts,
				domain.Opt("library", library.Name),
				domain.Opt("vapi", lib.Vapi),
				domain.Opt("header", lib.Header),
			)
			targets = append(targets, lib.Header, lib.Vapi)
		}

		depVapis := dependencyVapis(m)
		cmd := domain.NewCommand(e.toolchain.Translator,
			domain.Tokens("--ccode"),
			domain.Words(m.Options().Translate...),
			domain.Options(opts...),
			domain.Tokens(depVapis...),
			domain.Tokens(vala...),
		)

		inputs := make([]string, 0, len(vala)+len(depVapis))
		inputs = append(inputs, vala...)
		inputs = append(inputs, depVapis...)

		yield(domain.Task{
			Name:    domain.TaskName(m.Dir(), domain.StageTranslate, "compile_c"),
			Module:  domain.NewInternedString(m.Dir()),
			Stage:   domain.StageTranslate,
			Actions: []domain.Action{domain.Exec(cmd)},
			Inputs:  domain.NewInternedStrings(inputs),
			Outputs: domain.NewInternedStrings(targets),
		})
	}
}

// Compile yields one task per C file, named after its object file.
func (e *Emitter) Compile(m *domain.Module) iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		objects := m.Objects()
		for i, c := range m.CSources() {
			obj := objects[i]
			cmd := domain.NewCommand(e.toolchain.CC,
				domain.Words(m.Options().Compile...),
				domain.PackageFlags(m.Packages(), true),
				domain.Tokens("-c", c, "-o", obj),
			)
			t := domain.Task{
				Name:    domain.TaskName(m.Dir(), domain.StageCompile, filepath.Base(obj)),
				Module:  domain.NewInternedString(m.Dir()),
				Stage:   domain.StageCompile,
				Actions: []domain.Action{domain.Exec(cmd)},
				Inputs:  domain.NewInternedStrings([]string{c}),
				Outputs: domain.NewInternedStrings([]string{obj}),
			}
			if !yield(t) {
				return
			}
		}
	}
}

// LinkLibrary yields the shared object task of a library module.
func (e *Emitter) LinkLibrary(m *domain.Module) iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		lib, ok := m.LibraryPaths()
		if !ok {
			return
		}
		cmd := domain.NewCommand(e.toolchain.CC,
			domain.Tokens("-shared", "-Wl,-soname,"+lib.SOName),
			domain.Glob(filepath.Join(m.OutputDir(), "*.o")),
			domain.Tokens("-o", lib.SharedObject),
			domain.PackageFlags(m.Packages(), true),
			domain.Words(m.Options().Link...),
		)
		yield(domain.Task{
			Name:    domain.TaskName(m.Dir(), domain.StageLinkLibrary, filepath.Base(lib.SharedObject)),
			Module:  domain.NewInternedString(m.Dir()),
			Stage:   domain.StageLinkLibrary,
			Actions: []domain.Action{domain.Exec(cmd)},
			Inputs:  domain.NewInternedStrings(m.Objects()),
			Outputs: domain.NewInternedStrings([]string{lib.SharedObject}),
		})
	}
}

// Symlink yields the development link task of a library module on platforms
// that create one.
func (e *Emitter) Symlink(m *domain.Module) iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		lib, ok := m.LibraryPaths()
		if !ok || !domain.CreatesSymlink(e.platform) {
			return
		}
		yield(domain.Task{
			Name:    domain.TaskName(m.Dir(), domain.StageSymlink, lib.SymlinkName),
			Module:  domain.NewInternedString(m.Dir()),
			Stage:   domain.StageSymlink,
			Actions: []domain.Action{domain.Symlink(filepath.Base(lib.SharedObject), lib.SymlinkPath)},
			Inputs:  domain.NewInternedStrings([]string{lib.SharedObject}),
			Outputs: domain.NewInternedStrings([]string{lib.SymlinkPath}),
		})
	}
}

// LinkBinary yields the executable task of a non-library module with at least one dependency.
func (e *Emitter) LinkBinary(m *domain.Module) iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		deps := m.Dependencies()
		if m.IsLibrary() || len(deps) == 0 {
			return
		}

		csources := m.CSources()
		libFlags := make([]string, 0, len(deps))
		inputs := append([]string(nil), csources...)
		for _, dep := range deps {
			library, _ := dep.Library()
			libFlags = append(libFlags, "-l"+library.Name)
			inputs = append(inputs, e.linkInput(dep))
		}

		bin := m.BinaryPath()
		cmd := domain.NewCommand(e.toolchain.CC,
			domain.Tokens(csources...),
			domain.Words(m.Options().Bin...),
			domain.Tokens("-o", bin, "-I", m.BuildRoot(), "-L", m.BuildRoot()),
			domain.Tokens(libFlags...),
			domain.PackageFlags(m.Packages(), false),
		)
		yield(domain.Task{
			Name:   domain.TaskName(m.Dir(), domain.StageLinkBinary, "bin"),
			Module: domain.NewInternedString(m.Dir()),
			Stage:  domain.StageLinkBinary,
			Actions: []domain.Action{
				domain.MakeDir(m.BinaryDir()),
				domain.Exec(cmd),
			},
			Inputs:  domain.NewInternedStrings(inputs),
			Outputs: domain.NewInternedStrings([]string{bin}),
		})
	}
}

// linkInput is the artifact of dep a binary links against: the development
// symlink, or the shared object where no symlink is created.
func (e *Emitter) linkInput(dep *domain.Module) string {
	lib, _ := dep.LibraryPaths()
	if domain.CreatesSymlink(e.platform) {
		return lib.SymlinkPath
	}
	return lib.SharedObject
}

func dependencyVapis(m *domain.Module) []string {
	deps := m.Dependencies()
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		if lib, ok := dep.LibraryPaths(); ok {
			out = append(out, lib.Vapi)
		}
	}
	return out
}

func copyTask(m *domain.Module, subtask, src, dir string) domain.Task {
	return domain.Task{
		Name:   domain.TaskName(m.Dir(), domain.StageTranslate, subtask),
		Module: domain.NewInternedString(m.Dir()),
		Stage:  domain.StageTranslate,
		Actions: []domain.Action{
			domain.MakeDir(dir),
			domain.CopyInto(src, dir),
		},
		Outputs: domain.NewInternedStrings([]string{filepath.Join(dir, filepath.Base(src))}),
	}
}
