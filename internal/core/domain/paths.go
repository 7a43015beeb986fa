package domain

import (
	"path/filepath"
	"strings"
)

// LibraryPaths are the derived artifacts that only library modules have.
type LibraryPaths struct {
	// Header is the generated C header, <build>/<library>.h.
	Header string
	// Vapi is the generated interface description, <build>/<library>.vapi.
	Vapi string
	// SharedObject is the versioned shared object, <build>/<dir>.so.<version>.
	SharedObject string
	// SymlinkPath is the unversioned development link, <build>/<dir>.so.
	SymlinkPath string
	// SymlinkName is the base name of SymlinkPath.
	SymlinkName string
	// SOName is the name recorded with -Wl,-soname.
	SOName string
	// ExternalVapis are hand-written interface descriptions copied verbatim into the build root.
	ExternalVapis []string
}

// OutputDir is where the module's C sources and objects are placed, <build>/<dir>.
func (m *Module) OutputDir() string {
	return filepath.Join(m.buildRoot, m.dir)
}

// CSources returns the C file of every plain and translated source, plain sources first.
func (m *Module) CSources() []string {
	out := make([]string, 0, len(m.sources.CNames)+len(m.sources.ValaNames))
	for _, name := range m.sources.CNames {
		out = append(out, filepath.Join(m.OutputDir(), name))
	}
	for _, name := range m.sources.ValaNames {
		out = append(out, filepath.Join(m.OutputDir(), replaceExt(name, ".vala", ".c")))
	}
	return out
}

// TranslatedSources returns the C file the translator writes for every Vala source.
func (m *Module) TranslatedSources() []string {
	out := make([]string, 0, len(m.sources.ValaNames))
	for _, name := range m.sources.ValaNames {
		out = append(out, filepath.Join(m.OutputDir(), replaceExt(name, ".vala", ".c")))
	}
	return out
}

// Objects returns the object file of every entry of CSources, index for index.
func (m *Module) Objects() []string {
	out := make([]string, 0, len(m.sources.CNames)+len(m.sources.ValaNames))
	for _, name := range m.sources.CNames {
		out = append(out, filepath.Join(m.OutputDir(), replaceExt(name, ".c", ".o")))
	}
	for _, name := range m.sources.ValaNames {
		out = append(out, filepath.Join(m.OutputDir(), replaceExt(name, ".vala", ".o")))
	}
	return out
}

// CopySources returns the plain C sources and headers that are copied into OutputDir.
func (m *Module) CopySources() []string {
	out := make([]string, 0, len(m.sources.C)+len(m.sources.Headers))
	out = append(out, m.sources.C...)
	return append(out, m.sources.Headers...)
}

// BinaryPath is the executable produced by a non-library module, <build>/bin/<dir>.
func (m *Module) BinaryPath() string {
	return filepath.Join(m.buildRoot, BinDirName, m.dir)
}

// BinaryDir is the directory receiving executables, <build>/bin.
func (m *Module) BinaryDir() string {
	return filepath.Join(m.buildRoot, BinDirName)
}

// LibraryPaths returns the library artifacts. The second result is false for non-library modules.
func (m *Module) LibraryPaths() (LibraryPaths, bool) {
	if m.library == nil {
		return LibraryPaths{}, false
	}
	base := filepath.Join(m.buildRoot, m.dir)
	lib := filepath.Join(m.buildRoot, m.library.Name)
	return LibraryPaths{
		Header:        lib + ".h",
		Vapi:          lib + ".vapi",
		SharedObject:  base + ".so." + m.library.Version,
		SymlinkPath:   base + ".so",
		SymlinkName:   filepath.Base(m.dir) + ".so",
		SOName:        m.library.SOName,
		ExternalVapis: append([]string(nil), m.sources.Vapi...),
	}, true
}

func replaceExt(name, from, to string) string {
	return strings.TrimSuffix(name, from) + to
}
