package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal state directory kept inside the build root.
	StateDirName = ".lathe"

	// StoreDirName is the name of the per-task build info directory.
	StoreDirName = "store"

	// StateDBName is the file name of the sqlite state database.
	StateDBName = "state.db"

	// ProgressName is the file name of the progress journal of the last build.
	ProgressName = "progress.jsonl"

	// YAMLConfigName is the name of the YAML project configuration file.
	YAMLConfigName = "lathe.yaml"

	// HCLConfigName is the name of the HCL project configuration file.
	HCLConfigName = "lathe.hcl"

	// BinDirName is the directory under the build root that receives linked executables.
	BinDirName = "bin"

	// DefaultBuildDir is the build root used when the configuration does not name one.
	DefaultBuildDir = "build"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// StatePath returns the state directory for the given build root.
func StatePath(buildRoot string) string {
	return filepath.Join(buildRoot, StateDirName)
}

// StorePath returns the JSON build info directory for the given build root.
func StorePath(buildRoot string) string {
	return filepath.Join(buildRoot, StateDirName, StoreDirName)
}

// StateDBPath returns the sqlite state database path for the given build root.
func StateDBPath(buildRoot string) string {
	return filepath.Join(buildRoot, StateDirName, StateDBName)
}

// ProgressPath returns the progress journal path for the given build root.
func ProgressPath(buildRoot string) string {
	return filepath.Join(buildRoot, StateDirName, ProgressName)
}

// ResolvePath returns path as is when it is absolute, and joined to root otherwise.
// Task paths are relative to the project root unless the build root is absolute.
func ResolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
