package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrDuplicateTarget is returned when two tasks declare the same target file.
	ErrDuplicateTarget = zerr.New("target declared by more than one task")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task or module is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrDuplicateModule is returned when two modules share the same source directory.
	ErrDuplicateModule = zerr.New("duplicate module")

	// ErrUnknownModule is returned when a module depends on a module that is not declared.
	ErrUnknownModule = zerr.New("unknown module")

	// ErrDependencyNotLibrary is returned when a module depends on a module that produces no library.
	ErrDependencyNotLibrary = zerr.New("dependency module does not produce a library")

	// ErrModuleDirNotFound is returned when a module's source directory does not exist.
	ErrModuleDirNotFound = zerr.New("module source directory not found")

	// ErrMissingModuleDir is returned when a module declaration has no source directory.
	ErrMissingModuleDir = zerr.New("module declaration is missing a source directory")

	// ErrLibraryVersionRequired is returned when a library module has no version.
	ErrLibraryVersionRequired = zerr.New("library module requires a version")

	// ErrInvalidLibraryVersion is returned when a library version is not a valid dotted version.
	ErrInvalidLibraryVersion = zerr.New("invalid library version")

	// ErrDependenciesFrozen is returned when a module's dependencies are changed after stage emission began.
	ErrDependenciesFrozen = zerr.New("module dependencies are frozen")

	// ErrInvalidStateBackend is returned when the configured state backend is unknown.
	ErrInvalidStateBackend = zerr.New("invalid state backend, expected 'json' or 'sqlite'")

	// ErrPackageNotFound is returned when the package-flag tool cannot resolve a package.
	// It is fatal: the whole build is aborted.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrStoreOpenFailed is returned when the sqlite state database cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open state database")

	// ErrJournalCreateFailed is returned when the progress journal cannot be created.
	ErrJournalCreateFailed = zerr.New("failed to create progress journal")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file can be found.
	ErrConfigNotFound = zerr.New("could not find lathe.yaml or lathe.hcl")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrInputNotFound is returned when a declared file dependency does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrInputHashComputationFailed is returned when input hash computation fails.
	ErrInputHashComputationFailed = zerr.New("failed to compute input hash")

	// ErrOutputHashComputationFailed is returned when output hash computation fails.
	ErrOutputHashComputationFailed = zerr.New("failed to compute output hash")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrWalkFailed is returned when walking a source directory fails.
	ErrWalkFailed = zerr.New("failed to walk source directory")

	// ErrCopyFailed is returned when copying a file into the build tree fails.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrMkdirFailed is returned when creating a build directory fails.
	ErrMkdirFailed = zerr.New("failed to create directory")

	// ErrSymlinkFailed is returned when creating the development symlink fails.
	ErrSymlinkFailed = zerr.New("failed to create symlink")

	// ErrGlobFailed is returned when a glob fragment cannot be expanded.
	ErrGlobFailed = zerr.New("failed to expand glob")

	// ErrFailedToCleanOutput is returned when cleaning an output file fails.
	ErrFailedToCleanOutput = zerr.New("failed to clean output file")
)
