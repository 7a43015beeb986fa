package domain

// StateBackend selects where build state is persisted.
type StateBackend string

const (
	// StateBackendJSON keeps one JSON file per task.
	StateBackendJSON StateBackend = "json"
	// StateBackendSQLite keeps all task state in one sqlite database.
	StateBackendSQLite StateBackend = "sqlite"
)

// Valid reports whether b names a known backend.
func (b StateBackend) Valid() bool {
	return b == StateBackendJSON || b == StateBackendSQLite
}

// Toolchain names the external programs a build invokes.
type Toolchain struct {
	Translator string
	CC         string
}

// DefaultToolchain returns valac and cc.
func DefaultToolchain() Toolchain {
	return Toolchain{Translator: "valac", CC: "cc"}
}

// Project is a loaded project configuration.
type Project struct {
	// Root is the directory holding the configuration file. Module dirs are relative to it.
	Root      string
	BuildDir  string
	Platform  string
	Toolchain Toolchain
	State     StateBackend
	Modules   []ModuleSpec
}
