package ports

// SourceDiscoverer finds the source files of a module.
//
//go:generate go run go.uber.org/mock/mockgen -source=discoverer.go -destination=mocks/mock_discoverer.go -package=mocks
type SourceDiscoverer interface {
	// SourcePaths returns the path of every file below root whose name matches pattern.
	SourcePaths(root, pattern string) ([]string, error)
	// SourceNames returns the bare name of every file below root whose name matches pattern.
	SourceNames(root, pattern string) ([]string, error)
}
