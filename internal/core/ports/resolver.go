package ports

// GlobResolver expands file patterns.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_resolver.go -package=mocks -source=resolver.go
type GlobResolver interface {
	// ResolveGlob returns the sorted paths matching pattern, relative to root.
	ResolveGlob(pattern, root string) ([]string, error)
}
