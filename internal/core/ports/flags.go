package ports

import "context"

// PackageFlagResolver resolves the compiler flags of a system package.
//
//go:generate go run go.uber.org/mock/mockgen -source=flags.go -destination=mocks/mock_flags.go -package=mocks
type PackageFlagResolver interface {
	// Resolve returns the flags of pkg split into words.
	// An unknown package yields an error wrapping domain.ErrPackageNotFound.
	Resolve(ctx context.Context, pkg string) ([]string, error)
}
