package fs

import (
	"path/filepath"
	"sort"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GlobResolver = (*Resolver)(nil)

// Resolver expands glob patterns relative to a root using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveGlob returns the sorted paths matching pattern, relative to root.
// A pattern matching nothing is an error.
func (r *Resolver) ResolveGlob(pattern, root string) ([]string, error) {
	path := domain.ResolvePath(root, pattern)

	matches, err := filepath.Glob(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGlobFailed.Error()), "pattern", pattern)
	}
	if len(matches) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInputNotFound, domain.ErrGlobFailed.Error()), "pattern", pattern)
	}

	result := make([]string, 0, len(matches))
	for _, match := range matches {
		if !filepath.IsAbs(pattern) {
			if rel, relErr := filepath.Rel(root, match); relErr == nil {
				match = rel
			}
		}
		result = append(result, match)
	}
	sort.Strings(result)

	return result, nil
}
