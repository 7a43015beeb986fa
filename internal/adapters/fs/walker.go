// Package fs provides file system adapters for walking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceDiscoverer = (*Walker)(nil)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping .git, .jj and ignored names.
// Paths include root, as filepath.WalkDir reports them. A walk error is yielded once and ends the walk.
// Symlinked directories are not followed.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// Check if we should skip this directory
			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}

			// Skip directories, yield files
			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil {
			yield("", zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "root", root))
		}
	}
}

// shouldSkip reports whether an entry is excluded. The returned action is
// filepath.SkipDir for directories and nil for files.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}

// SourcePaths returns the path of every file below root whose base name matches pattern.
func (w *Walker) SourcePaths(root, pattern string) ([]string, error) {
	return w.collect(root, pattern, func(path string) string { return path })
}

// SourceNames returns the base name of every file below root whose base name matches pattern.
func (w *Walker) SourceNames(root, pattern string) ([]string, error) {
	return w.collect(root, pattern, filepath.Base)
}

func (w *Walker) collect(root, pattern string, project func(string) string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid source pattern"), "pattern", pattern)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrModuleDirNotFound, "cannot discover sources"), "dir", root)
	}

	var out []string
	for path, err := range w.WalkFiles(root, nil) {
		if err != nil {
			return nil, err
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			out = append(out, project(path))
		}
	}
	return out, nil
}
