// Package pkgconfig resolves and memoizes the compiler flags of system packages.
package pkgconfig

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"sync"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.PackageFlagResolver = (*Cache)(nil)

// QueryFunc asks the package-flag tool for the raw flags of pkg.
type QueryFunc func(ctx context.Context, pkg string) ([]byte, error)

type entry struct {
	flags []string
	err   error
}

// Cache memoizes package flags for one build invocation.
// Concurrent lookups of the same package share a single query, and failures are memoized too.
type Cache struct {
	query QueryFunc
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
}

// New creates a Cache backed by query.
func New(query QueryFunc) *Cache {
	return &Cache{
		query:   query,
		entries: make(map[string]entry),
	}
}

// NewDefault creates a Cache that runs pkg-config, or $PKG_CONFIG when set.
func NewDefault() *Cache {
	tool := os.Getenv("PKG_CONFIG")
	if tool == "" {
		tool = "pkg-config"
	}
	return New(ExecQuery(tool))
}

// Resolve returns the flags of pkg split into words.
func (c *Cache) Resolve(ctx context.Context, pkg string) ([]string, error) {
	c.mu.RLock()
	e, ok := c.entries[pkg]
	c.mu.RUnlock()
	if ok {
		return e.flags, e.err
	}

	v, _, _ := c.group.Do(pkg, func() (any, error) {
		c.mu.RLock()
		e, ok := c.entries[pkg]
		c.mu.RUnlock()
		if ok {
			return e, nil
		}

		e = c.lookup(ctx, pkg)
		if ctx.Err() != nil {
			// A cancelled query says nothing about the package.
			return entry{err: ctx.Err()}, nil
		}
		c.mu.Lock()
		c.entries[pkg] = e
		c.mu.Unlock()
		return e, nil
	})

	e = v.(entry) //nolint:forcetypeassert // Only entry values are stored in the group
	return e.flags, e.err
}

func (c *Cache) lookup(ctx context.Context, pkg string) entry {
	out, err := c.query(ctx, pkg)
	if err != nil {
		return entry{err: zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "library not found: "+pkg), "package", pkg)}
	}

	flags, err := shellquote.Split(string(firstLine(out)))
	if err != nil {
		return entry{err: zerr.With(zerr.Wrap(err, "failed to split package flags"), "package", pkg)}
	}
	return entry{flags: flags}
}

// firstLine returns the first line of out without surrounding whitespace.
func firstLine(out []byte) []byte {
	sc := bufio.NewScanner(bytes.NewReader(out))
	if sc.Scan() {
		return bytes.TrimSpace(sc.Bytes())
	}
	return nil
}

// ExecQuery returns a QueryFunc that runs "<tool> --cflags <pkg>".
func ExecQuery(tool string) QueryFunc {
	return func(ctx context.Context, pkg string) ([]byte, error) {
		//nolint:gosec // Tool and package names come from the project configuration
		return exec.CommandContext(ctx, tool, "--cflags", pkg).Output()
	}
}
