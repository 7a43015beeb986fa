package pkgconfig_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lathe/internal/adapters/pkgconfig"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCache_Memoizes(t *testing.T) {
	var calls atomic.Int32
	cache := pkgconfig.New(func(_ context.Context, pkg string) ([]byte, error) {
		calls.Add(1)
		return []byte("-I/usr/include/" + pkg + " -pthread\nignored second line\n"), nil
	})

	for range 3 {
		flags, err := cache.Resolve(t.Context(), "glib-2.0")
		require.NoError(t, err)
		assert.Equal(t, []string{"-I/usr/include/glib-2.0", "-pthread"}, flags)
	}
	assert.Equal(t, int32(1), calls.Load())

	_, err := cache.Resolve(t.Context(), "gio-2.0")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_ConcurrentCallersShareOneQuery(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	cache := pkgconfig.New(func(_ context.Context, _ string) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("-DX"), nil
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			flags, err := cache.Resolve(context.Background(), "glib-2.0")
			assert.NoError(t, err)
			assert.Equal(t, []string{"-DX"}, flags)
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_FailureIsFatalAndMemoized(t *testing.T) {
	var calls atomic.Int32
	cache := pkgconfig.New(func(_ context.Context, _ string) ([]byte, error) {
		calls.Add(1)
		return nil, errors.New("exit status 1")
	})

	_, err := cache.Resolve(t.Context(), "gtk+-9.0")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "gtk+-9.0", zErr.Metadata()["package"])
	assert.Contains(t, err.Error(), "library not found: gtk+-9.0")

	_, err = cache.Resolve(t.Context(), "gtk+-9.0")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecQuery(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "fake-pkg-config")
	script := "#!/bin/sh\n" +
		"if [ \"$2\" = \"missing\" ]; then exit 1; fi\n" +
		"echo \"-I/opt/$2/include\"\n"
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o700)) //nolint:gosec // Test script must be executable

	cache := pkgconfig.New(pkgconfig.ExecQuery(tool))

	flags, err := cache.Resolve(t.Context(), "xmlbird")
	require.NoError(t, err)
	assert.Equal(t, []string{"-I/opt/xmlbird/include"}, flags)

	_, err = cache.Resolve(t.Context(), "missing")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestNewDefault_UsesEnvironment(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "pc")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\necho -DFROM_ENV\n"), 0o700)) //nolint:gosec // Test script must be executable
	t.Setenv("PKG_CONFIG", tool)

	flags, err := pkgconfig.NewDefault().Resolve(t.Context(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"-DFROM_ENV"}, flags)
}
