package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lathe/internal/adapters/logger"
	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/zerr"
)

func newLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	return l, &buf
}

func TestLogger_Info(t *testing.T) {
	l, buf := newLogger()

	l.Info("valac --ccode --basedir build/src a.vala")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="valac --ccode --basedir build/src a.vala"`)
}

func TestLogger_Warn(t *testing.T) {
	l, buf := newLogger()

	l.Warn("state not saved")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `msg="state not saved"`)
}

func TestLogger_DebugRequiresLevel(t *testing.T) {
	l, buf := newLogger()

	l.Debug("skipping src.compile:a.o")
	assert.Empty(t, buf.String())

	l.SetLevel(domain.LogLevelDebug)
	l.Debug("skipping src.compile:a.o")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestLogger_Error(t *testing.T) {
	l, buf := newLogger()

	err := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "cannot resolve flags"), "package", "gtk+-9.0")
	l.Error(err)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "package not found")
	assert.Contains(t, out, "package=gtk+-9.0")
}

func TestLogger_ErrorCollectsMetadataOfEveryLayer(t *testing.T) {
	l, buf := newLogger()

	inner := zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "library not found: no-such-pkg"), "package", "no-such-pkg")
	outer := zerr.With(fmt.Errorf("%w: %w", domain.ErrTaskExecutionFailed, inner), "task", "libdemo.compile:demo.o")
	l.Error(zerr.Wrap(errors.Join(outer, errors.New("other")), "build execution failed"))

	out := buf.String()
	assert.Contains(t, out, "package=no-such-pkg")
	assert.Contains(t, out, "task=libdemo.compile:demo.o")
	assert.Contains(t, out, "library not found: no-such-pkg")
}

func TestLogger_ErrorOuterMetadataWins(t *testing.T) {
	l, buf := newLogger()

	inner := zerr.With(errors.New("boom"), "file", "inner.c")
	l.Error(zerr.With(zerr.Wrap(inner, "copy failed"), "file", "outer.c"))

	out := buf.String()
	assert.Contains(t, out, "file=outer.c")
	assert.NotContains(t, out, "file=inner.c")
}

func TestLogger_ErrorPlain(t *testing.T) {
	l, buf := newLogger()

	l.Error(errors.New("boom"))

	assert.Contains(t, buf.String(), "error=boom")
}
