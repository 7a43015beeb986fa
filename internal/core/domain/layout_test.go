package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lathe/internal/core/domain"
)

func TestResolvePath(t *testing.T) {
	root := filepath.FromSlash("/work/project")
	abs := filepath.FromSlash("/tmp/out/a.o")

	assert.Equal(t, filepath.Join(root, "build", "a.o"), domain.ResolvePath(root, filepath.Join("build", "a.o")))
	assert.Equal(t, abs, domain.ResolvePath(root, abs))
}

func TestStatePaths(t *testing.T) {
	assert.Equal(t, filepath.Join("build", ".lathe"), domain.StatePath("build"))
	assert.Equal(t, filepath.Join("build", ".lathe", "store"), domain.StorePath("build"))
	assert.Equal(t, filepath.Join("build", ".lathe", "state.db"), domain.StateDBPath("build"))
	assert.Equal(t, filepath.Join("build", ".lathe", "progress.jsonl"), domain.ProgressPath("build"))
}
