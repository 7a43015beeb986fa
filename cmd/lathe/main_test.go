package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "List with discovered config",
			args:         []string{"lathe", "list"},
			expectedExit: 0,
		},
		{
			name:         "Version",
			args:         []string{"lathe", "version"},
			expectedExit: 0,
		},
		{
			name:         "Error with missing config",
			args:         []string{"lathe", "-c", "nonexistent.yaml", "list"},
			expectedExit: 1,
		},
		{
			name:         "Error with unknown target",
			args:         []string{"lathe", "build", "nope"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configContent := `modules:
  - dir: libdemo
    library: demo
    version: 0.1.0
`
			if err := os.WriteFile(filepath.Join(tmpDir, "lathe.yaml"), []byte(configContent), 0o600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if err := os.MkdirAll(filepath.Join(tmpDir, "libdemo"), 0o750); err != nil {
				t.Fatalf("failed to create module: %v", err)
			}
			if err := os.WriteFile(filepath.Join(tmpDir, "libdemo", "demo.c"), []byte("int demo;\n"), 0o600); err != nil {
				t.Fatalf("failed to write source: %v", err)
			}

			// Change to tmpDir for config discovery
			originalWd, _ := os.Getwd()
			if err := os.Chdir(tmpDir); err != nil {
				t.Fatalf("failed to chdir: %v", err)
			}
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args

			exitCode := run()
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestRun_FailedTaskExitsOne(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tmpDir := t.TempDir()
	configContent := `modules:
  - dir: libdemo
    library: demo
    version: 0.1.0
    packages: [lathe-no-such-package]
`
	if err := os.WriteFile(filepath.Join(tmpDir, "lathe.yaml"), []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "libdemo"), 0o750); err != nil {
		t.Fatalf("failed to create module: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "libdemo", "demo.c"), []byte("int demo;\n"), 0o600); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	// "false" exits non-zero for every query, so the package is never found.
	t.Setenv("PKG_CONFIG", "false")
	t.Chdir(tmpDir)

	os.Args = []string{"lathe", "build", "-j", "1"}
	assert.Equal(t, 1, run())
	assert.NoFileExists(t, filepath.Join(tmpDir, "build", "libdemo", "demo.o"))
}
