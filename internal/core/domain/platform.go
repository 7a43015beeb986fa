package domain

import (
	"runtime"
	"strings"
)

// DefaultPlatform is the platform string used when none is configured.
func DefaultPlatform() string {
	return runtime.GOOS
}

func isWindowsPlatform(platform string) bool {
	return platform == "msys" || platform == "windows" || strings.HasPrefix(platform, "win32")
}

// SharedLibraryName picks the shared library file name convention for platform.
// literal is only honoured on Windows-style platforms, where DLL names are chosen by hand.
func SharedLibraryName(platform string, lib Library, literal string) string {
	switch {
	case isWindowsPlatform(platform):
		if literal != "" {
			return literal
		}
		return "lib" + lib.Name + ".dll"
	case platform == "darwin":
		return "lib" + lib.Name + "." + lib.Major() + ".dylib"
	case strings.Contains(platform, "openbsd"):
		return "lib" + lib.Name + ".so." + lib.Version
	default:
		return "lib" + lib.Name + ".so"
	}
}

// CreatesSymlink reports whether the development symlink stage runs on platform.
// The condition is kept literally: kfreebsd, or anything that is not a BSD.
func CreatesSymlink(platform string) bool {
	return strings.Contains(platform, "kfreebsd") || !strings.Contains(platform, "bsd")
}
