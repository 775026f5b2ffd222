package diagfmt

import (
	"path/filepath"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows paths under the working directory relative to it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts auto, absolute, relative or basename.
func ParsePathMode(s string) (PathMode, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PathModeAuto, true
	case "absolute", "abs":
		return PathModeAbsolute, true
	case "relative", "rel":
		return PathModeRelative, true
	case "basename", "base":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// BaseDir anchors relative paths; empty means the working directory.
	BaseDir string
	// NoSource suppresses the quoted line and underline.
	NoSource bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // truncates output, 0 means all
}

func displayPath(path string, mode PathMode, base string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if base == "" {
		base = "."
	}
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(baseAbs, abs)
	if err != nil {
		return path
	}
	if mode == PathModeAuto && strings.HasPrefix(rel, "..") {
		return abs
	}
	return filepath.ToSlash(rel)
}
