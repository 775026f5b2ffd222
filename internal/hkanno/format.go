package hkanno

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutFormat is a serialization target for a saved document.
type OutFormat string

const (
	FormatAmd64 OutFormat = "amd64"
	FormatWin32 OutFormat = "win32"
	FormatXML   OutFormat = "xml"
	FormatJSON  OutFormat = "json"
	FormatTOML  OutFormat = "toml"
	FormatText  OutFormat = "txt"
)

// Formats lists every output format.
var Formats = []OutFormat{FormatAmd64, FormatWin32, FormatXML, FormatJSON, FormatTOML, FormatText}

// ParseOutFormat accepts a format name, ignoring case.
func ParseOutFormat(s string) (OutFormat, error) {
	f := OutFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Binary reports whether f is a packed Havok format.
func (f OutFormat) Binary() bool {
	return f == FormatAmd64 || f == FormatWin32
}

// Extension returns the file extension written for f, with the dot.
func (f OutFormat) Extension() string {
	switch f {
	case FormatAmd64, FormatWin32:
		return ".hkx"
	case FormatXML:
		return ".xml"
	case FormatJSON:
		return ".json"
	case FormatTOML:
		return ".toml"
	case FormatText:
		return ".txt"
	}
	return ""
}

// FormatFromPath infers the output format from an input path: .hkx files are
// saved as amd64, everything else keeps its own format, defaulting to xml.
func FormatFromPath(path string) OutFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hkx":
		return FormatAmd64
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".txt", ".hkanno":
		return FormatText
	}
	return FormatXML
}

// OutputPath derives the default save path: name.ext becomes name.modified.ext.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		return input + ".modified"
	}
	return strings.TrimSuffix(input, ext) + ".modified" + ext
}

// ChangeExtension rewrites the extension of path to match f. Unknown formats
// leave the path unchanged.
func ChangeExtension(path string, f OutFormat) string {
	ext := f.Extension()
	if ext == "" {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
