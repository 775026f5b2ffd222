// Package engine loads, saves and previews annotation documents. Engine is the
// port the editor talks to; Local implements it for the text, JSON, TOML and
// XML packfile forms. Packed binary .hkx files need an external converter and
// yield ErrUnsupportedFormat.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hkanno/internal/hkanno"
	"hkanno/internal/trace"
)

// ErrUnsupportedFormat reports a file or output format Local cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported format")

// DefaultPtr names the animation object when the source does not.
const DefaultPtr = "#0003"

// Engine converts between files and the annotation model.
type Engine interface {
	Load(ctx context.Context, path string) (hkanno.Hkanno, error)
	Save(ctx context.Context, input, output string, format hkanno.OutFormat, value hkanno.Hkanno) error
	Preview(ctx context.Context, input string, value hkanno.Hkanno) (string, error)
}

// Local is the in-process engine.
type Local struct{}

// NewLocal returns the in-process engine.
func NewLocal() *Local {
	return &Local{}
}

var _ Engine = (*Local)(nil)

// Load reads path and decodes it according to its extension.
func (l *Local) Load(ctx context.Context, path string) (hkanno.Hkanno, error) {
	_, span := trace.Start(ctx, trace.ScopeDocument, "engine.load")
	defer span.WithExtra("path", path).End("")

	if err := ctx.Err(); err != nil {
		return hkanno.Hkanno{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".hkx" {
		return hkanno.Hkanno{}, fmt.Errorf("load %s: %w", path, ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return hkanno.Hkanno{}, fmt.Errorf("load %s: %w", path, err)
	}

	var h hkanno.Hkanno
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &h)
	case ".toml":
		_, err = toml.Decode(string(data), &h)
	case ".xml":
		h, err = DecodeXML(bytes.NewReader(data))
	default:
		h = hkanno.Project(hkanno.Hkanno{Ptr: DefaultPtr}, string(data))
	}
	if err != nil {
		return hkanno.Hkanno{}, fmt.Errorf("load %s: %w", path, err)
	}
	if h.Ptr == "" {
		h.Ptr = DefaultPtr
	}
	return h, nil
}

// Save encodes value in format and writes it to output atomically.
func (l *Local) Save(ctx context.Context, input, output string, format hkanno.OutFormat, value hkanno.Hkanno) error {
	_, span := trace.Start(ctx, trace.ScopeDocument, "engine.save")
	defer span.WithExtra("output", output).WithExtra("format", string(format)).End("")

	if err := ctx.Err(); err != nil {
		return err
	}
	if output == "" {
		output = hkanno.OutputPath(input)
	}
	data, err := Encode(format, value)
	if err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	if err := writeFileAtomic(output, data); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	return nil
}

// Preview renders value as the XML packfile fragment the editor shows next
// to the source.
func (l *Local) Preview(ctx context.Context, input string, value hkanno.Hkanno) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, span := trace.Start(ctx, trace.ScopeDocument, "engine.preview")
	defer span.WithExtra("input", input).End("")
	return RenderXML(value), nil
}

// Encode serializes value for format.
func Encode(format hkanno.OutFormat, value hkanno.Hkanno) ([]byte, error) {
	switch format {
	case hkanno.FormatText:
		return []byte(value.String()), nil
	case hkanno.FormatJSON:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case hkanno.FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(value); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case hkanno.FormatXML:
		return []byte(RenderXML(value)), nil
	}
	return nil, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".hkanno-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck

	if _, err := f.Write(data); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
