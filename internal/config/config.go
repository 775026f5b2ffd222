// Package config loads hkanno.toml.
//
//	[lsp]
//	debounce_ms = 200
//	max_diagnostics = 100
//
//	[inlay_hints]
//	time = true
//	event = true
//	args = true
//
//	[editor]
//	state_dir = ".hkanno"
//	state_codec = "msgpack"
//	show_preview = true
//
//	[check]
//	warnings_as_errors = false
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"hkanno/internal/kvstore"
	"hkanno/internal/langsvc"
)

// Config is the merged configuration.
type Config struct {
	// Path is the file the values came from; empty for defaults.
	Path string `toml:"-"`

	LSP        LSP        `toml:"lsp"`
	InlayHints InlayHints `toml:"inlay_hints"`
	Editor     Editor     `toml:"editor"`
	Check      Check      `toml:"check"`
}

type LSP struct {
	DebounceMS     int `toml:"debounce_ms"`
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type InlayHints struct {
	Time  bool `toml:"time"`
	Event bool `toml:"event"`
	Args  bool `toml:"args"`
}

type Editor struct {
	// StateDir is relative to the config file. Empty means the user state dir.
	StateDir    string `toml:"state_dir"`
	StateCodec  string `toml:"state_codec"`
	ShowPreview bool   `toml:"show_preview"`
}

type Check struct {
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

// ErrUnknownKeys is wrapped when the file holds keys Config does not know.
var ErrUnknownKeys = errors.New("unknown keys")

// Default returns the configuration used without a file.
func Default() Config {
	hints := langsvc.DefaultHintOptions
	return Config{
		LSP:        LSP{DebounceMS: 200, MaxDiagnostics: 100},
		InlayHints: InlayHints{Time: hints.Time, Event: hints.Event, Args: hints.Args},
		Editor:     Editor{StateCodec: string(kvstore.CodecMsgpack), ShowPreview: true},
	}
}

// Load finds hkanno.toml from startDir upward and decodes it over the
// defaults. A missing file yields Default.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile decodes path over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.LSP.DebounceMS < 0 {
		return fmt.Errorf("[lsp].debounce_ms must be >= 0, got %d", c.LSP.DebounceMS)
	}
	if c.LSP.MaxDiagnostics < 0 {
		return fmt.Errorf("[lsp].max_diagnostics must be >= 0, got %d", c.LSP.MaxDiagnostics)
	}
	if _, err := kvstore.ParseCodec(c.Editor.StateCodec); err != nil {
		return fmt.Errorf("[editor].state_codec: %w", err)
	}
	return nil
}

// Debounce is LSP.DebounceMS as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.LSP.DebounceMS) * time.Millisecond
}

// Hints converts the inlay hint section.
func (c Config) Hints() langsvc.HintOptions {
	return langsvc.HintOptions{Time: c.InlayHints.Time, Event: c.InlayHints.Event, Args: c.InlayHints.Args}
}

// StateDir resolves where editor state is kept.
func (c Config) StateDir() (string, error) {
	dir := strings.TrimSpace(c.Editor.StateDir)
	if dir == "" {
		return kvstore.DefaultDir("hkanno")
	}
	dir = filepath.FromSlash(dir)
	if filepath.IsAbs(dir) || c.Path == "" {
		return dir, nil
	}
	return filepath.Join(filepath.Dir(c.Path), dir), nil
}

// OpenState opens the editor state store.
func (c Config) OpenState() (*kvstore.FileStore, error) {
	dir, err := c.StateDir()
	if err != nil {
		return nil, err
	}
	codec, err := kvstore.ParseCodec(c.Editor.StateCodec)
	if err != nil {
		return nil, err
	}
	return kvstore.Open(dir, codec)
}
