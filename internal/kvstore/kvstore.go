// Package kvstore persists small keyed records on disk, one file per key.
// Writes go through a temporary file and an atomic rename so a crash never
// leaves a torn record behind. Safe for concurrent use.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec chooses the on-disk encoding.
type Codec string

const (
	CodecMsgpack Codec = "msgpack"
	CodecJSON    Codec = "json"
)

// ParseCodec accepts "msgpack" (the default for "") or "json".
func ParseCodec(s string) (Codec, error) {
	switch Codec(s) {
	case "", CodecMsgpack:
		return CodecMsgpack, nil
	case CodecJSON:
		return CodecJSON, nil
	}
	return "", fmt.Errorf("unknown state codec %q (expected: msgpack|json)", s)
}

func (c Codec) ext() string {
	if c == CodecJSON {
		return ".json"
	}
	return ".mp"
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore keeps each key in dir/<key>.<ext>.
type FileStore struct {
	mu    sync.RWMutex
	dir   string
	codec Codec
}

// Open creates dir if needed and returns a store using codec.
func Open(dir string, codec Codec) (*FileStore, error) {
	if codec == "" {
		codec = CodecMsgpack
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, codec: codec}, nil
}

// DefaultDir is $XDG_STATE_HOME/<app>, falling back to ~/.local/state/<app>.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, app), nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) pathFor(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+s.codec.ext()), nil
}

// Put encodes v and replaces the record stored under key.
func (s *FileStore) Put(key string, v any) error {
	if s == nil {
		return nil
	}
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck

	if err := s.encode(f, v); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get decodes the record under key into out. ok is false when no record exists.
func (s *FileStore) Get(key string, out any) (bool, error) {
	if s == nil {
		return false, nil
	}
	p, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close() //nolint:errcheck

	if err := s.decode(f, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes key. Missing keys are not an error.
func (s *FileStore) Delete(key string) error {
	if s == nil {
		return nil
	}
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) encode(w io.Writer, v any) error {
	if s.codec == CodecJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(v)
}

func (s *FileStore) decode(r io.Reader, out any) error {
	if s.codec == CodecJSON {
		return json.NewDecoder(r).Decode(out)
	}
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	return dec.Decode(out)
}
