package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt means the stored value exists but is not valid JSON for the
	// requested type. Callers decide whether to degrade to empty or drop it.
	ErrCorrupt = errors.New("corrupt value")
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// KV is a durable key-value store backed by one JSON file per key.
// It plays the role the browser's localStorage plays for the web UI: carts
// and response caches survive a restart but nothing else does.
type KV struct {
	root string
}

func NewKV(root string) (*KV, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &KV{root: root}, nil
}

func (s *KV) path(key string) string {
	return filepath.Join(s.root, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s *KV) Get(key string, out any) error {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}

// Set writes via a temp file and rename so readers never see a partial value.
func (s *KV) Set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p := s.path(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (s *KV) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
