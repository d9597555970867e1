package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// MapBackend keeps values in memory.
type MapBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapBackend creates an empty in-memory backend.
func NewMapBackend() *MapBackend {
	return &MapBackend{values: make(map[string]string)}
}

// Get implements Backend.
func (m *MapBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Backend.
func (m *MapBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove implements Backend.
func (m *MapBackend) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// DirBackend stores one file per key in a directory. It is what the CLI uses
// in place of browser storage.
type DirBackend struct {
	dir string
}

// NewDirBackend creates the directory if needed.
func NewDirBackend(dir string) (*DirBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &DirBackend{dir: dir}, nil
}

func (d *DirBackend) path(key string) string {
	return filepath.Join(d.dir, url.QueryEscape(key)+".json")
}

// Get implements Backend.
func (d *DirBackend) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set implements Backend. The value is written to a temp file and renamed into place.
func (d *DirBackend) Set(key, value string) error {
	tmp, err := os.CreateTemp(d.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), d.path(key))
}

// Remove implements Backend. Removing a missing key is not an error.
func (d *DirBackend) Remove(key string) error {
	err := os.Remove(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
