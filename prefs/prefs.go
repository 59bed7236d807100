package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v2"
)

// Store is a typed key/value preference store.
type Store interface {
	Int(key string, def int) int
	SetInt(key string, v int)
	Float(key string, def float64) float64
	SetFloat(key string, v float64)
	Bool(key string, def bool) bool
	SetBool(key string, v bool)
	String(key string, def string) string
	SetString(key string, v string)
	Has(key string) bool
	Delete(key string)
}

// File is a Store backed by a YAML document. Changes stay in memory until
// Save is called. File is safe for concurrent use.
type File struct {
	mu     sync.RWMutex
	path   string
	values map[string]interface{}
}

var _ Store = (*File)(nil)

// New returns an empty in-memory store. Save on it is a no-op.
func New() *File {
	return &File{values: make(map[string]interface{})}
}

// Open loads the store at path. A missing file yields an empty store that
// will be created on Save.
func Open(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]interface{})}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("prefs: parse %s: %w", path, err)
	}
	if f.values == nil {
		f.values = make(map[string]interface{})
	}
	return f, nil
}

// Path returns the backing file, or "" for an in-memory store.
func (f *File) Path() string {
	return f.path
}

// Save writes the store to its file, creating parent directories.
// The file is replaced atomically.
func (f *File) Save() error {
	if f.path == "" {
		return nil
	}

	f.mu.RLock()
	data, err := yaml.Marshal(f.values)
	f.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("prefs: write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("prefs: write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}

// Keys returns all keys in sorted order.
func (f *File) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *File) get(key string) (interface{}, bool) {
	f.mu.RLock()
	v, ok := f.values[key]
	f.mu.RUnlock()
	return v, ok
}

func (f *File) set(key string, v interface{}) {
	f.mu.Lock()
	f.values[key] = v
	f.mu.Unlock()
}

// Int returns the integer stored under key.
func (f *File) Int(key string, def int) int {
	v, _ := f.get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	}
	return def
}

// SetInt stores an integer.
func (f *File) SetInt(key string, v int) { f.set(key, v) }

// Float returns the number stored under key. Integers are accepted since
// YAML writes whole floats without a fraction.
func (f *File) Float(key string, def float64) float64 {
	v, _ := f.get(key)
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return def
}

// SetFloat stores a number.
func (f *File) SetFloat(key string, v float64) { f.set(key, v) }

// Bool returns the boolean stored under key.
func (f *File) Bool(key string, def bool) bool {
	if b, ok := f.value(key).(bool); ok {
		return b
	}
	return def
}

// SetBool stores a boolean.
func (f *File) SetBool(key string, v bool) { f.set(key, v) }

// String returns the string stored under key.
func (f *File) String(key string, def string) string {
	if s, ok := f.value(key).(string); ok {
		return s
	}
	return def
}

// SetString stores a string.
func (f *File) SetString(key string, v string) { f.set(key, v) }

// Has reports whether key is present.
func (f *File) Has(key string) bool {
	_, ok := f.get(key)
	return ok
}

// Delete removes key.
func (f *File) Delete(key string) {
	f.mu.Lock()
	delete(f.values, key)
	f.mu.Unlock()
}

func (f *File) value(key string) interface{} {
	v, _ := f.get(key)
	return v
}
