// Package zarr implements the subset of the zarr v2 directory store
// format needed to write chunked label arrays: hierarchical groups,
// array creation with overwrite, JSON metadata documents and compressed
// chunk storage.
package zarr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	MemoryStoreType = "MemoryStore"
	LocalStoreType  = "LocalStore"

	dirPermissionBits  = 0755
	filePermissionBits = 0644
)

// ErrNotFound is returned by Store.Get for missing keys.
var ErrNotFound = errors.New("not found")

// Store is a flat key-value namespace holding the files of a zarr
// hierarchy. Keys are slash-separated logical paths.
type Store interface {
	// Get opens the value stored under key, or ErrNotFound
	Get(key string) (io.ReadCloser, error)

	// Put creates or replaces the value under key
	Put(key string, val io.Reader) error

	// Delete removes every key equal to or nested under prefix
	Delete(prefix string) error

	// List returns the immediate child names under prefix, sorted
	List(prefix string) ([]string, error)

	// Type identifies the store implementation
	Type() string
}

// MemoryStore keeps the hierarchy in a map. Used in tests and for
// dry-run composition.
type MemoryStore struct {
	lk   sync.Mutex
	data map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Type() string { return MemoryStoreType }

func (s *MemoryStore) Get(key string) (io.ReadCloser, error) {
	s.lk.Lock()
	defer s.lk.Unlock()
	d, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return io.NopCloser(bytes.NewReader(d)), nil
}

func (s *MemoryStore) Put(key string, val io.Reader) error {
	d, err := io.ReadAll(val)
	if err != nil {
		return err
	}

	s.lk.Lock()
	defer s.lk.Unlock()
	s.data[key] = d
	return nil
}

func (s *MemoryStore) Delete(prefix string) error {
	s.lk.Lock()
	defer s.lk.Unlock()
	for k := range s.data {
		if k == prefix || strings.HasPrefix(k, prefix+"/") {
			delete(s.data, k)
		}
	}
	return nil
}

func (s *MemoryStore) List(prefix string) ([]string, error) {
	s.lk.Lock()
	defer s.lk.Unlock()

	seen := map[string]struct{}{}
	for k := range s.data {
		rest := k
		if prefix != "" {
			if !strings.HasPrefix(k, prefix+"/") {
				continue
			}
			rest = strings.TrimPrefix(k, prefix+"/")
		}
		name, _, _ := strings.Cut(rest, "/")
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// LocalStore maps keys to files under a base directory, producing the
// standard zarr directory layout.
type LocalStore struct {
	base string
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(base string) (*LocalStore, error) {
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(base, dirPermissionBits); err != nil {
		return nil, err
	}
	return &LocalStore{base: base}, nil
}

func (s *LocalStore) Type() string { return LocalStoreType }

func (s *LocalStore) Get(key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.base, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return f, err
}

func (s *LocalStore) Put(key string, val io.Reader) error {
	path := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), dirPermissionBits); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, val); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *LocalStore) Delete(prefix string) error {
	return os.RemoveAll(filepath.Join(s.base, filepath.FromSlash(prefix)))
}

func (s *LocalStore) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.base, filepath.FromSlash(prefix)))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
