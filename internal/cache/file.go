package cache

import (
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const fileExt = ".json"

// FileBackend keeps one JSON file per key in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend stores files under dir. The directory is created on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// ScopeDir returns the default file backend directory for scope.
func ScopeDir(scope Scope) string {
	return filepath.Join(Dir(), string(scope))
}

// Filename returns the file name used for key. Keys are path-escaped so any
// string is a valid key.
func Filename(key string) string {
	return url.PathEscape(key) + fileExt
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, Filename(key))
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading %s", b.path(key))
	}
	return data, true, nil
}

func (b *FileBackend) Set(key string, value []byte) error {
	if err := os.MkdirAll(b.dir, 0o700); err != nil {
		return errors.Wrap(err, "creating cache directory")
	}
	return errors.WithStack(os.WriteFile(b.path(key), value, 0o600))
}

func (b *FileBackend) Remove(key string) error {
	err := os.Remove(b.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return errors.WithStack(err)
}

func (b *FileBackend) Clear() error {
	names, err := b.files()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.Remove(filepath.Join(b.dir, name)); err != nil {
			return errors.Wrapf(err, "removing %s", name)
		}
	}
	return nil
}

func (b *FileBackend) Keys() ([]string, error) {
	names, err := b.files()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) files() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading cache directory")
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), fileExt) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
