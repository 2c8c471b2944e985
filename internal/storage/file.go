package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const fileVersion = 1

// File keeps all entries in a single JSON document. Every Read goes back to
// disk so that writes made by another process are observed.
type File struct {
	path string
	mu   sync.Mutex
}

var _ Storage = (*File)(nil)

type persistedFile struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
	SavedAt int64             `json:"savedAt"`
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

func (f *File) Read(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

func (f *File) Write(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		// an unreadable document is replaced rather than blocking new writes
		entries = make(map[string]string)
	}
	entries[key] = value
	return f.save(entries)
}

func (f *File) Clear(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return f.save(map[string]string{})
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return f.save(entries)
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Wrapf(err, "storage: read %s", f.path)
	}
	if len(data) == 0 {
		return make(map[string]string), nil
	}

	var file persistedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "storage: decode %s", f.path)
	}
	if file.Version != fileVersion {
		return nil, errors.Errorf("storage: unsupported state version %d", file.Version)
	}
	if file.Entries == nil {
		file.Entries = make(map[string]string)
	}
	return file.Entries, nil
}

func (f *File) save(entries map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "storage: mkdir %s", dir)
	}

	file := persistedFile{Version: fileVersion, Entries: entries, SavedAt: time.Now().UnixMilli()}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.Wrap(err, "storage: encode")
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "storage: create temp")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "storage: chmod temp")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "storage: write temp")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "storage: sync temp")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "storage: close temp")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return errors.Wrap(err, "storage: rename")
	}
	return nil
}
