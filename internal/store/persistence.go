package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// SchemaVersion is the current storage file schema version.
const SchemaVersion = 1

// ErrCorruptStorage is returned when a storage file cannot be parsed.
// RecoverFromCorruption moves such a file aside.
var ErrCorruptStorage = errors.New("storage file is corrupt")

// storageFile is the on-disk layout of one origin's storage.
type storageFile struct {
	SchemaVersion int               `json:"themeswitch_schema_version"`
	Origin        string            `json:"origin"`
	UpdatedAt     int64             `json:"updated_at"`
	Items         map[string]string `json:"items"`
}

// FileStore implements Store with one JSON file per origin. Every Set
// re-reads the file, so keys written by other processes are kept, and replaces
// it atomically.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	origin string
	items  map[string]string
	closed bool

	changes broadcaster
}

// OriginFilename turns an origin into a file name:
// "https://app.example:8443" becomes "https_app.example_8443".
func OriginFilename(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return "default"
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range origin {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	name := strings.Trim(b.String(), "_.")
	if name == "" {
		return "default"
	}
	return name
}

// StoragePath returns the storage file path for origin under dir.
func StoragePath(dir, origin string) string {
	return filepath.Join(dir, OriginFilename(origin)+".json")
}

// NewFileStore opens the storage file at path, creating parent directories.
// A missing file is an empty store.
func NewFileStore(path, origin string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	items, err := readStorageFile(path)
	if err != nil {
		return nil, err
	}

	return &FileStore{
		path:   path,
		origin: origin,
		items:  items,
	}, nil
}

// readStorageFile loads the items in path. A missing file yields an empty map.
func readStorageFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return make(map[string]string), nil
	}

	var sf storageFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", path, ErrCorruptStorage, err)
	}

	if sf.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
			sf.SchemaVersion, SchemaVersion)
	}

	if sf.Items == nil {
		sf.Items = make(map[string]string)
	}
	return sf.Items, nil
}

// Path returns the storage file path.
func (s *FileStore) Path() string {
	return s.path
}

// Origin returns the origin this store is scoped to.
func (s *FileStore) Origin() string {
	return s.origin
}

// Get returns the value for key as of the last load or write.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrStoreClosed
	}
	v, ok := s.items[key]
	return v, ok, nil
}

// Set stores value under key and writes the file.
func (s *FileStore) Set(key, value string) error {
	return s.update(func(items map[string]string) {
		items[key] = value
	})
}

// Delete removes key and writes the file.
func (s *FileStore) Delete(key string) error {
	return s.update(func(items map[string]string) {
		delete(items, key)
	})
}

// update applies fn to the latest on-disk items and rewrites the file.
func (s *FileStore) update(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	items, err := readStorageFile(s.path)
	if err != nil {
		return err
	}
	fn(items)

	if err := s.write(items); err != nil {
		return err
	}
	s.items = items
	return nil
}

// write replaces the storage file atomically.
func (s *FileStore) write(items map[string]string) error {
	sf := storageFile{
		SchemaVersion: SchemaVersion,
		Origin:        s.origin,
		UpdatedAt:     time.Now().Unix(),
		Items:         items,
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *FileStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	return slices.Sorted(maps.Keys(s.items)), nil
}

// Reload re-reads the file and notifies subscribers of every changed key.
func (s *FileStore) Reload() ([]ChangeEvent, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}

	items, err := readStorageFile(s.path)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	events := diff(s.items, items)
	s.items = items
	s.mu.Unlock()

	for _, ev := range events {
		s.changes.notify(ev)
	}
	return events, nil
}

// Subscribe returns a channel receiving changes found by Reload.
func (s *FileStore) Subscribe() <-chan ChangeEvent {
	return s.changes.subscribe()
}

// ModTime returns the last modification time of the storage file, or the
// zero time if it does not exist yet.
func (s *FileStore) ModTime() time.Time {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Close releases the store and closes subscriber channels.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.changes.close()
	return nil
}

// RecoverFromCorruption moves an unreadable storage file aside so the next
// open starts empty. Returns the backup path.
func RecoverFromCorruption(path string) (string, error) {
	backupPath := path + ".corrupted." + time.Now().Format("20060102-150405")
	if err := os.Rename(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to backup corrupted file: %w", err)
	}
	return backupPath, nil
}
