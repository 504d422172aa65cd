package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const memoryFileName = "memory.json"

// FileStore is the default memory backend: a single file under the data
// directory, read and written whole.
//
// Writes go through a temp file in the same directory followed by a rename,
// so a reader never observes a partially written blob.
type FileStore struct {
	path string
	mu   sync.Mutex

	// OnCorrupt, if set, is called when a load finds unusable content and
	// substitutes DefaultMemory. Diagnostics only; the load still succeeds.
	OnCorrupt func(err error)
}

// NewFileStore creates a file-backed memory store under dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	// 0700 - memory may contain sensitive conversation context
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileStore{
		path: filepath.Join(dataDir, memoryFileName),
	}, nil
}

// Load returns the persisted blob, DefaultMemory on first run or when the
// content is unusable, and an *UnavailableError when the file exists but
// cannot be read.
func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save persists the blob atomically with 0600 permissions.
func (s *FileStore) Save(blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(blob)
}

// Update runs fn on the current blob and persists the result, all inside the
// store's critical section.
func (s *FileStore) Update(fn func(old string) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.loadLocked()
	if err != nil {
		return err
	}
	next, err := fn(old)
	if err != nil {
		return err
	}
	return s.saveLocked(next)
}

// Location implements MemoryStore.Location.
func (s *FileStore) Location() string {
	return s.path
}

func (s *FileStore) loadLocked() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Expected first-run state, not an error.
			return DefaultMemory, nil
		}
		return "", &UnavailableError{Path: s.path, Op: "load", Err: err}
	}

	blob := string(data)
	if !usable(blob) {
		if s.OnCorrupt != nil {
			s.OnCorrupt(fmt.Errorf("memory file %s is empty or blank", s.path))
		}
		return DefaultMemory, nil
	}
	return blob, nil
}

func (s *FileStore) saveLocked(blob string) error {
	dir := filepath.Dir(s.path)

	// Write to a temp file in the same directory, then rename over the
	// target. Rename within one directory is atomic on POSIX filesystems.
	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return &UnavailableError{Path: s.path, Op: "save", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &UnavailableError{Path: s.path, Op: "save", Err: err}
	}
	// 0600 - memory contains distilled conversation history
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &UnavailableError{Path: s.path, Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &UnavailableError{Path: s.path, Op: "save", Err: err}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &UnavailableError{Path: s.path, Op: "save", Err: err}
	}
	return nil
}
