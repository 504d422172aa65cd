package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const memoryDBName = "memory.db"

// SQLiteStore is the sqlite memory backend, selected with
// `[memory] backend = "sqlite"` in the user config. The blob lives in a
// single-row table; sqlite's transactional writes give the same
// no-torn-reads guarantee the file backend gets from rename.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex

	// OnCorrupt mirrors FileStore.OnCorrupt.
	OnCorrupt func(err error)
}

// NewSQLiteStore opens (and if needed creates) the memory database under
// dataDir.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(dataDir, memoryDBName)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, path: dbPath}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memory (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		blob TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Load implements MemoryStore.Load.
func (s *SQLiteStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save implements MemoryStore.Save with an upsert on the single row.
func (s *SQLiteStore) Save(blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(blob)
}

// Update implements MemoryStore.Update.
func (s *SQLiteStore) Update(fn func(old string) (string, error)) error {
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
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) loadLocked() (string, error) {
	var blob string
	err := s.db.QueryRow(`SELECT blob FROM memory WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		// Expected first-run state, not an error.
		return DefaultMemory, nil
	}
	if err != nil {
		return "", &UnavailableError{Path: s.path, Op: "load", Err: err}
	}

	if !usable(blob) {
		if s.OnCorrupt != nil {
			s.OnCorrupt(fmt.Errorf("memory row in %s is empty or blank", s.path))
		}
		return DefaultMemory, nil
	}
	return blob, nil
}

func (s *SQLiteStore) saveLocked(blob string) error {
	_, err := s.db.Exec(`
		INSERT INTO memory (id, blob, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		blob, time.Now().UTC(),
	)
	if err != nil {
		return &UnavailableError{Path: s.path, Op: "save", Err: err}
	}
	return nil
}
