package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExchangeRecord is the audit record of one completed run: the message, the
// reply, and the memory blob before and after distillation. The archive is
// never read back into a prompt (the in-process log owns prompt chronology);
// it exists so past exchanges stay inspectable and searchable.
type ExchangeRecord struct {
	ID             string    `json:"id"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	UserMessage    string    `json:"user_message"`
	AssistantReply string    `json:"assistant_reply"`
	MemoryBefore   string    `json:"memory_before"`
	MemoryAfter    string    `json:"memory_after,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExchangeArchive persists exchange records as JSON files under
// <dataDir>/exchanges.
type ExchangeArchive struct {
	dir string
}

// NewExchangeArchive creates the archive directory if needed.
func NewExchangeArchive(dataDir string) (*ExchangeArchive, error) {
	dir := filepath.Join(dataDir, "exchanges")

	// 0700 - records contain conversation history
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create exchanges directory: %w", err)
	}

	return &ExchangeArchive{dir: dir}, nil
}

// Append writes one record to the archive. A missing ID or timestamp is
// filled in.
func (a *ExchangeArchive) Append(rec *ExchangeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal exchange record: %w", err)
	}

	path := filepath.Join(a.dir, rec.ID+".json")
	// 0600 - records contain conversation history
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write exchange record: %w", err)
	}

	return nil
}

// Load reads one record by ID.
func (a *ExchangeArchive) Load(id string) (*ExchangeRecord, error) {
	path := filepath.Join(a.dir, id+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange record: %w", err)
	}

	var rec ExchangeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exchange record: %w", err)
	}

	return &rec, nil
}

// List returns all records, newest first. Corrupted files are skipped.
func (a *ExchangeArchive) List() ([]ExchangeRecord, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read exchanges directory: %w", err)
	}

	var records []ExchangeRecord

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(a.dir, entry.Name()))
		if err != nil {
			continue // Skip unreadable files
		}

		var rec ExchangeRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue // Skip corrupted files
		}

		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// Dir returns the archive directory.
func (a *ExchangeArchive) Dir() string {
	return a.dir
}
