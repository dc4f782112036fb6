package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/deusflow/geointel/internal/intel"
)

// Snapshot is the bundled static feed on disk: a JSON array of records,
// or a full {items, minerals} envelope.
type Snapshot struct {
	path string
	mu   sync.Mutex
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

func (s *Snapshot) Path() string { return s.path }

// Load reads and parses the snapshot. Read and parse errors are returned
// as is.
func (s *Snapshot) Load() ([]intel.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	feed, err := intel.DecodeFeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", s.path, err)
	}
	return feed.Items, nil
}

// Save writes records as an indented JSON array. The file is replaced
// atomically so a concurrent Load never sees a partial write.
func (s *Snapshot) Save(records []intel.Record) error {
	if records == nil {
		records = []intel.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
