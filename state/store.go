// Package state persists the outcome of a successful run in the target
// directory, so a later invocation can detect an already-initialized
// project and let the host decide whether to re-run.
package state

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// FileName is the well-known state file name in the target directory.
const FileName = ".scaffoldfy.json"

// Record is the persisted outcome of a successful non-dry run.
type Record struct {
	RunID          string    `json:"runId"`
	InitializedAt  time.Time `json:"initializedAt"`
	Config         string    `json:"config"`
	CompletedTasks []string  `json:"completedTasks"`
	Version        string    `json:"version"`
}

// NewRecord creates a record for a finished run.
func NewRecord(configPath, version string, completed []string) *Record {
	return &Record{
		RunID:          uuid.NewString(),
		InitializedAt:  time.Now().UTC(),
		Config:         configPath,
		CompletedTasks: completed,
		Version:        version,
	}
}

// Store reads and writes run records in a target directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a store rooted at the target directory.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, FileName)
}

// Exists reports whether a state record is present, signaling an
// already-initialized target.
func (s *Store) Exists() bool {
	_, err := s.fs.Stat(s.path())
	return err == nil
}

// Load reads the persisted record.
func (s *Store) Load() (*Record, error) {
	data, err := afero.ReadFile(s.fs, s.path())
	if err != nil {
		return nil, fmt.Errorf("state: reading %s: %w", s.path(), err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("state: parsing %s: %w", s.path(), err)
	}
	return &rec, nil
}

// Save writes the record, replacing any previous one.
func (s *Store) Save(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encoding record: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path(), data, 0o644); err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path(), err)
	}
	return nil
}
