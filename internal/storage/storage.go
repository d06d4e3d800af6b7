package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/handball-tv/internal/event"
	"github.com/pfrederiksen/handball-tv/internal/schedule"
)

const (
	feedFile     = "tv-program.ics"
	snapshotFile = "snapshot.json"
)

// Snapshot records one successful generation: when it ran, what it produced
// and what the parser counted on the way.
type Snapshot struct {
	UpdatedAt string         `json:"updated_at"`
	Events    []*event.Event `json:"events"`
	Stats     schedule.Stats `json:"stats"`
}

// Store handles persistence of the generated feed and its snapshot.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, expanding a leading ~ and creating
// the directory if needed.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

// SaveFeed writes the calendar document atomically.
func (s *Store) SaveFeed(doc []byte) error {
	if err := writeFileAtomic(filepath.Join(s.dataDir, feedFile), doc); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	return nil
}

// LoadFeed returns the last saved calendar document, or nil when none has
// been saved yet.
func (s *Store) LoadFeed() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, feedFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	return data, nil
}

// SaveSnapshot stamps and writes the snapshot atomically.
func (s *Store) SaveSnapshot(snap *Snapshot) error {
	snap.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dataDir, snapshotFile), data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the last saved snapshot, or an empty one when none
// exists yet.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, snapshotFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}

// WriteFile writes data to an arbitrary path atomically, creating parent
// directories as needed. Used for one-off output paths outside the data dir.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes via a temp file in the target directory followed by
// a rename, so concurrent readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
