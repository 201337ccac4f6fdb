package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/notechain/notechain/internal/server/models"
)

const snapshotVersion = 1

// storageV1 is the on-disk snapshot layout. The version field lets a
// future layout be told apart from this one during restore.
type storageV1 struct {
	Version int                    `json:"version"`
	NextID  uint64                 `json:"next_id"`
	Notes   map[uint64]models.Note `json:"notes"`
}

func (s *Store) restore() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var snap storageV1
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	if snap.Notes != nil {
		s.notes = snap.Notes
	}
	if snap.NextID > 0 {
		s.nextID = snap.NextID
	}
	return nil
}

// persistLocked writes the whole collection to a temporary file and
// renames it into place. Callers hold s.mu.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	snap := storageV1{Version: snapshotVersion, NextID: s.nextID, Notes: s.notes}
	data, err := json.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
