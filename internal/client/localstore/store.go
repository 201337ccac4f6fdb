package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/notechain/notechain/internal/identity"
	"github.com/notechain/notechain/internal/client/models"
	"github.com/notechain/notechain/internal/common"
)

const (
	notesRecordKey   = "notechain/notes"
	profileRecordKey = "notechain/profile"
)

// nowFn and newNoteID are test seams.
var nowFn = time.Now

func newNoteID() string {
	return fmt.Sprintf("note_%d_%s", nowFn().UnixMilli(), uuid.NewString()[:8])
}

// Store holds the local note collection. The in-memory slice mirrors the
// durable record; every mutation goes through the CRUD methods, which keep
// the two synchronized by rewriting the record in full.
type Store struct {
	db *badger.DB

	mu    sync.Mutex
	notes []models.LocalNote
}

// NewStore loads the note collection from db. A missing record means an
// empty collection, not an error.
func NewStore(db *badger.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(notesRecordKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read notes record: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s.notes)
		})
	})
}

// persist rewrites the whole collection record. Callers must hold s.mu.
func (s *Store) persist() error {
	data, err := json.Marshal(s.notes)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(notesRecordKey), data)
	})
}

// Fetch returns the notes, filtered to one owner when userID is non-empty.
// The signature is fallible for symmetry with the remote client even though
// no network is involved.
func (s *Store) Fetch(userID string) ([]models.LocalNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.LocalNote, 0, len(s.notes))
	for _, n := range s.notes {
		if userID == "" || n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

// normalizeNote applies the shared trimming and defaulting rule: whitespace
// is trimmed, and an empty title collapses to the placeholder label.
func normalizeNote(title, content string) (string, string) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		title = common.UntitledNoteTitle
	}
	return title, content
}

// Create appends a new note and returns its freshly assigned id.
// Created and updated timestamps are equal at creation time.
func (s *Store) Create(title, content, userID string) (string, error) {
	title, content = normalizeNote(title, content)
	if err := models.ValidateNoteSize(title, content); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowFn()
	note := models.LocalNote{
		ID:        newNoteID(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, note)

	if err := s.persist(); err != nil {
		// Roll the in-memory mirror back so it stays in sync with disk.
		s.notes = s.notes[:len(s.notes)-1]
		return "", err
	}
	return note.ID, nil
}

// Update replaces title and content of an existing note and refreshes its
// updated timestamp. Id, owner and created timestamp never change.
func (s *Store) Update(id, title, content string) error {
	title, content = normalizeNote(title, content)
	if err := models.ValidateNoteSize(title, content); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.notes {
		if s.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: note %s", common.ErrorNotFound, id)
	}

	prev := s.notes[idx]
	now := nowFn()
	if now.Before(prev.UpdatedAt) {
		now = prev.UpdatedAt
	}
	s.notes[idx].Title = title
	s.notes[idx].Content = content
	s.notes[idx].UpdatedAt = now

	if err := s.persist(); err != nil {
		s.notes[idx] = prev
		return err
	}
	return nil
}

// Delete removes the note if present. Deleting an id that does not exist is
// a no-op reported as success.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.LocalNote, 0, len(s.notes))
	removed := false
	for _, n := range s.notes {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	if !removed {
		return nil
	}

	prev := s.notes
	s.notes = kept
	if err := s.persist(); err != nil {
		s.notes = prev
		return err
	}
	return nil
}

// SaveCredential persists the session credential in the profile record.
func (s *Store) SaveCredential(c identity.Credential) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profileRecordKey), data)
	})
}

// LoadCredential returns the persisted session credential, or
// common.ErrorNotFound when none has been saved.
func (s *Store) LoadCredential() (identity.Credential, error) {
	var c identity.Credential
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileRecordKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return common.ErrorNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &c)
		})
	})
	return c, err
}

// ClearCredential removes the persisted credential. Clearing when nothing
// is saved is not an error.
func (s *Store) ClearCredential() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(profileRecordKey))
	})
}
