// Package notes keeps the authority's note collection in memory and
// persists it to a versioned JSON snapshot after every mutation.
package notes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/notechain/notechain/internal/common"
	"github.com/notechain/notechain/internal/logging"
	"github.com/notechain/notechain/internal/server/models"
)

// Store holds all notes. When path is empty the store is memory-only,
// which is what the tests use.
type Store struct {
	mu     sync.Mutex
	notes  map[uint64]models.Note
	nextID uint64
	path   string
	logger logging.Logger
	nowFn  func() time.Time
}

// NewStore opens the store, restoring the snapshot at path when one
// exists. A missing or unreadable snapshot starts the store empty; the
// authority must come up even if the last save was interrupted.
func NewStore(path string, logger logging.Logger) *Store {
	s := &Store{
		notes:  make(map[uint64]models.Note),
		nextID: 1,
		path:   path,
		logger: logger,
		nowFn:  time.Now,
	}
	if path != "" {
		if err := s.restore(); err != nil {
			logger.Warn(context.Background(), "note snapshot not restored, starting empty",
				"path", path, "error", err)
		}
	}
	return s
}

func (s *Store) validate(title string, content string) error {
	if title == "" {
		return &ValidationError{Msg: "Title cannot be empty."}
	}
	if content == "" {
		return &ValidationError{Msg: "Content cannot be empty."}
	}
	if size := len(title) + len(content); size > common.MaxNoteSizeBytes {
		return &ValidationError{Msg: fmt.Sprintf(
			"Note size %d exceeds the maximum of %d bytes.", size, common.MaxNoteSizeBytes)}
	}
	return nil
}

// Create validates the payload, assigns the next id and persists.
func (s *Store) Create(owner string, title string, content string) (uint64, error) {
	if err := s.validate(title, content); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.notes[id] = models.Note{
		ID:        id,
		Owner:     owner,
		Title:     title,
		Content:   content,
		CreatedAt: s.nowFn().UTC(),
	}

	if err := s.persistLocked(); err != nil {
		delete(s.notes, id)
		s.nextID--
		return 0, err
	}
	return id, nil
}

// Update replaces the title and content of the caller's note. The id,
// owner and creation time are preserved.
func (s *Store) Update(id uint64, caller string, title string, content string) error {
	if err := s.validate(title, content); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.notes[id]
	if !ok {
		return ErrNotFound
	}
	if prev.Owner != caller {
		return &ForbiddenError{Msg: "You can only update your own notes."}
	}

	next := prev
	next.Title = title
	next.Content = content
	s.notes[id] = next

	if err := s.persistLocked(); err != nil {
		s.notes[id] = prev
		return err
	}
	return nil
}

// Delete removes the caller's note.
func (s *Store) Delete(id uint64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.notes[id]
	if !ok {
		return ErrNotFound
	}
	if prev.Owner != caller {
		return &ForbiddenError{Msg: "You can only delete your own notes."}
	}

	delete(s.notes, id)

	if err := s.persistLocked(); err != nil {
		s.notes[id] = prev
		return err
	}
	return nil
}

// ListByOwner returns the caller's notes ordered by id.
func (s *Store) ListByOwner(owner string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Note, 0)
	for _, n := range s.notes {
		if n.Owner == owner {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// GetByID looks a note up without an ownership check. Anyone holding a
// note's id may read it; that is what makes shared note links work.
func (s *Store) GetByID(id uint64) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}
