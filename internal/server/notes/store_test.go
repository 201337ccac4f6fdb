package notes

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notechain/notechain/internal/common"
	"github.com/notechain/notechain/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore("", logging.Nop())
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.Create("alice", "First", "one")
	require.NoError(t, err)
	id2, err := s.Create("alice", "Second", "two")
	require.NoError(t, err)

	require.Equal(t, uint64(1), id1)
	require.Equal(t, uint64(2), id2)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("alice", "", "content")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "Title cannot be empty.", validation.Msg)
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("alice", "Title", "")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "Content cannot be empty.", validation.Msg)
}

func TestCreateRejectsOversizedNote(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("alice", "T", strings.Repeat("x", common.MaxNoteSizeBytes))

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Contains(t, validation.Msg, "exceeds the maximum")
}

func TestListByOwnerFiltersAndOrders(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create("alice", "A1", "x")
	require.NoError(t, err)
	_, err = s.Create("bob", "B1", "x")
	require.NoError(t, err)
	_, err = s.Create("alice", "A2", "x")
	require.NoError(t, err)

	result := s.ListByOwner("alice")
	require.Len(t, result, 2)
	require.Equal(t, "A1", result[0].Title)
	require.Equal(t, "A2", result[1].Title)

	require.Empty(t, s.ListByOwner("carol"))
}

func TestGetByIDIsPublic(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create("alice", "Shared", "anyone can read this by id")
	require.NoError(t, err)

	note, err := s.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, "alice", note.Owner)
	require.Equal(t, "Shared", note.Title)

	_, err = s.GetByID(999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create("alice", "Mine", "x")
	require.NoError(t, err)

	err = s.Update(id, "bob", "Stolen", "y")
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	require.NoError(t, s.Update(id, "alice", "Renamed", "y"))
	note, err := s.GetByID(id)
	require.NoError(t, err)
	require.Equal(t, "Renamed", note.Title)
	require.Equal(t, "alice", note.Owner)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create("alice", "Mine", "x")
	require.NoError(t, err)

	var forbidden *ForbiddenError
	require.ErrorAs(t, s.Delete(id, "bob"), &forbidden)

	require.NoError(t, s.Delete(id, "alice"))
	_, err = s.GetByID(id)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Delete(id, "alice"), ErrNotFound)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	logger := logging.Nop()

	s := NewStore(path, logger)
	id, err := s.Create("alice", "Persistent", "survives restarts")
	require.NoError(t, err)
	require.NoError(t, s.Delete(id, "alice"))
	id2, err := s.Create("alice", "Second", "x")
	require.NoError(t, err)

	reopened := NewStore(path, logger)
	note, err := reopened.GetByID(id2)
	require.NoError(t, err)
	require.Equal(t, "Second", note.Title)

	// id counter survives too, deleted ids are not reused
	id3, err := reopened.Create("alice", "Third", "x")
	require.NoError(t, err)
	require.Equal(t, id2+1, id3)
}

func TestMissingSnapshotStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	s := NewStore(path, logging.Nop())
	require.Empty(t, s.ListByOwner("alice"))
}
