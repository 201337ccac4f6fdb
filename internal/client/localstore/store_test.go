package localstore

import (
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/notechain/notechain/internal/identity"
	"github.com/notechain/notechain/internal/common"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := OpenInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(setupDB(t))
	require.NoError(t, err)
	return s
}

func TestCreateFetch_RoundTrip(t *testing.T) {
	s := setupStore(t)

	id, err := s.Create("  My Title  ", "  some content  ", "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	notes, err := s.Fetch("user-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, id, notes[0].ID)
	require.Equal(t, "My Title", notes[0].Title)
	require.Equal(t, "some content", notes[0].Content)
	require.Equal(t, "user-1", notes[0].UserID)
	require.Equal(t, notes[0].CreatedAt, notes[0].UpdatedAt)
}

func TestCreate_EmptyTitleDefaults(t *testing.T) {
	s := setupStore(t)

	_, err := s.Create("   ", "content", "user-1")
	require.NoError(t, err)

	notes, err := s.Fetch("user-1")
	require.NoError(t, err)
	require.Equal(t, common.UntitledNoteTitle, notes[0].Title)
}

func TestCreate_EmptyContentPermitted(t *testing.T) {
	s := setupStore(t)

	_, err := s.Create("t", "", "user-1")
	require.NoError(t, err)
}

func TestCreate_OversizedRejected(t *testing.T) {
	s := setupStore(t)

	_, err := s.Create("t", strings.Repeat("x", 1024), "user-1")
	require.ErrorIs(t, err, common.ErrorValidation)

	notes, err := s.Fetch("")
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestCreate_IDsAreUnique(t *testing.T) {
	s := setupStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := s.Create("t", "c", "user-1")
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFetch_FiltersByOwner(t *testing.T) {
	s := setupStore(t)

	_, err := s.Create("a", "", "user-1")
	require.NoError(t, err)
	_, err = s.Create("b", "", "user-2")
	require.NoError(t, err)

	notes, err := s.Fetch("user-2")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "b", notes[0].Title)

	all, err := s.Fetch("")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestUpdate_PreservesIdentity(t *testing.T) {
	s := setupStore(t)

	id, err := s.Create("before", "old", "user-1")
	require.NoError(t, err)
	notes, _ := s.Fetch("")
	created := notes[0].CreatedAt

	require.NoError(t, s.Update(id, "after", "new"))

	notes, err = s.Fetch("")
	require.NoError(t, err)
	require.Equal(t, id, notes[0].ID)
	require.Equal(t, "user-1", notes[0].UserID)
	require.Equal(t, created, notes[0].CreatedAt)
	require.Equal(t, "after", notes[0].Title)
	require.Equal(t, "new", notes[0].Content)
	require.False(t, notes[0].UpdatedAt.Before(created))
}

func TestUpdate_MissingIDFailsAndStoreUnchanged(t *testing.T) {
	s := setupStore(t)

	err := s.Update("missing-id", "x", "y")
	require.ErrorIs(t, err, common.ErrorNotFound)

	notes, err := s.Fetch("")
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestDelete_IsIdempotent(t *testing.T) {
	s := setupStore(t)

	id, err := s.Create("Hello", "World", "guest-user")
	require.NoError(t, err)

	notes, _ := s.Fetch("guest-user")
	require.Len(t, notes, 1)
	require.Equal(t, "Hello", notes[0].Title)

	require.NoError(t, s.Delete(id))
	notes, _ = s.Fetch("guest-user")
	require.Empty(t, notes)

	// Second delete of the same id still succeeds.
	require.NoError(t, s.Delete(id))
}

func TestMutations_RollBackWhenPersistFails(t *testing.T) {
	db, err := OpenInMemoryDB()
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)
	id, err := s.Create("keep me", "around", "user-1")
	require.NoError(t, err)

	// With the DB closed every write fails; memory must keep matching disk.
	require.NoError(t, db.Close())

	_, err = s.Create("new", "note", "user-1")
	require.Error(t, err)
	err = s.Update(id, "changed", "changed")
	require.Error(t, err)
	err = s.Delete(id)
	require.Error(t, err)

	notes, err := s.Fetch("user-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, id, notes[0].ID)
	require.Equal(t, "keep me", notes[0].Title)
	require.Equal(t, "around", notes[0].Content)
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	db := setupDB(t)

	s, err := NewStore(db)
	require.NoError(t, err)
	id, err := s.Create("durable", "note", "user-1")
	require.NoError(t, err)

	// A fresh Store over the same DB sees the record.
	s2, err := NewStore(db)
	require.NoError(t, err)
	notes, err := s2.Fetch("user-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, id, notes[0].ID)
}

func TestCredential_SaveLoadClear(t *testing.T) {
	s := setupStore(t)

	_, err := s.LoadCredential()
	require.ErrorIs(t, err, common.ErrorNotFound)

	id, err := identity.NewAnonymous()
	require.NoError(t, err)
	require.NoError(t, s.SaveCredential(id.Credential()))

	c, err := s.LoadCredential()
	require.NoError(t, err)
	restored, err := identity.FromCredential(c)
	require.NoError(t, err)
	require.Equal(t, id.Principal(), restored.Principal())

	require.NoError(t, s.ClearCredential())
	_, err = s.LoadCredential()
	require.ErrorIs(t, err, common.ErrorNotFound)

	// Clearing again is fine.
	require.NoError(t, s.ClearCredential())
}

func TestEnsureDemoNotes(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.EnsureDemoNotes("guest-user"))
	notes, err := s.Fetch("guest-user")
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Seeding is a no-op once notes exist.
	require.NoError(t, s.EnsureDemoNotes("guest-user"))
	notes, _ = s.Fetch("guest-user")
	require.Len(t, notes, 2)
}
