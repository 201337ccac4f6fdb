package localstore

// Demo notes shown to guest users so the list page is not empty on first
// visit, taken over from the original demo dataset.
var demoNotes = []struct {
	title   string
	content string
}{
	{
		title: "Welcome to NoteChain!",
		content: "This is a demo note. NoteChain is a decentralized " +
			"note-taking app backed by a ledger of record.",
	},
	{
		title: "How to use NoteChain",
		content: "1. Login with an anonymous identity or try the demo\n" +
			"2. Create new notes\n" +
			"3. View and manage your notes\n" +
			"4. Everything is stored on the ledger!",
	},
}

// EnsureDemoNotes seeds the demo dataset for userID when the collection is
// empty. Calling it again after the user has notes is a no-op.
func (s *Store) EnsureDemoNotes(userID string) error {
	s.mu.Lock()
	empty := len(s.notes) == 0
	s.mu.Unlock()
	if !empty {
		return nil
	}
	for _, d := range demoNotes {
		if _, err := s.Create(d.title, d.content, userID); err != nil {
			return err
		}
	}
	return nil
}
