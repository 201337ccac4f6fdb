// Package common contains shared constants and sentinel errors used across
// NoteChain components.
package common

// MaxNoteSizeBytes caps the combined byte length of a note's title and
// content, enforced both client-side (before any network call) and by the
// note authority.
const MaxNoteSizeBytes = 1024

// UntitledNoteTitle is the placeholder title a note receives when the
// trimmed title collapses to the empty string.
const UntitledNoteTitle = "Untitled Note"
