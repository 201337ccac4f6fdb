// Package models defines note types as seen by the client.
package models

import (
	"fmt"
	"time"

	"github.com/notechain/notechain/internal/common"
)

// Note is a note held by the remote authority. The identifier is assigned
// by the authority; Owner is the principal the note belongs to.
type Note struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LocalNote is a note held by the local store. Identifiers are locally
// generated opaque strings; UserID references the owning local user.
type LocalNote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteSize returns the combined byte length of title and content.
func NoteSize(title, content string) int {
	return len(title) + len(content)
}

// ValidateNoteSize checks the combined byte-length cap shared by every
// persistence backend. The returned error wraps common.ErrorValidation.
func ValidateNoteSize(title, content string) error {
	if size := NoteSize(title, content); size > common.MaxNoteSizeBytes {
		return fmt.Errorf("%w: note (title + content) exceeds %d byte limit, current size: %d",
			common.ErrorValidation, common.MaxNoteSizeBytes, size)
	}
	return nil
}
