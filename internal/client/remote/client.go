// Package remote implements the typed client for the note authority.
//
// The authority is the external service of record for identity-scoped notes.
// This client is capability-scoped: it is constructed around exactly one
// identity and every call is made on that identity's behalf. Notes are
// immutable once created remotely; the client deliberately exposes no update
// or delete operation.
package remote

import (
	"context"

	"github.com/notechain/notechain/internal/client/models"
)

// Client describes the operations available against the note authority.
//
// Contract:
//   - ListNotes returns every note visible to the bound identity. Ordering
//     is arbitrary; callers that need a stable order must sort.
//   - GetNoteByID returns ErrNotFound when the note does not exist, which is
//     strictly distinct from a transport failure (ErrUnavailable).
//   - CreateNote validates the byte-length cap before any network call and
//     returns the authority-assigned identifier on success. A rejection by
//     the authority surfaces as *RejectionError with the reason text.
//   - Ping checks authority liveness.
type Client interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	GetNoteByID(ctx context.Context, id uint64) (*models.Note, error)
	CreateNote(ctx context.Context, title, content string) (uint64, error)
	Ping(ctx context.Context) error
	Close() error
}
