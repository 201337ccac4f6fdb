package remote

import "errors"

var (
	// ErrUnavailable means the authority could not be reached or answered
	// with a server-side failure. Retrying later may succeed.
	ErrUnavailable = errors.New("note authority unavailable")

	// ErrUnauthorized means the bound identity was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the requested note does not exist or is not visible.
	ErrNotFound = errors.New("note not found")
)

// RejectionError carries the human-readable reason the authority gave for
// refusing a create request (validation or authorization).
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return "note rejected: " + e.Reason
}
