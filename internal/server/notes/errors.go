package notes

import "errors"

// ErrNotFound is returned when a note id does not exist.
var ErrNotFound = errors.New("note not found")

// ValidationError rejects a note payload. Msg is shown to the caller
// verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ForbiddenError rejects an operation on a note owned by someone else.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string {
	return e.Msg
}
