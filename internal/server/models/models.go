// Package models defines the authority-side representations of notes and
// registered users.
package models

import "time"

// Note is the authority's record of a note. IDs are assigned sequentially
// starting from 1 and are never reused.
type Note struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a registered interactive account. The principal doubles as the
// displayable identity and equals the username.
type User struct {
	Username     string    `json:"username"`
	Salt         []byte    `json:"salt"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
