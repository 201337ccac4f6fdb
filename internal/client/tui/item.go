package tui

import (
	"strconv"
	"time"

	"github.com/notechain/notechain/internal/client/models"
)

type noteSource int

const (
	sourceLocal noteSource = iota
	sourceRemote
)

// noteItem is the page-level view of a note, regardless of whether it
// came from the local store or the authority. Local note ids are opaque
// strings; remote ids are rendered decimal.
type noteItem struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	Source    noteSource
}

func (n noteItem) editable() bool {
	return n.Source == sourceLocal
}

func fromLocalNote(n models.LocalNote) noteItem {
	return noteItem{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		Source:    sourceLocal,
	}
}

func fromRemoteNote(n models.Note) noteItem {
	return noteItem{
		ID:        strconv.FormatUint(n.ID, 10),
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		Source:    sourceRemote,
	}
}
