package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notechain/notechain/internal/client/remote"
	"github.com/notechain/notechain/internal/client/session"
)

const requestTimeout = 10 * time.Second

// errRemoteNeedsSession marks a lookup of an authority-hosted note from a
// session that has no remote client, such as guest mode.
var errRemoteNeedsSession = errors.New("no session for remote notes")

// notesLoadedMsg delivers a fresh note listing together with the
// principal it was fetched for. A listing fetched for a previous
// identity is discarded by the model.
type notesLoadedMsg struct {
	principal string
	items     []noteItem
}

type noteLoadedMsg struct {
	item noteItem
}

type noteMissingMsg struct {
	id string
}

type loadFailedMsg struct {
	err error
}

// mutationDoneMsg reports a create, update or delete that went through.
// The model reacts by navigating and re-listing.
type mutationDoneMsg struct {
	goTo string
}

type mutationFailedMsg struct {
	err error
}

// sessionChangedMsg reports the outcome of a login or logout attempt.
type sessionChangedMsg struct {
	status session.Status
	err    error
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// loadNotes fetches the listing for the current session mode. Guests read
// the local store; anonymous and interactive sessions ask the authority.
func (m *Model) loadNotes() tea.Cmd {
	status := m.session.Status()
	return func() tea.Msg {
		if status.Mode == session.ModeGuest {
			if err := m.local.EnsureDemoNotes(status.Principal); err != nil {
				return loadFailedMsg{err: err}
			}
			local, err := m.local.Fetch(status.Principal)
			if err != nil {
				return loadFailedMsg{err: err}
			}
			items := make([]noteItem, 0, len(local))
			for _, n := range local {
				items = append(items, fromLocalNote(n))
			}
			return notesLoadedMsg{principal: status.Principal, items: items}
		}

		client := m.session.Client()
		if client == nil {
			return loadFailedMsg{err: remote.ErrUnavailable}
		}
		ctx, cancel := requestContext()
		defer cancel()
		notes, err := client.ListNotes(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		items := make([]noteItem, 0, len(notes))
		for _, n := range notes {
			items = append(items, fromRemoteNote(n))
		}
		return notesLoadedMsg{principal: status.Principal, items: items}
	}
}

// loadNote fetches a single note by id. Remote ids are decimal; anything
// else is looked up in the local store.
func (m *Model) loadNote(id string) tea.Cmd {
	status := m.session.Status()
	return func() tea.Msg {
		if remoteID, err := strconv.ParseUint(id, 10, 64); err == nil {
			client := m.session.Client()
			if client == nil {
				return loadFailedMsg{err: errRemoteNeedsSession}
			}
			ctx, cancel := requestContext()
			defer cancel()
			note, err := client.GetNoteByID(ctx, remoteID)
			if errors.Is(err, remote.ErrNotFound) {
				return noteMissingMsg{id: id}
			}
			if err != nil {
				return loadFailedMsg{err: err}
			}
			return noteLoadedMsg{item: fromRemoteNote(*note)}
		}

		local, err := m.local.Fetch(status.Principal)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		for _, n := range local {
			if n.ID == id {
				return noteLoadedMsg{item: fromLocalNote(n)}
			}
		}
		return noteMissingMsg{id: id}
	}
}

func (m *Model) createNote(title string, content string) tea.Cmd {
	status := m.session.Status()
	return func() tea.Msg {
		if status.Mode == session.ModeGuest {
			if _, err := m.local.Create(title, content, status.Principal); err != nil {
				return mutationFailedMsg{err: err}
			}
			return mutationDoneMsg{goTo: "/"}
		}

		client := m.session.Client()
		if client == nil {
			return mutationFailedMsg{err: remote.ErrUnavailable}
		}
		ctx, cancel := requestContext()
		defer cancel()
		if _, err := client.CreateNote(ctx, title, content); err != nil {
			return mutationFailedMsg{err: err}
		}
		return mutationDoneMsg{goTo: "/"}
	}
}

// updateNote edits a note in the local store. Remote notes are immutable
// from this client, the edit page never offers them.
func (m *Model) updateNote(id string, title string, content string) tea.Cmd {
	return func() tea.Msg {
		if err := m.local.Update(id, title, content); err != nil {
			return mutationFailedMsg{err: err}
		}
		return mutationDoneMsg{goTo: "/"}
	}
}

func (m *Model) deleteNote(item noteItem) tea.Cmd {
	return func() tea.Msg {
		if !item.editable() {
			return mutationFailedMsg{err: errors.New("remote notes cannot be deleted from this client")}
		}
		if err := m.local.Delete(item.ID); err != nil {
			return mutationFailedMsg{err: err}
		}
		return mutationDoneMsg{goTo: "/"}
	}
}

func (m *Model) loginGuest() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		err := m.session.LoginGuest(ctx)
		return sessionChangedMsg{status: m.session.Status(), err: err}
	}
}

func (m *Model) loginAnonymous() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		err := m.session.LoginAnonymous(ctx)
		return sessionChangedMsg{status: m.session.Status(), err: err}
	}
}

func (m *Model) loginInteractive(username string, password []byte) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		err := m.session.LoginInteractive(ctx, username, password)
		return sessionChangedMsg{status: m.session.Status(), err: err}
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		m.session.Logout(ctx)
		return sessionChangedMsg{status: m.session.Status()}
	}
}
