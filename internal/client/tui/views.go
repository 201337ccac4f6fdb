package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notechain/notechain/internal/client/remote"
	"github.com/notechain/notechain/internal/client/session"
)

// View renders the current page. A panic anywhere in rendering falls back
// to a minimal recovery screen instead of tearing down the program.
func (m *Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = m.fallbackView(r)
		}
	}()

	var b strings.Builder
	b.WriteString(titleStyle.Render("NoteChain"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	switch m.match.Page {
	case PageList:
		b.WriteString(m.listView())
	case PageNote:
		b.WriteString(m.noteView())
	case PageCreate:
		b.WriteString(m.noteForm.view("New note"))
	case PageEdit:
		b.WriteString(m.noteForm.view("Edit note"))
	case PageLogin:
		b.WriteString(m.loginForm.view())
	default:
		b.WriteString(m.notFoundView())
	}

	if m.errText != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.errText))
	}
	if m.notice != "" {
		b.WriteString("\n\n" + dimStyle.Render(m.notice))
	}
	b.WriteString("\n" + m.helpLine())
	return b.String()
}

func (m *Model) fallbackView(reason any) string {
	return titleStyle.Render("NoteChain") + "\n\n" +
		errorStyle.Render("Something went wrong while rendering this screen.") + "\n" +
		dimStyle.Render(fmt.Sprintf("%v", reason)) + "\n\n" +
		helpStyle.Render("press ctrl+c to quit")
}

func (m *Model) statusLine() string {
	status := m.session.Status()
	if !status.Authenticated {
		return dimStyle.Render("not signed in")
	}
	var mode string
	switch status.Mode {
	case session.ModeGuest:
		mode = "guest"
	case session.ModeAnonymous:
		mode = "anonymous"
	case session.ModeInteractive:
		mode = "signed in"
	}
	return dimStyle.Render(fmt.Sprintf("%s · %s", mode, status.Principal))
}

func (m *Model) listView() string {
	if m.loading {
		return m.spin.View() + dimStyle.Render("Loading notes...")
	}
	if len(m.items) == 0 {
		return dimStyle.Render("No notes yet. Press c to create one.")
	}

	var b strings.Builder
	for i, item := range m.items {
		line := item.Title
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString(dimStyle.Render("  " + item.CreatedAt.Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) noteView() string {
	if m.loading || m.current == nil {
		return m.spin.View() + dimStyle.Render("Loading note...")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.current.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.current.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n\n")
	b.WriteString(cardStyle.Render(m.current.Content))
	return b.String()
}

func (m *Model) notFoundView() string {
	return headerStyle.Render("Page not found") + "\n\n" +
		dimStyle.Render(fmt.Sprintf("Nothing lives at %q.", m.match.Path)) + "\n" +
		dimStyle.Render("Press any key to return to your notes.")
}

func (m *Model) helpLine() string {
	switch m.match.Page {
	case PageList:
		return helpStyle.Render("enter view · c create · e edit · d delete · r reload · L session · q quit")
	case PageNote:
		return helpStyle.Render("e edit · esc back · q quit")
	case PageCreate, PageEdit:
		return helpStyle.Render("tab switch field · ctrl+s save · esc cancel")
	case PageLogin:
		if m.loginForm.interactive {
			return helpStyle.Render("tab switch field · enter sign in · esc back")
		}
		return helpStyle.Render("up/down choose · enter select · q quit")
	default:
		return helpStyle.Render("press any key")
	}
}

// friendlyError maps the error taxonomy of the lower layers onto text a
// person can act on.
func friendlyError(err error) string {
	var rejection *remote.RejectionError
	switch {
	case errors.As(err, &rejection):
		return rejection.Reason
	case errors.Is(err, errRemoteNeedsSession):
		return "Sign in to view notes stored on the authority."
	case errors.Is(err, remote.ErrUnavailable):
		return "The note authority is unreachable. Press r to retry."
	case errors.Is(err, remote.ErrUnauthorized):
		return "Your session is no longer valid. Sign in again."
	case errors.Is(err, remote.ErrNotFound):
		return "That note does not exist."
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
