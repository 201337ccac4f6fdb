package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notechain/notechain/internal/common"
)

// noteForm backs both the create and the edit page.
type noteForm struct {
	title        textinput.Model
	content      textarea.Model
	editingID    string
	focusContent bool
}

func newNoteForm() noteForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = common.MaxNoteSizeBytes
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.CharLimit = 0
	content.SetHeight(8)

	return noteForm{title: title, content: content}
}

func (f *noteForm) reset() {
	f.title.SetValue("")
	f.content.SetValue("")
	f.editingID = ""
	f.focusTitle()
}

func (f *noteForm) setNote(item noteItem) {
	f.title.SetValue(item.Title)
	f.content.SetValue(item.Content)
	f.editingID = item.ID
	f.focusTitle()
}

func (f *noteForm) focusTitle() {
	f.focusContent = false
	f.title.Focus()
	f.content.Blur()
}

func (f *noteForm) toggleFocus() {
	f.focusContent = !f.focusContent
	if f.focusContent {
		f.title.Blur()
		f.content.Focus()
	} else {
		f.title.Focus()
		f.content.Blur()
	}
}

func (f *noteForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focusContent {
		f.content, cmd = f.content.Update(msg)
	} else {
		f.title, cmd = f.title.Update(msg)
	}
	return cmd
}

func (f *noteForm) size() int {
	return len(f.title.Value()) + len(f.content.Value())
}

func (f *noteForm) overLimit() bool {
	return f.size() > common.MaxNoteSizeBytes
}

// counter renders the live byte usage under the form.
func (f *noteForm) counter() string {
	text := fmt.Sprintf("%d / %d bytes", f.size(), common.MaxNoteSizeBytes)
	if f.overLimit() {
		return counterOverStyle.Render(text)
	}
	return counterStyle.Render(text)
}

func (f *noteForm) view(heading string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(f.title.View())
	b.WriteString("\n\n")
	b.WriteString(f.content.View())
	b.WriteString("\n")
	b.WriteString(f.counter())
	return b.String()
}

// loginChoice enumerates the ways a session can start.
type loginChoice int

const (
	choiceGuest loginChoice = iota
	choiceAnonymous
	choiceInteractive
)

var loginChoices = []string{
	"Continue as guest (notes stay on this device)",
	"Anonymous identity (notes stored on the authority)",
	"Sign in with username and password",
}

// loginForm is the login page state: a mode picker, plus credentials
// inputs once the interactive mode is chosen.
type loginForm struct {
	cursor      loginChoice
	interactive bool
	username    textinput.Model
	password    textinput.Model
	onPassword  bool
}

func newLoginForm() loginForm {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	return loginForm{username: username, password: password}
}

func (f *loginForm) reset() {
	f.cursor = choiceGuest
	f.interactive = false
	f.username.SetValue("")
	f.password.SetValue("")
	f.onPassword = false
	f.username.Focus()
	f.password.Blur()
}

func (f *loginForm) moveCursor(delta int) {
	next := int(f.cursor) + delta
	if next < 0 {
		next = len(loginChoices) - 1
	}
	if next >= len(loginChoices) {
		next = 0
	}
	f.cursor = loginChoice(next)
}

func (f *loginForm) toggleField() {
	f.onPassword = !f.onPassword
	if f.onPassword {
		f.username.Blur()
		f.password.Focus()
	} else {
		f.password.Blur()
		f.username.Focus()
	}
}

func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.onPassword {
		f.password, cmd = f.password.Update(msg)
	} else {
		f.username, cmd = f.username.Update(msg)
	}
	return cmd
}

func (f *loginForm) view() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Sign in to NoteChain"))
	b.WriteString("\n\n")

	if !f.interactive {
		for i, choice := range loginChoices {
			prefix := "  "
			line := choice
			if loginChoice(i) == f.cursor {
				prefix = "> "
				line = selectedStyle.Render(choice)
			}
			b.WriteString(prefix + line + "\n")
		}
		return b.String()
	}

	b.WriteString(f.username.View())
	b.WriteString("\n")
	b.WriteString(f.password.View())
	return b.String()
}
