package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notechain/notechain/internal/client/localstore"
	"github.com/notechain/notechain/internal/client/session"
	"github.com/notechain/notechain/internal/logging"
)

// Model is the root bubbletea model. It owns navigation and the data
// shown on each page; what it displays is always derived from the
// session's current mode, never from a stale client.
type Model struct {
	session *session.Manager
	local   *localstore.Store
	router  *Router
	logger  logging.Logger

	match Match
	// next is a path that required authentication; after a successful
	// login the model navigates there instead of the listing.
	next string

	width  int
	height int

	loading bool
	errText string
	notice  string

	items   []noteItem
	cursor  int
	current *noteItem

	noteForm  noteForm
	loginForm loginForm
	spin      spinner.Model
}

func NewModel(sess *session.Manager, local *localstore.Store, logger logging.Logger) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return &Model{
		session:   sess,
		local:     local,
		router:    NewRouter(),
		logger:    logger,
		noteForm:  newNoteForm(),
		loginForm: newLoginForm(),
		spin:      spin,
	}
}

func (m *Model) Init() tea.Cmd {
	if m.session.IsAuthenticated() {
		return m.navigate("/")
	}
	return m.navigate("/login")
}

// navigate resolves the path and prepares the target page. Paths that
// require authentication bounce to the login page and are retried after
// a successful login.
func (m *Model) navigate(path string) tea.Cmd {
	match := m.router.Resolve(path)
	if match.RequiresAuth && !m.session.IsAuthenticated() {
		m.next = path
		match = m.router.Resolve("/login")
	}

	m.match = match
	m.errText = ""
	m.notice = ""

	switch match.Page {
	case PageList:
		m.loading = true
		return tea.Batch(m.loadNotes(), m.spin.Tick)
	case PageNote, PageEdit:
		m.loading = true
		m.current = nil
		return tea.Batch(m.loadNote(match.Params["id"]), m.spin.Tick)
	case PageCreate:
		m.noteForm.reset()
	case PageLogin:
		m.loginForm.reset()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case notesLoadedMsg:
		// a listing fetched for a previous identity is stale
		if msg.principal != m.session.Principal() {
			return m, nil
		}
		m.loading = false
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case noteLoadedMsg:
		m.loading = false
		item := msg.item
		m.current = &item
		if m.match.Page == PageEdit {
			if !item.editable() {
				m.match = m.router.Resolve("/note/" + item.ID)
				m.notice = "Notes stored on the authority cannot be edited from this client."
				return m, nil
			}
			m.noteForm.setNote(item)
		}
		return m, nil

	case noteMissingMsg:
		m.loading = false
		m.match = Match{Page: PageNotFound, Path: m.match.Path, Params: map[string]string{}}
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.errText = friendlyError(msg.err)
		m.logger.Warn(context.Background(), "note fetch failed", "page", m.match.Page.String(), "error", msg.err)
		return m, nil

	case mutationDoneMsg:
		return m, m.navigate(msg.goTo)

	case mutationFailedMsg:
		m.errText = friendlyError(msg.err)
		m.logger.Warn(context.Background(), "note mutation failed", "error", msg.err)
		return m, nil

	case sessionChangedMsg:
		return m.updateSession(msg)
	}

	return m, nil
}

func (m *Model) updateSession(msg sessionChangedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errText = friendlyError(msg.err)
		return m, nil
	}

	// identity changed: drop everything fetched for the previous one
	m.items = nil
	m.current = nil
	m.cursor = 0

	if !msg.status.Authenticated {
		return m, m.navigate("/login")
	}
	if m.next != "" {
		path := m.next
		m.next = ""
		return m, m.navigate(path)
	}
	return m, m.navigate("/")
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.match.Page {
	case PageList:
		return m.updateListKey(msg)
	case PageNote:
		return m.updateNoteKey(msg)
	case PageCreate, PageEdit:
		return m.updateFormKey(msg)
	case PageLogin:
		return m.updateLoginKey(msg)
	default:
		return m, m.navigate("/")
	}
}

func (m *Model) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if item, ok := m.selected(); ok {
			return m, m.navigate("/note/" + item.ID)
		}
	case "c":
		return m, m.navigate("/create")
	case "e":
		if item, ok := m.selected(); ok && item.editable() {
			return m, m.navigate("/edit/" + item.ID)
		}
	case "d":
		if item, ok := m.selected(); ok && item.editable() {
			return m, m.deleteNote(item)
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadNotes(), m.spin.Tick)
	case "L":
		if m.session.IsAuthenticated() {
			return m, m.logout()
		}
		return m, m.navigate("/login")
	}
	return m, nil
}

func (m *Model) updateNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		return m, m.navigate("/")
	case "e":
		if m.current != nil && m.current.editable() {
			return m, m.navigate("/edit/" + m.current.ID)
		}
		if m.current != nil {
			m.notice = "Notes stored on the authority cannot be edited from this client."
		}
	}
	return m, nil
}

func (m *Model) updateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, m.navigate("/")
	case tea.KeyTab:
		m.noteForm.toggleFocus()
		return m, nil
	case tea.KeyCtrlS:
		return m.submitNoteForm()
	}
	return m, m.noteForm.update(msg)
}

func (m *Model) submitNoteForm() (tea.Model, tea.Cmd) {
	if m.noteForm.overLimit() {
		m.errText = "The note is too large to save."
		return m, nil
	}
	title := m.noteForm.title.Value()
	content := m.noteForm.content.Value()
	if m.match.Page == PageEdit {
		return m, m.updateNote(m.noteForm.editingID, title, content)
	}
	return m, m.createNote(title, content)
}

func (m *Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loginForm.interactive {
		switch msg.Type {
		case tea.KeyEsc:
			m.loginForm.interactive = false
			return m, nil
		case tea.KeyTab:
			m.loginForm.toggleField()
			return m, nil
		case tea.KeyEnter:
			m.loading = true
			return m, m.loginInteractive(
				m.loginForm.username.Value(), []byte(m.loginForm.password.Value()))
		}
		return m, m.loginForm.update(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.loginForm.moveCursor(-1)
	case "down", "j":
		m.loginForm.moveCursor(1)
	case "enter":
		switch m.loginForm.cursor {
		case choiceGuest:
			m.loading = true
			return m, m.loginGuest()
		case choiceAnonymous:
			m.loading = true
			return m, m.loginAnonymous()
		case choiceInteractive:
			m.loginForm.interactive = true
		}
	}
	return m, nil
}

func (m *Model) selected() (noteItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return noteItem{}, false
	}
	return m.items[m.cursor], true
}
