package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vmsouza/musicctl/internal/catalog"
	"github.com/vmsouza/musicctl/internal/channel"
	"github.com/vmsouza/musicctl/internal/guard"
	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/session"
	"github.com/vmsouza/musicctl/internal/shared"
	"github.com/vmsouza/musicctl/internal/validator"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	ListView
	FormView
	ConfirmDeleteView
	DeletedListView
	ConfirmRecoverView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	session *session.Store
	catalog *catalog.Client
	guard   *guard.Guard

	width  int
	height int

	table        table.Model
	deletedTable table.Model
	page         models.Page
	deletedPage  models.Page
	deletedCount int
	selection    *models.Selection

	form          form
	editing       models.Music
	pendingDelete models.Music
	from          guard.Route

	spin    spinner.Model
	loading bool
	status  string
	failed  bool

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model over the session store and catalog
// client. The starting view comes from the route guard: an existing
// session opens straight into the listing, anything else lands on login.
func NewModel(ctx context.Context, store *session.Store, client *catalog.Client) *Model {
	m := &Model{
		ctx:          ctx,
		session:      store,
		catalog:      client,
		guard:        guard.New(store),
		table:        newTable(listColumns()),
		deletedTable: newTable(deletedColumns()),
		selection:    models.NewSelection(),
		spin:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		keys:         newKeyMap(),
	}

	decision := m.guard.Resolve(guard.RouteList)
	if decision.Redirected() {
		m.view = LoginView
		m.from = decision.From
		m.form = newLoginForm()
	} else {
		m.view = ListView
		m.loading = true
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.view == ListView {
		return tea.Batch(m.spin.Tick, m.loadPage(0), m.loadCount())
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case noticeMsg:
		return m.handleNotice(string(msg))

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case deletedLoadedMsg:
		return m.handleDeletedLoaded(msg)

	case countLoadedMsg:
		return m.handleCountLoaded(msg)

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case ListView:
			return m.handleListKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmDeleteKeys(msg)
		case DeletedListView:
			return m.handleDeletedKeys(msg)
		case ConfirmRecoverView:
			return m.handleConfirmRecoverKeys(msg)
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LoginView:
		body = m.renderLogin()
	case ListView:
		body = m.renderList()
	case FormView:
		body = m.renderForm()
	case ConfirmDeleteView:
		body = m.renderConfirmDelete()
	case DeletedListView:
		body = m.renderDeleted()
	case ConfirmRecoverView:
		body = m.renderConfirmRecover()
	}

	if m.loading {
		body += fmt.Sprintf("\n%s loading...", m.spin.View())
	}
	if m.status != "" {
		style := styles.ok
		if m.failed {
			style = styles.err
		}
		body += "\n" + style.Render(m.status)
	}
	return body + "\n"
}

func (m *Model) setStatus(message string, failed bool) {
	m.status = message
	m.failed = failed
}

// Notices

func (m *Model) handleNotice(notice string) (tea.Model, tea.Cmd) {
	if suffix, ok := channel.ParseUnauthenticated(notice); ok {
		m.loading = false
		m.view = LoginView
		m.from = guard.RouteList
		m.form = newLoginForm()
		message := "Session expired, please log in again."
		if suffix != "" {
			message = suffix
		}
		m.setStatus(message, true)
		return m, textinput.Blink
	}

	if notice == channel.ListChanged {
		switch m.view {
		case ListView:
			return m, tea.Batch(m.loadPage(m.page.Index), m.loadCount())
		case DeletedListView, ConfirmRecoverView:
			return m, tea.Batch(m.loadDeleted(m.deletedPage.Index), m.loadCount())
		}
	}
	return m, nil
}

// Data messages

func (m *Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, shared.ErrStaleResponse) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}
	m.page = msg.page
	m.table.SetRows(listRows(msg.page))
	m.table.SetCursor(0)
	return m, nil
}

func (m *Model) handleDeletedLoaded(msg deletedLoadedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, shared.ErrStaleResponse) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}
	m.deletedPage = msg.page
	m.deletedTable.SetRows(deletedRows(msg.page, m.selection))
	m.deletedTable.SetCursor(0)
	return m, nil
}

// handleCountLoaded tracks the deleted-record count that badges and
// gates the deleted view. A failed count keeps the previous value, the
// count is advisory only.
func (m *Model) handleCountLoaded(msg countLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		m.deletedCount = msg.count
	}
	return m, nil
}

func (m *Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}

	m.setStatus(fmt.Sprintf("Welcome, %s!", msg.session.Username), false)

	target := m.from
	m.from = ""
	decision := m.guard.Resolve(target)
	if decision.Route == guard.RouteDeleted {
		m.view = DeletedListView
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadDeleted(0), m.loadCount())
	}
	m.view = ListView
	m.loading = true
	return m, tea.Batch(m.spin.Tick, m.loadPage(0), m.loadCount())
}

func (m *Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if errors.Is(msg.err, shared.ErrNotConfirmed) {
		return m, nil
	}
	if msg.err != nil {
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}
	m.setStatus(msg.message, false)

	switch m.view {
	case FormView, ConfirmDeleteView:
		m.view = ListView
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadPage(m.page.Index), m.loadCount())
	case ConfirmRecoverView:
		m.view = DeletedListView
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadDeleted(0), m.loadCount())
	}
	return m, nil
}

// Key handlers

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return m, nil
	case "enter":
		if m.form.focused < len(m.form.inputs)-1 {
			m.form.focusNext()
			return m, nil
		}
		credentials := m.form.credentials()
		if state, summary := validator.CheckCredentials(credentials); summary != "" {
			m.setStatus(summary, true)
			return m, nil
		} else if !state.Valid() {
			for _, field := range []string{"email", "password"} {
				if message := state.Message(field); message != "" {
					m.setStatus(message, true)
					return m, nil
				}
			}
		}
		m.loading = true
		m.setStatus("", false)
		return m, tea.Batch(m.spin.Tick, m.login(credentials))
	}

	return m, m.form.update(msg)
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.prev):
		if m.page.Index > 0 {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.loadPage(m.page.Index-1))
		}
		return m, nil
	case key.Matches(msg, m.keys.next):
		if hasNextPage(m.page) {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.loadPage(m.page.Index+1))
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		m.view = FormView
		m.editing = models.Music{}
		m.form = newRecordForm(m.editing)
		m.setStatus("", false)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.edit):
		record, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.view = FormView
		m.editing = record
		m.form = newRecordForm(record)
		m.setStatus("", false)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.delete):
		record, ok := m.selectedRecord()
		if !ok || !record.Saved() {
			return m, nil
		}
		m.view = ConfirmDeleteView
		m.pendingDelete = record
		return m, nil
	case key.Matches(msg, m.keys.deleted):
		if m.deletedCount == 0 {
			return m, nil
		}
		m.view = DeletedListView
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadDeleted(0))
	case key.Matches(msg, m.keys.logout):
		m.session.Logout()
		m.view = LoginView
		m.form = newLoginForm()
		m.setStatus("Logged out.", false)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ListView
		m.setStatus("", false)
		return m, nil
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return m, nil
	case "enter":
		if m.form.focused < len(m.form.inputs)-1 {
			m.form.focusNext()
			return m, nil
		}
		record := m.form.record(m.editing)
		m.loading = true
		m.setStatus("", false)
		return m, tea.Batch(m.spin.Tick, m.saveRecord(record))
	}

	return m, m.form.update(msg)
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.deleteRecord(m.pendingDelete))
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = ListView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDeletedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.loadPage(m.page.Index))
	case key.Matches(msg, m.keys.prev):
		if m.deletedPage.Index > 0 {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.loadDeleted(m.deletedPage.Index-1))
		}
		return m, nil
	case key.Matches(msg, m.keys.next):
		if hasNextPage(m.deletedPage) {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.loadDeleted(m.deletedPage.Index+1))
		}
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		cursor := m.deletedTable.Cursor()
		if cursor >= 0 && cursor < len(m.deletedPage.Items) {
			m.selection.Toggle(m.deletedPage.Items[cursor])
			m.deletedTable.SetRows(deletedRows(m.deletedPage, m.selection))
			m.deletedTable.SetCursor(cursor)
		}
		return m, nil
	case key.Matches(msg, m.keys.recover):
		if m.selection.Len() == 0 {
			m.setStatus(shared.ErrEmptySelection.Error(), true)
			return m, nil
		}
		m.view = ConfirmRecoverView
		return m, nil
	}

	var cmd tea.Cmd
	m.deletedTable, cmd = m.deletedTable.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmRecoverKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.recoverSelection())
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = DeletedListView
		return m, nil
	}
	return m, nil
}

func (m *Model) selectedRecord() (models.Music, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.page.Items) {
		return models.Music{}, false
	}
	return m.page.Items[cursor], true
}

func hasNextPage(page models.Page) bool {
	return (page.Index+1)*models.PageSize < page.TotalElements
}

// Commands

func (m *Model) loadPage(page int) tea.Cmd {
	return func() tea.Msg {
		result, err := m.catalog.List(m.ctx, page)
		return pageLoadedMsg{page: result, err: err}
	}
}

func (m *Model) loadDeleted(page int) tea.Cmd {
	return func() tea.Msg {
		result, err := m.catalog.ListDeleted(m.ctx, page)
		return deletedLoadedMsg{page: result, err: err}
	}
}

func (m *Model) loadCount() tea.Cmd {
	return func() tea.Msg {
		count, err := m.catalog.CountDeleted(m.ctx)
		return countLoadedMsg{count: count, err: err}
	}
}

// login clears any previous session, authenticates, then persists the
// new session key by key.
func (m *Model) login(credentials models.Credentials) tea.Cmd {
	return func() tea.Msg {
		m.session.Logout()

		sess, err := m.session.Login(m.ctx, credentials)
		if err != nil {
			return loginDoneMsg{err: err}
		}

		m.session.SetToken(sess.Token)
		m.session.SetUsername(sess.Username)
		m.session.SetUserEmail(sess.Email)
		m.session.SetExpired(false)
		return loginDoneMsg{session: sess}
	}
}

func (m *Model) saveRecord(record models.Music) tea.Cmd {
	return func() tea.Msg {
		var message string
		var err error
		if record.Saved() {
			message, err = m.catalog.Edit(m.ctx, record)
		} else {
			message, err = m.catalog.Save(m.ctx, record)
		}
		return mutationDoneMsg{message: message, err: err}
	}
}

func (m *Model) deleteRecord(record models.Music) tea.Cmd {
	return func() tea.Msg {
		err := m.catalog.Delete(m.ctx, *record.ID, nil)
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) recoverSelection() tea.Cmd {
	return func() tea.Msg {
		message, err := m.catalog.Recover(m.ctx, m.selection, nil)
		return mutationDoneMsg{message: message, err: err}
	}
}

// Renders

func (m *Model) renderLogin() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s", m.form.view(), helpView)
}

func (m *Model) renderList() string {
	title := styles.title.Render(fmt.Sprintf("Musics of %s", m.session.GetUsername()))
	status := pageStatus(m.page, "musics")
	if m.deletedCount > 0 {
		status = fmt.Sprintf("%s | %d deleted", status, m.deletedCount)
	}
	footer := styles.help.Render(status)
	helpKeys := []key.Binding{m.keys.add, m.keys.edit, m.keys.delete, m.keys.deleted, m.keys.prev, m.keys.next, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n%s", title, m.table.View(), footer, helpView)
}

func (m *Model) renderForm() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s", m.form.view(), helpView)
}

func (m *Model) renderConfirmDelete() string {
	title := styles.warn.Render(fmt.Sprintf("Do you really want to delete '%s'?", m.pendingDelete.Title))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n\n%s", title, helpView)
}

func (m *Model) renderDeleted() string {
	title := styles.title.Render("Deleted Musics")
	footer := styles.help.Render(fmt.Sprintf("%s, %d selected", pageStatus(m.deletedPage, "deleted"), m.selection.Len()))
	helpKeys := []key.Binding{m.keys.toggle, m.keys.recover, m.keys.back, m.keys.prev, m.keys.next}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n%s", title, m.deletedTable.View(), footer, helpView)
}

func (m *Model) renderConfirmRecover() string {
	title := styles.warn.Render(fmt.Sprintf("Recover %d selected musics?", m.selection.Len()))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n\n%s", title, helpView)
}

// sender is the part of [tea.Program] the notice forwarder needs.
type sender interface {
	Send(msg tea.Msg)
}

// forwardNotices funnels channel notices into the program through a
// single goroutine, preserving publish order. The handler never calls
// Send itself: the replayed value arrives before the program loop
// starts, and Send blocks until it does. The returned stop function
// unsubscribes and drains the forwarder.
func forwardNotices(bus *channel.Channel, s sender) (stop func()) {
	notices := make(chan tea.Msg, 8)
	unsubscribe := bus.Subscribe(func(message string) {
		notices <- noticeMsg(message)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range notices {
			s.Send(msg)
		}
	}()

	return func() {
		unsubscribe()
		close(notices)
		<-done
	}
}

// Run starts the TUI program and forwards channel notices into it.
func Run(ctx context.Context, store *session.Store, client *catalog.Client, bus *channel.Channel) error {
	m := NewModel(ctx, store, client)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	stop := forwardNotices(bus, p)
	defer stop()

	_, err := p.Run()
	return err
}
