package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"multiblog/internal/blog"
	"multiblog/internal/logging"
	"multiblog/internal/store"
)

// Options configures the interactive menu.
type Options struct {
	Service *blog.Service
	DataDir string
	Theme   string
	Wrap    int
}

// Run starts the interactive menu and blocks until the user quits.
func Run(opts Options) error {
	m := newModel(opts)
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive menu: %w", err)
	}
	return nil
}

type page int

const (
	pageLogin page = iota
	pageRegister
	pageMenu
	pagePosts
	pagePostView
	pageComposeTitle
	pageComposeTags
	pageComposeBody
	pageComment
	pageAuthors
)

// dataChangedMsg arrives when another process rewrote a data file.
type dataChangedMsg string

type menuItem struct {
	label string
	page  page
}

type model struct {
	opts     Options
	styles   Styles
	renderer *glamour.TermRenderer
	watcher  *store.Watcher

	width  int
	height int

	// Session: identity is just the logged-in author; the uuid tags log
	// lines so interleaved sessions in the same log stay separable.
	sessionID string
	author    *blog.Author

	page      page
	prevPage  page
	menuIdx   int
	menuItems []menuItem

	input textinput.Model
	body  textarea.Model

	draftEmail string
	draftTitle string
	draftTags  string

	posts   []blog.Post
	authors []blog.Author
	cursor  int
	current blog.Post

	status  string
	lastErr string
}

func newModel(opts Options) *model {
	styles := NewStyles(ResolveTheme(opts.Theme))

	wrap := opts.Wrap
	if wrap <= 0 {
		wrap = 80
	}
	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}

	input := textinput.New()
	input.Placeholder = "email"
	input.Focus()
	input.CharLimit = 120
	input.Width = 48

	body := textarea.New()
	body.Placeholder = "Write your post..."
	body.CharLimit = 0
	body.SetWidth(wrap)
	body.SetHeight(10)

	m := &model{
		opts:      opts,
		styles:    styles,
		renderer:  renderer,
		sessionID: uuid.NewString(),
		page:      pageLogin,
		input:     input,
		body:      body,
	}

	// First run publishes the welcome post; after that this is a no-op.
	if _, created, err := opts.Service.EnsureWelcome(); err == nil && created {
		m.status = "Welcome post published"
	}
	m.reloadPosts()

	if w, err := store.NewWatcher(opts.DataDir); err == nil {
		m.watcher = w
	}

	logging.Session("interactive session started: id=%s", m.sessionID)
	return m
}

func (m *model) close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
	logging.Session("interactive session ended: id=%s", m.sessionID)
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// waitForChange blocks on the fsnotify watcher and surfaces the change as
// a message. Re-armed after every dataChangedMsg.
func (m *model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		name, ok := <-events
		if !ok {
			return nil
		}
		return dataChangedMsg(name)
	}
}

func (m *model) reloadPosts() {
	posts, err := m.opts.Service.ListPosts()
	if err != nil {
		m.lastErr = err.Error()
		return
	}
	m.posts = posts
	if m.cursor >= len(posts) {
		m.cursor = 0
	}
}

func (m *model) reloadAuthors() {
	authors, err := m.opts.Service.ListAuthors()
	if err != nil {
		m.lastErr = err.Error()
		return
	}
	m.authors = authors
}

// rebuildMenu recomputes the main menu for the current session state.
func (m *model) rebuildMenu() {
	items := []menuItem{
		{"Browse posts", pagePosts},
		{"Authors", pageAuthors},
	}
	if m.author != nil {
		items = append(items,
			menuItem{"Publish a post", pageComposeTitle},
			menuItem{"Switch account", pageLogin},
		)
	} else {
		items = append(items, menuItem{"Log in", pageLogin})
	}
	m.menuItems = items
	if m.menuIdx >= len(items) {
		m.menuIdx = 0
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataChangedMsg:
		logging.UI("external change to %s, refreshing", string(msg))
		m.reloadPosts()
		m.reloadAuthors()
		m.status = "Data refreshed (" + string(msg) + " changed externally)"
		return m, m.waitForChange()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateInputs(msg)
}

func (m *model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.body, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.page {
	case pageLogin:
		return m.keyLogin(msg)
	case pageRegister:
		return m.keyRegister(msg)
	case pageMenu:
		return m.keyMenu(msg)
	case pagePosts:
		return m.keyPosts(msg)
	case pagePostView:
		return m.keyPostView(msg)
	case pageComposeTitle, pageComposeTags:
		return m.keyComposeLine(msg)
	case pageComposeBody:
		return m.keyComposeBody(msg)
	case pageComment:
		return m.keyComment(msg)
	case pageAuthors:
		return m.keyAuthors(msg)
	}
	return m, nil
}

func (m *model) gotoMenu() {
	m.rebuildMenu()
	m.page = pageMenu
	m.lastErr = ""
}

func (m *model) keyLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.author != nil {
			m.gotoMenu()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		email := strings.TrimSpace(m.input.Value())
		a, err := m.opts.Service.Login(email)
		switch {
		case err == nil:
			m.author = &a
			m.status = "Logged in as " + a.Name
			m.input.Reset()
			m.gotoMenu()
			logging.Session("session %s: login %s", m.sessionID, a.Email)
		case errors.Is(err, blog.ErrAuthorNotFound):
			// Unknown email: offer registration with the same address.
			m.draftEmail = blog.NormalizeEmail(email)
			m.input.Reset()
			m.input.Placeholder = "your name"
			m.page = pageRegister
			m.lastErr = ""
		default:
			m.lastErr = err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) keyRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Reset()
		m.input.Placeholder = "email"
		m.page = pageLogin
		return m, nil

	case tea.KeyEnter:
		a, err := m.opts.Service.Register(m.input.Value(), m.draftEmail)
		if err != nil {
			m.lastErr = err.Error()
			return m, nil
		}
		m.author = &a
		m.status = "Registered " + a.Email
		m.input.Reset()
		m.input.Placeholder = "email"
		m.draftEmail = ""
		m.gotoMenu()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) keyMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case "down", "j":
		if m.menuIdx < len(m.menuItems)-1 {
			m.menuIdx++
		}
	case "enter":
		target := m.menuItems[m.menuIdx].page
		m.lastErr = ""
		switch target {
		case pagePosts:
			m.reloadPosts()
			m.cursor = 0
		case pageAuthors:
			m.reloadAuthors()
		case pageComposeTitle:
			m.draftTitle = ""
			m.draftTags = ""
			m.input.Reset()
			m.input.Placeholder = "title"
		case pageLogin:
			m.author = nil
			m.input.Reset()
			m.input.Placeholder = "email"
		}
		m.page = target
	}
	return m, nil
}

func (m *model) keyPosts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.gotoMenu()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.posts) > 0 {
			m.current = m.posts[m.cursor]
			m.page = pagePostView
		}
	case "r":
		m.reloadPosts()
		m.status = "Refreshed"
	}
	return m, nil
}

func (m *model) keyPostView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.page = pagePosts
	case "c":
		if m.author != nil {
			m.input.Reset()
			m.input.Placeholder = "your comment"
			m.prevPage = pagePostView
			m.page = pageComment
		} else {
			m.lastErr = "log in to comment"
		}
	case "d":
		if m.author == nil {
			m.lastErr = "log in first"
			return m, nil
		}
		if err := m.opts.Service.DeletePost(m.author.ID, m.current.ID); err != nil {
			m.lastErr = friendlyError(err)
			return m, nil
		}
		m.status = "Post deleted"
		m.reloadPosts()
		m.page = pagePosts
	}
	return m, nil
}

func (m *model) keyComposeLine(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.gotoMenu()
		return m, nil

	case tea.KeyEnter:
		if m.page == pageComposeTitle {
			m.draftTitle = m.input.Value()
			m.input.Reset()
			m.input.Placeholder = "tags (comma-separated, optional)"
			m.page = pageComposeTags
		} else {
			m.draftTags = m.input.Value()
			m.input.Reset()
			m.body.Reset()
			m.body.Focus()
			m.page = pageComposeBody
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) keyComposeBody(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.body.Blur()
		m.gotoMenu()
		return m, nil

	case tea.KeyCtrlD:
		// Ctrl+D publishes; Enter stays a newline inside the body.
		p, err := m.opts.Service.CreatePost(
			m.author.ID, m.draftTitle, m.body.Value(), blog.ParseTags(m.draftTags))
		if err != nil {
			m.lastErr = friendlyError(err)
			return m, nil
		}
		m.body.Blur()
		m.status = fmt.Sprintf("Post %s published", p.ID)
		m.reloadPosts()
		m.gotoMenu()
		return m, nil
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m *model) keyComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.page = m.prevPage
		return m, nil

	case tea.KeyEnter:
		_, err := m.opts.Service.AddComment(
			m.current.ID, m.author.Name, m.input.Value(), m.author.ID)
		if err != nil {
			m.lastErr = friendlyError(err)
			return m, nil
		}
		m.status = "Comment added"
		m.input.Reset()
		if p, err := m.opts.Service.GetPost(m.current.ID); err == nil {
			m.current = p
		}
		m.reloadPosts()
		m.page = pagePostView
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) keyAuthors(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.gotoMenu()
	case "r":
		m.reloadAuthors()
	}
	return m, nil
}

// friendlyError maps domain sentinels to short user-facing messages.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, blog.ErrNotOwner):
		return "that belongs to another author"
	case errors.Is(err, blog.ErrDuplicateEmail):
		return "that email is already registered"
	case errors.Is(err, blog.ErrAuthorNotFound):
		return "no author with that email"
	case errors.Is(err, blog.ErrPostNotFound):
		return "post no longer exists"
	case errors.Is(err, blog.ErrCommentNotFound):
		return "comment no longer exists"
	}
	return err.Error()
}
