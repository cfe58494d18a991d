package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtracker/engine"
	"jobtracker/models"
	"jobtracker/store"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FF0000")).
	Bold(true)

var warningStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFAA00")).
	Bold(true)

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#00AA00"))

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#00FFFF")).
	Bold(true)

var subtitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#888888"))

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#888888"))

// screenState represents the current screen being displayed
type screenState int

const (
	screenSetup screenState = iota
	screenList
	screenAdd
	screenDetail
	screenStats
	screenSettings
)

// model represents the Bubble Tea application model
type model struct {
	tracker *engine.Tracker
	snap    snapshot
	screen  screenState

	nameInput textinput.Model
	list      list.Model

	searching   bool
	searchInput textinput.Model
	searchMode  store.SearchMode
	searchTerm  string // applied term, empty when every record is listed

	form   addForm
	detail *models.JobApplication

	confirmDelete    bool
	confirmDeleteAll bool
	deleteAllInput   textinput.Model

	settingsEdit  settingsField
	settingsInput textinput.Model
	roleCursor    int

	errorMessage  string
	statusMessage string
	width         int
	height        int
	ready         bool
}

// NewModel creates the interface for an opened tracker. A first run starts on
// the setup screen asking for the user's name.
func NewModel(t *engine.Tracker) model {
	snap := takeSnapshot(t)

	delegate := list.NewDefaultDelegate()
	l := list.New(toItems(snap.apps), delegate, 80, 20)
	l.Title = "Job Applications"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ni := textinput.New()
	ni.Placeholder = "Your name"
	ni.CharLimit = 64
	ni.Width = 40

	si := textinput.New()
	si.CharLimit = 256
	si.Width = 50

	m := model{
		tracker:       t,
		snap:          snap,
		screen:        screenList,
		nameInput:     ni,
		list:          l,
		searchInput:   si,
		searchMode:    store.SearchByCompany,
		form:          newAddForm(snap.roles),
		settingsInput: textinput.New(),
		width:         80,
		height:        24,
	}

	if snap.firstRun {
		m.screen = screenSetup
		m.nameInput.Focus()
	}
	if snap.loadWarning != nil {
		m.errorMessage = fmt.Sprintf("Could not read saved applications: %v", snap.loadWarning)
	}
	return m
}

// Init starts the cursor blink for the focused input
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		listHeight := msg.Height - 10
		if listHeight < 10 {
			listHeight = 10
		}
		m.list.SetSize(msg.Width-4, listHeight)
		return m, nil

	case refreshMsg:
		return m.handleRefresh(msg)

	case searchMsg:
		m.searchTerm = strings.TrimSpace(msg.term)
		m.searchMode = msg.mode
		if m.searchTerm == "" {
			m.statusMessage = ""
		} else {
			m.statusMessage = fmt.Sprintf("%d result(s) for %s %q", len(msg.results), msg.mode, m.searchTerm)
		}
		return m, m.list.SetItems(toItems(msg.results))

	case copyLinkMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Copy failed: %v", msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.statusMessage = "Link copied to clipboard"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenSetup:
		return m.updateSetup(msg)
	case screenAdd:
		return m.updateAdd(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenStats:
		return m.updateStats(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateList(msg)
	}
}

// handleRefresh adopts the state reported by a finished command
func (m model) handleRefresh(msg refreshMsg) (tea.Model, tea.Cmd) {
	m.snap = msg.snap
	if m.roleCursor >= len(m.snap.roles) {
		m.roleCursor = max(len(m.snap.roles)-1, 0)
	}

	if msg.err != nil {
		m.errorMessage = msg.err.Error()
		m.statusMessage = ""
		return m, nil
	}

	m.errorMessage = ""
	m.statusMessage = msg.status
	if m.snap.loadWarning != nil {
		m.errorMessage = fmt.Sprintf("Could not read saved applications: %v", m.snap.loadWarning)
	}

	switch m.screen {
	case screenSetup:
		m.nameInput.Blur()
		m.screen = screenList
	case screenAdd:
		m.form = newAddForm(m.snap.roles)
		m.screen = screenList
	case screenDetail:
		m.detail = nil
		m.screen = screenList
	}

	return m, m.reloadList()
}

// reloadList refreshes the list items, re-running an applied search
func (m *model) reloadList() tea.Cmd {
	if m.searchTerm != "" {
		return searchCmd(m.tracker, m.searchTerm, m.searchMode)
	}
	return m.list.SetItems(toItems(m.snap.apps))
}

// updateSetup handles updates for the first-run screen
func (m model) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, tea.Quit
		case "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				m.errorMessage = "Please enter your name"
				return m, nil
			}
			m.errorMessage = ""
			return m, updateUserNameCmd(m.tracker, name)
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// updateList handles updates for the application list screen
func (m model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		switch {
		case m.confirmDeleteAll:
			m.deleteAllInput, cmd = m.deleteAllInput.Update(msg)
		case m.searching:
			m.searchInput, cmd = m.searchInput.Update(msg)
		default:
			m.list, cmd = m.list.Update(msg)
		}
		return m, cmd
	}

	if m.confirmDeleteAll {
		switch key.String() {
		case "enter":
			if m.deleteAllInput.Value() != "DELETE" {
				m.errorMessage = "You must type 'DELETE' exactly to confirm"
				return m, nil
			}
			m.confirmDeleteAll = false
			m.errorMessage = ""
			m.statusMessage = "Deleting all applications..."
			return m, deleteAllCmd(m.tracker)
		case "esc":
			m.confirmDeleteAll = false
			m.errorMessage = ""
			m.statusMessage = "Cancelled"
			return m, nil
		default:
			var cmd tea.Cmd
			m.deleteAllInput, cmd = m.deleteAllInput.Update(msg)
			return m, cmd
		}
	}

	if m.searching {
		switch key.String() {
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, searchCmd(m.tracker, m.searchInput.Value(), m.searchMode)
		case "tab":
			m.searchMode = toggleSearchMode(m.searchMode)
			m.searchInput.Placeholder = searchPlaceholder(m.searchMode)
			return m, nil
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
	}

	if m.confirmDelete {
		switch key.String() {
		case "y", "d":
			m.confirmDelete = false
			if item, ok := m.list.SelectedItem().(applicationItem); ok {
				return m, deleteApplicationCmd(m.tracker, item.app.Link)
			}
			return m, nil
		default:
			m.confirmDelete = false
			m.statusMessage = "Cancelled"
			return m, nil
		}
	}

	switch key.String() {
	case "q":
		return m, tea.Quit

	case "a":
		m.form = newAddForm(m.snap.roles)
		m.screen = screenAdd
		m.errorMessage = ""
		m.statusMessage = ""
		return m, textinput.Blink

	case "enter":
		if item, ok := m.list.SelectedItem().(applicationItem); ok {
			app := item.app
			m.detail = &app
			m.screen = screenDetail
			m.errorMessage = ""
			m.statusMessage = ""
		}
		return m, nil

	case "c":
		if item, ok := m.list.SelectedItem().(applicationItem); ok {
			return m, copyLinkCmd(item.app.Link)
		}
		return m, nil

	case "d":
		if _, ok := m.list.SelectedItem().(applicationItem); ok {
			m.confirmDelete = true
			m.errorMessage = ""
			m.statusMessage = ""
		}
		return m, nil

	case "D":
		if len(m.snap.apps) == 0 {
			m.statusMessage = "Nothing to delete"
			return m, nil
		}
		confirmInput := textinput.New()
		confirmInput.Placeholder = "Type DELETE to confirm"
		confirmInput.Focus()
		confirmInput.CharLimit = 10
		confirmInput.Width = 30
		m.deleteAllInput = confirmInput
		m.confirmDeleteAll = true
		m.errorMessage = ""
		m.statusMessage = ""
		return m, textinput.Blink

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.searchTerm)
		m.searchInput.Placeholder = searchPlaceholder(m.searchMode)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "esc":
		if m.searchTerm != "" {
			m.searchInput.SetValue("")
			return m, searchCmd(m.tracker, "", m.searchMode)
		}
		return m, nil

	case "s":
		m.screen = screenStats
		m.errorMessage = ""
		m.statusMessage = ""
		return m, nil

	case "p":
		m.screen = screenSettings
		m.settingsEdit = editNone
		m.errorMessage = ""
		m.statusMessage = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func toggleSearchMode(mode store.SearchMode) store.SearchMode {
	if mode == store.SearchByCompany {
		return store.SearchByLink
	}
	return store.SearchByCompany
}

func searchPlaceholder(mode store.SearchMode) string {
	if mode == store.SearchByLink {
		return "Exact job link"
	}
	return "Part of a company name"
}

// View renders the UI
func (m model) View() string {
	switch m.screen {
	case screenSetup:
		return m.viewSetup()
	case screenAdd:
		return m.viewAdd()
	case screenDetail:
		return m.viewDetail()
	case screenStats:
		return m.viewStats()
	case screenSettings:
		return m.viewSettings()
	default:
		return m.viewList()
	}
}

// viewSetup renders the first-run screen
func (m model) viewSetup() string {
	var s string

	s += titleStyle.Render("\n╔═══════════════════════════════════════════════════════════╗\n" +
		"║            Welcome to Job Application Tracker             ║\n" +
		"╚═══════════════════════════════════════════════════════════╝\n")

	s += lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Render("\nWhat should we call you?\n\n")

	s += m.nameInput.View() + "\n"

	s += subtitleStyle.Italic(true).
		Render(fmt.Sprintf("\nData is stored in %s\n", m.snap.storageDir))

	s += m.messages()
	s += helpStyle.Render("\n\nPress Enter to continue | Esc or Ctrl+C to quit")

	return docStyle.Render(s)
}

// viewList renders the application list screen
func (m model) viewList() string {
	if !m.ready {
		return "Loading..."
	}

	header := titleStyle.Render(m.snap.greeting) + "\n" +
		subtitleStyle.Render(fmt.Sprintf("%d application(s) • %s", len(m.snap.apps), m.snap.storageDir)) + "\n"

	if m.searchTerm != "" {
		header += subtitleStyle.Render(fmt.Sprintf("Filtered by %s %q (esc to clear)", m.searchMode, m.searchTerm)) + "\n"
	}

	view := header + m.list.View()

	if m.searching {
		view += "\n\n" + lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Search by %s: ", m.searchMode)) +
			m.searchInput.View() + "\n" +
			helpStyle.Render("Enter to search | Tab to switch link/company | Esc to cancel")
	}

	if m.confirmDelete {
		if item, ok := m.list.SelectedItem().(applicationItem); ok {
			view += warningStyle.Render(fmt.Sprintf("\n\n⚠ Delete the application to %s?\n", item.app.Company)) +
				helpStyle.Render(item.app.Link+"\nPress Y to confirm | any other key to cancel")
		}
	}

	if m.confirmDeleteAll {
		view += "\n\n" +
			errorStyle.Render("⚠ WARNING: DELETE ALL APPLICATIONS") + "\n\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).
				Render(fmt.Sprintf("This removes %d application(s) from %s\n\n", len(m.snap.apps), m.snap.storageDir)) +
			errorStyle.Render("Type 'DELETE' to confirm: ") + "\n" +
			m.deleteAllInput.View() + "\n\n" +
			helpStyle.Render("Press Enter to confirm | ESC to cancel")
	}

	view += m.messages()
	view += helpStyle.Render("\n\nKeys: a=add  enter=details  c=copy-link  d=delete  D=delete-all  /=search  s=stats  p=settings  q=quit")
	return view
}

// messages renders the current error and status lines
func (m model) messages() string {
	var s string
	if m.errorMessage != "" {
		s += errorStyle.Render("\n⚠ " + m.errorMessage)
	}
	if m.statusMessage != "" {
		s += statusStyle.Render("\n✓ " + m.statusMessage)
	}
	return s
}
