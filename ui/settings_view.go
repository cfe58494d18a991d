package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingsField is the setting currently being edited
type settingsField int

const (
	editNone settingsField = iota
	editName
	editAddRole
	editStorage
)

func (f settingsField) prompt() string {
	switch f {
	case editName:
		return "Name: "
	case editAddRole:
		return "New role: "
	case editStorage:
		return "Storage directory: "
	default:
		return ""
	}
}

// startEdit focuses the settings input for field, prefilled with value
func (m model) startEdit(field settingsField, value string) (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60
	ti.SetValue(value)
	ti.Focus()

	m.settingsInput = ti
	m.settingsEdit = field
	m.errorMessage = ""
	m.statusMessage = ""
	return m, textinput.Blink
}

// updateSettings handles updates for the settings screen
func (m model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)

	if m.settingsEdit != editNone {
		if ok {
			switch key.String() {
			case "esc":
				m.settingsEdit = editNone
				m.statusMessage = "Cancelled"
				return m, nil
			case "enter":
				return m.applyEdit()
			}
		}
		var cmd tea.Cmd
		m.settingsInput, cmd = m.settingsInput.Update(msg)
		return m, cmd
	}

	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "q", "p":
		m.screen = screenList
		m.errorMessage = ""
		m.statusMessage = ""
		return m, nil
	case "up", "k":
		if m.roleCursor > 0 {
			m.roleCursor--
		}
	case "down", "j":
		if m.roleCursor < len(m.snap.roles)-1 {
			m.roleCursor++
		}
	case "n":
		return m.startEdit(editName, m.snap.userName)
	case "a":
		return m.startEdit(editAddRole, "")
	case "m":
		return m.startEdit(editStorage, m.snap.storageDir)
	case "x":
		if m.roleCursor < len(m.snap.roles) {
			return m, removeRoleCmd(m.tracker, m.snap.roles[m.roleCursor])
		}
	case "R":
		return m, resetRolesCmd(m.tracker)
	}
	return m, nil
}

// applyEdit saves the value typed into the settings input
func (m model) applyEdit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.settingsInput.Value())
	field := m.settingsEdit
	m.settingsEdit = editNone

	switch field {
	case editName:
		if value == "" {
			m.errorMessage = "Name must not be empty"
			return m, nil
		}
		return m, updateUserNameCmd(m.tracker, value)
	case editAddRole:
		if value == "" {
			return m, nil
		}
		return m, addRoleCmd(m.tracker, value)
	case editStorage:
		if value == "" {
			m.errorMessage = "Storage directory must not be empty"
			return m, nil
		}
		if value == m.snap.storageDir {
			return m, nil
		}
		m.statusMessage = "Moving storage..."
		return m, changeStorageCmd(m.tracker, value)
	}
	return m, nil
}

// viewSettings renders the user settings
func (m model) viewSettings() string {
	label := lipgloss.NewStyle().Width(20).Foreground(lipgloss.Color("#888888"))

	name := m.snap.userName
	if name == "" {
		name = "(not set)"
	}

	s := titleStyle.Render("Settings") + "\n\n" +
		label.Render("Name") + name + "\n" +
		label.Render("Storage directory") + m.snap.storageDir + "\n" +
		label.Render("Resolved from") + m.snap.storageSource + "\n\n" +
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Job roles (%d)", len(m.snap.roles))) + "\n"

	if len(m.snap.roles) == 0 {
		s += subtitleStyle.Render("  no roles configured") + "\n"
	}
	for i, role := range m.snap.roles {
		cursor := "  "
		line := role
		if i == m.roleCursor {
			cursor = "▸ "
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF")).Render(role)
		}
		s += cursor + line + "\n"
	}

	if m.settingsEdit != editNone {
		s += "\n" + lipgloss.NewStyle().Bold(true).Render(m.settingsEdit.prompt()) + m.settingsInput.View() + "\n" +
			helpStyle.Render("Enter to save | Esc to cancel")
	}

	s += m.messages()
	s += helpStyle.Render("\n\nn=edit name  a=add role  x=remove role  R=reset roles  m=move storage  esc=back")
	return docStyle.Render(s)
}
