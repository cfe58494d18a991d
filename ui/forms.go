package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtracker/stats"
)

// Fields of the add form, in tab order
const (
	fieldCompany = iota
	fieldLink
	fieldRole
	fieldDate
	fieldCount
)

// addForm collects a new application. The role is picked from the configured
// role list rather than typed.
type addForm struct {
	company textinput.Model
	link    textinput.Model
	date    textinput.Model
	roles   []string // configured roles, "" first for no role
	roleIdx int
	focus   int
}

func newAddForm(roles []string) addForm {
	company := textinput.New()
	company.Placeholder = "Company"
	company.CharLimit = 128
	company.Width = 50
	company.Focus()

	link := textinput.New()
	link.Placeholder = "https://..."
	link.CharLimit = 512
	link.Width = 50

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD (blank for today)"
	date.CharLimit = 10
	date.Width = 30

	options := append([]string{""}, roles...)
	roleIdx := 0
	if len(roles) > 0 {
		roleIdx = 1
	}

	return addForm{
		company: company,
		link:    link,
		date:    date,
		roles:   options,
		roleIdx: roleIdx,
		focus:   fieldCompany,
	}
}

// role returns the selected role, empty for none
func (f addForm) role() string {
	if f.roleIdx < 0 || f.roleIdx >= len(f.roles) {
		return ""
	}
	return f.roles[f.roleIdx]
}

// setFocus moves the cursor to field, wrapping around
func (f *addForm) setFocus(field int) {
	f.focus = (field + fieldCount) % fieldCount
	f.company.Blur()
	f.link.Blur()
	f.date.Blur()
	switch f.focus {
	case fieldCompany:
		f.company.Focus()
	case fieldLink:
		f.link.Focus()
	case fieldDate:
		f.date.Focus()
	}
}

func (f *addForm) cycleRole(delta int) {
	n := len(f.roles)
	if n == 0 {
		return
	}
	f.roleIdx = (f.roleIdx + delta + n) % n
}

// updateAdd handles updates for the add form
func (m model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.screen = screenList
			m.errorMessage = ""
			m.statusMessage = "Cancelled"
			return m, nil
		case "tab", "down":
			m.form.setFocus(m.form.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.form.setFocus(m.form.focus - 1)
			return m, nil
		case "enter":
			company := strings.TrimSpace(m.form.company.Value())
			link := strings.TrimSpace(m.form.link.Value())
			if company == "" || link == "" {
				m.errorMessage = "Company and job link are required"
				return m, nil
			}
			m.errorMessage = ""
			return m, addApplicationCmd(m.tracker, company, link, m.form.role(), m.form.date.Value())
		}

		if m.form.focus == fieldRole {
			switch key.String() {
			case "left", "h":
				m.form.cycleRole(-1)
			case "right", "l", " ":
				m.form.cycleRole(1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldCompany:
		m.form.company, cmd = m.form.company.Update(msg)
	case fieldLink:
		m.form.link, cmd = m.form.link.Update(msg)
	case fieldDate:
		m.form.date, cmd = m.form.date.Update(msg)
	}
	return m, cmd
}

// viewAdd renders the add form
func (m model) viewAdd() string {
	label := func(field int, text string) string {
		style := lipgloss.NewStyle().Width(10)
		if m.form.focus == field {
			style = style.Foreground(lipgloss.Color("#00FFFF")).Bold(true)
		}
		return style.Render(text)
	}

	role := m.form.role()
	if role == "" {
		role = "(none)"
	}
	roleView := fmt.Sprintf("◀ %s ▶", role)
	if m.form.focus == fieldRole {
		roleView = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF")).Render(roleView)
	}

	s := titleStyle.Render("Add Application") + "\n\n" +
		label(fieldCompany, "Company") + m.form.company.View() + "\n" +
		label(fieldLink, "Job link") + m.form.link.View() + "\n" +
		label(fieldRole, "Role") + roleView + "\n" +
		label(fieldDate, "Applied") + m.form.date.View() + "\n"

	s += m.messages()
	s += helpStyle.Render("\n\nTab/↓ next field | ←/→ change role | Enter to save | Esc to cancel")
	return docStyle.Render(s)
}

// updateDetail handles updates for the detail screen
func (m model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.detail == nil {
		return m, nil
	}

	if m.confirmDelete {
		m.confirmDelete = false
		if key.String() == "y" || key.String() == "d" {
			return m, deleteApplicationCmd(m.tracker, m.detail.Link)
		}
		m.statusMessage = "Cancelled"
		return m, nil
	}

	switch key.String() {
	case "esc", "backspace", "q":
		m.detail = nil
		m.screen = screenList
		m.errorMessage = ""
		m.statusMessage = ""
	case "c":
		return m, copyLinkCmd(m.detail.Link)
	case "d":
		m.confirmDelete = true
		m.errorMessage = ""
		m.statusMessage = ""
	}
	return m, nil
}

// viewDetail renders one application
func (m model) viewDetail() string {
	if m.detail == nil {
		return ""
	}

	row := func(name, value string) string {
		return lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("#888888")).Render(name) + value + "\n"
	}

	role := m.detail.Role
	if role == "" {
		role = stats.NotSpecifiedRole
	}

	s := titleStyle.Render(m.detail.Company) + "\n\n" +
		row("Link", m.detail.Link) +
		row("Role", role) +
		row("Applied", m.detail.AppliedDate)

	if m.confirmDelete {
		s += warningStyle.Render("\n⚠ Delete this application?\n") +
			helpStyle.Render("Press Y to confirm | any other key to cancel")
	}

	s += m.messages()
	s += helpStyle.Render("\n\nc=copy link  d=delete  esc=back")
	return docStyle.Render(s)
}
