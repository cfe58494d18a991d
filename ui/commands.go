package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"jobtracker/engine"
	"jobtracker/models"
	"jobtracker/store"
)

// refreshMsg is sent when a change to the tracker completes
type refreshMsg struct {
	snap   snapshot
	status string
	err    error
}

// searchMsg carries the records matching an applied search
type searchMsg struct {
	term    string
	mode    store.SearchMode
	results []models.JobApplication
}

// copyLinkMsg is sent when copying a link to the clipboard completes
type copyLinkMsg struct {
	link string
	err  error
}

// The tracker is not safe for concurrent use. Commands below are built inside
// Update, so they touch the tracker on the event loop goroutine and the
// returned tea.Cmd only delivers the finished message.

// deliver wraps an already computed message in a command
func deliver(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// mutateCmd runs fn against the tracker and reports the resulting state
func mutateCmd(t *engine.Tracker, status string, fn func() error) tea.Cmd {
	err := fn()
	return deliver(refreshMsg{snap: takeSnapshot(t), status: status, err: err})
}

func updateUserNameCmd(t *engine.Tracker, name string) tea.Cmd {
	return mutateCmd(t, "Name saved", func() error {
		return t.Settings().UpdateUserName(name)
	})
}

func addApplicationCmd(t *engine.Tracker, company, link, role, date string) tea.Cmd {
	return mutateCmd(t, fmt.Sprintf("Added application to %s", company), func() error {
		return t.Repository().Add(company, link, role, date)
	})
}

// deleteApplicationCmd removes every record with the given link
func deleteApplicationCmd(t *engine.Tracker, link string) tea.Cmd {
	n, err := t.Repository().DeleteByLink(link)
	status := fmt.Sprintf("Deleted %d application(s)", n)
	return deliver(refreshMsg{snap: takeSnapshot(t), status: status, err: err})
}

func deleteAllCmd(t *engine.Tracker) tea.Cmd {
	return mutateCmd(t, "Deleted all applications", func() error {
		return t.Repository().DeleteAll()
	})
}

func addRoleCmd(t *engine.Tracker, role string) tea.Cmd {
	return mutateCmd(t, "Role list saved", func() error {
		return t.Settings().AddJobRole(role)
	})
}

func removeRoleCmd(t *engine.Tracker, role string) tea.Cmd {
	return mutateCmd(t, fmt.Sprintf("Removed role %s", role), func() error {
		return t.Settings().RemoveJobRole(role)
	})
}

func resetRolesCmd(t *engine.Tracker) tea.Cmd {
	return mutateCmd(t, "Role list reset to defaults", func() error {
		return t.Settings().UpdateJobRoles(models.DefaultJobRoles)
	})
}

func changeStorageCmd(t *engine.Tracker, dir string) tea.Cmd {
	return mutateCmd(t, "Storage directory changed", func() error {
		return t.ChangeStorageDirectory(dir)
	})
}

func searchCmd(t *engine.Tracker, term string, mode store.SearchMode) tea.Cmd {
	return deliver(searchMsg{term: term, mode: mode, results: t.Repository().Search(term, mode)})
}

// copyLinkCmd only touches the clipboard, so it runs off the event loop
func copyLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		return copyLinkMsg{link: link, err: clipboard.WriteAll(link)}
	}
}
