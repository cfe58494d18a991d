package ui

import (
	"github.com/charmbracelet/bubbles/list"

	"jobtracker/engine"
	"jobtracker/models"
	"jobtracker/stats"
)

// applicationItem wraps a JobApplication and implements the list.Item interface
type applicationItem struct {
	app models.JobApplication
}

// FilterValue implements list.Item
func (i applicationItem) FilterValue() string {
	return i.app.Company
}

// Title implements list.DefaultItem
func (i applicationItem) Title() string {
	if i.app.Role == "" {
		return i.app.Company
	}
	return i.app.Company + " · " + i.app.Role
}

// Description implements list.DefaultItem
func (i applicationItem) Description() string {
	return i.app.AppliedDate + " • " + i.app.Link
}

func toItems(apps []models.JobApplication) []list.Item {
	items := make([]list.Item, len(apps))
	for i, app := range apps {
		items[i] = applicationItem{app: app}
	}
	return items
}

// snapshot is a copy of the tracker state taken after every change.
// View reads only the snapshot so it never races a running command.
type snapshot struct {
	greeting      string
	firstRun      bool
	userName      string
	roles         []string
	storageDir    string
	storageSource string
	apps          []models.JobApplication
	summary       stats.Summary
	daily         []stats.DayCount
	loadWarning   error
}

func takeSnapshot(t *engine.Tracker) snapshot {
	s := t.Settings()
	return snapshot{
		greeting:      t.Greeting(),
		firstRun:      s.IsFirstRun(),
		userName:      s.UserName(),
		roles:         s.JobRoles(),
		storageDir:    s.StorageDirectory(),
		storageSource: s.StorageSource().String(),
		apps:          t.Applications(),
		summary:       t.Stats(),
		daily:         t.Daily(),
		loadWarning:   t.LoadWarning(),
	}
}
