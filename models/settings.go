package models

import "encoding/json"

// File names shared by everything stored in a storage directory
const (
	SettingsFileName = "settings.json"
	RecordsFileName  = "job_data.json"
)

// DefaultJobRoles is the role list a fresh installation starts with
var DefaultJobRoles = []string{
	"Software Engineer",
	"Associate Software Engineer",
	"Software Engineer Intern",
	"ML Engineer",
	"AI Engineer",
	"Associate ML Engineer",
	"Associate AI Engineer",
	"Data Scientist",
	"ML Intern",
	"AI Intern",
	"Data Science Intern",
}

// Settings represents the persisted user settings document
type Settings struct {
	UserName      string   `json:"userName"`
	JobRoles      []string `json:"jobRoles"`
	DataDirectory string   `json:"dataDirectory,omitempty"` // absolute; empty means the install directory
}

// DefaultSettings returns the settings used before the user has saved anything
func DefaultSettings() Settings {
	roles := make([]string, len(DefaultJobRoles))
	copy(roles, DefaultJobRoles)
	return Settings{JobRoles: roles}
}

// UnmarshalJSON accepts the legacy "user_name" and "job_roles" keys
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserName       *string  `json:"userName"`
		JobRoles       []string `json:"jobRoles"`
		DataDirectory  string   `json:"dataDirectory"`
		LegacyUserName string   `json:"user_name"`
		LegacyJobRoles []string `json:"job_roles"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.UserName = raw.LegacyUserName
	if raw.UserName != nil {
		s.UserName = *raw.UserName
	}
	s.JobRoles = raw.JobRoles
	if s.JobRoles == nil {
		s.JobRoles = raw.LegacyJobRoles
	}
	s.DataDirectory = raw.DataDirectory
	return nil
}

// StoragePointer is the content of the pointer file kept outside the storage
// directory so the data can be found after the executable moves
type StoragePointer struct {
	DataDirectory string `json:"dataDirectory"`
}
