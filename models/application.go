package models

import (
	"encoding/json"
	"strings"
	"time"
)

// JobApplication represents a single job application record
type JobApplication struct {
	Company     string `json:"company"`
	Link        string `json:"link"`
	Role        string `json:"role"`
	AppliedDate string `json:"appliedDate"` // YYYY-MM-DD
}

// UnmarshalJSON accepts the legacy "applied_date" key written by older releases
func (a *JobApplication) UnmarshalJSON(data []byte) error {
	var raw struct {
		Company           string  `json:"company"`
		Link              string  `json:"link"`
		Role              string  `json:"role"`
		AppliedDate       *string `json:"appliedDate"`
		LegacyAppliedDate string  `json:"applied_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.Company = raw.Company
	a.Link = raw.Link
	a.Role = raw.Role
	a.AppliedDate = raw.LegacyAppliedDate
	if raw.AppliedDate != nil {
		a.AppliedDate = *raw.AppliedDate
	}
	return nil
}

// NormalizeLink returns the comparison key for a link: trimmed and lower-cased.
// Two records with the same key are duplicates.
func NormalizeLink(link string) string {
	return strings.ToLower(strings.TrimSpace(link))
}

// DateLayout is the calendar-date format of AppliedDate
const DateLayout = "2006-01-02"

// dateLayouts also accepts unpadded months and days written by older releases
var dateLayouts = []string{
	DateLayout,
	"2006-1-2",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseAppliedDate parses an applied date. Values containing a 'T' are read as a
// date-time, anything else as a plain calendar date.
func ParseAppliedDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := dateLayouts
	if strings.Contains(s, "T") {
		layouts = dateTimeLayouts
	}

	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
