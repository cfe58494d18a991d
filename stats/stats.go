// Package stats computes aggregate figures over a snapshot of job applications.
// Every function is pure; callers pass the records they want summarized.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"jobtracker/models"
)

// NotSpecifiedRole is the label used for applications without a role
const NotSpecifiedRole = "Not Specified"

// Summary holds the basic statistics shown on the statistics screen
type Summary struct {
	TotalApplications  int            `json:"totalApplications"`
	UniqueCompanies    int            `json:"uniqueCompanies"`
	ApplicationsByRole map[string]int `json:"applicationsByRole"`
	DailyRate          float64        `json:"dailyRate"`
	TotalDays          int            `json:"totalDays"`
}

// RoleCount is one entry of the role breakdown
type RoleCount struct {
	Role  string
	Count int
}

// DayCount is the number of applications sent on one calendar day
type DayCount struct {
	Date  time.Time
	Count int
}

// Basic computes totals, distinct companies, per-role counts and the daily rate.
//
// Dates that cannot be parsed are left out of the day range but the record still
// counts toward the total.
func Basic(records []models.JobApplication) Summary {
	if len(records) == 0 {
		return Summary{ApplicationsByRole: map[string]int{}}
	}

	companies := make(map[string]struct{})
	byRole := make(map[string]int)
	var first, last time.Time
	seenDate := false

	for _, rec := range records {
		if company := strings.TrimSpace(rec.Company); company != "" {
			companies[company] = struct{}{}
		}

		role := rec.Role
		if strings.TrimSpace(role) == "" {
			role = NotSpecifiedRole
		}
		byRole[role]++

		day, ok := appliedDay(rec)
		if !ok {
			continue
		}
		if !seenDate || day.Before(first) {
			first = day
		}
		if !seenDate || day.After(last) {
			last = day
		}
		seenDate = true
	}

	summary := Summary{
		TotalApplications:  len(records),
		UniqueCompanies:    len(companies),
		ApplicationsByRole: byRole,
	}
	if seenDate {
		summary.TotalDays = max(daysBetween(first, last)+1, 1)
		summary.DailyRate = round2(float64(summary.TotalApplications) / float64(summary.TotalDays))
	}
	return summary
}

// RolesByCount returns the role breakdown ordered by count, then by role name
func (s Summary) RolesByCount() []RoleCount {
	out := make([]RoleCount, 0, len(s.ApplicationsByRole))
	for role, count := range s.ApplicationsByRole {
		out = append(out, RoleCount{Role: role, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Role < out[j].Role
	})
	return out
}

// Daily counts applications per calendar day, oldest first.
// Days without applications are not included.
func Daily(records []models.JobApplication) []DayCount {
	counts := make(map[time.Time]int)
	for _, rec := range records {
		if day, ok := appliedDay(rec); ok {
			counts[day]++
		}
	}

	out := make([]DayCount, 0, len(counts))
	for day, count := range counts {
		out = append(out, DayCount{Date: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// appliedDay returns the record's date truncated to a UTC calendar day
func appliedDay(rec models.JobApplication) (time.Time, bool) {
	if strings.TrimSpace(rec.AppliedDate) == "" {
		return time.Time{}, false
	}
	t, err := models.ParseAppliedDate(rec.AppliedDate)
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
