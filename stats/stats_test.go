package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker/models"
)

func rec(company, role, date string) models.JobApplication {
	return models.JobApplication{Company: company, Link: "http://" + company + "/" + date, Role: role, AppliedDate: date}
}

func TestBasic_Empty(t *testing.T) {
	got := Basic(nil)

	assert.Equal(t, Summary{ApplicationsByRole: map[string]int{}}, got)
	assert.NotNil(t, got.ApplicationsByRole)
}

func TestBasic_DailyRateOverRange(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("Acme", "Eng", "2024-01-01"),
		rec("Beta", "Eng", "2024-01-03"),
	})

	assert.Equal(t, 2, got.TotalApplications)
	assert.Equal(t, 2, got.UniqueCompanies)
	assert.Equal(t, 3, got.TotalDays)
	assert.Equal(t, 0.67, got.DailyRate)
}

func TestBasic_SameDay(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("Acme", "Eng", "2024-02-01"),
		rec("Beta", "Eng", "2024-02-01"),
		rec("Gamma", "Eng", "2024-02-01"),
	})

	assert.Equal(t, 1, got.TotalDays)
	assert.Equal(t, 3.0, got.DailyRate)
}

func TestBasic_RoleGrouping(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("A", "Eng", "2024-01-01"),
		rec("B", "Eng", "2024-01-01"),
		rec("C", "", "2024-01-01"),
		rec("D", "PM", "2024-01-01"),
	})

	assert.Equal(t, map[string]int{"Eng": 2, NotSpecifiedRole: 1, "PM": 1}, got.ApplicationsByRole)
}

func TestBasic_UniqueCompaniesTrimsAndSkipsBlank(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("Acme", "", "2024-01-01"),
		rec(" Acme ", "", "2024-01-01"),
		rec("   ", "", "2024-01-01"),
		rec("acme", "", "2024-01-01"),
	})

	assert.Equal(t, 4, got.TotalApplications)
	assert.Equal(t, 2, got.UniqueCompanies, "comparison is case-sensitive after trimming")
}

func TestBasic_UnparsableDatesAreSkipped(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("A", "", "not a date"),
		rec("B", "", ""),
		rec("C", "", "2024-05-10"),
		rec("D", "", "2024-05-11T09:30:00"),
	})

	assert.Equal(t, 4, got.TotalApplications)
	assert.Equal(t, 2, got.TotalDays)
	assert.Equal(t, 2.0, got.DailyRate)
}

func TestBasic_NoParseableDates(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("A", "", "garbage"),
		rec("B", "", ""),
	})

	assert.Equal(t, 2, got.TotalApplications)
	assert.Zero(t, got.TotalDays)
	assert.Zero(t, got.DailyRate)
}

func TestBasic_DateTimeWithOffset(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("A", "", "2024-01-01T23:30:00+05:00"),
		rec("B", "", "2024-01-02"),
	})

	assert.Equal(t, 2, got.TotalDays)
	assert.Equal(t, 1.0, got.DailyRate)
}

func TestBasic_LegacyDateFormats(t *testing.T) {
	got := Basic([]models.JobApplication{
		rec("A", "", "2024-1-5"),
		rec("B", "", "2024-01-06T10:00+05:00"),
	})

	assert.Equal(t, 2, got.TotalDays)
	assert.Equal(t, 1.0, got.DailyRate)
}

func TestRolesByCount(t *testing.T) {
	s := Summary{ApplicationsByRole: map[string]int{"PM": 1, "Eng": 3, "Data": 1}}

	assert.Equal(t, []RoleCount{
		{Role: "Eng", Count: 3},
		{Role: "Data", Count: 1},
		{Role: "PM", Count: 1},
	}, s.RolesByCount())
}

func TestDaily(t *testing.T) {
	got := Daily([]models.JobApplication{
		rec("A", "", "2024-01-03"),
		rec("B", "", "2024-01-01"),
		rec("C", "", "2024-01-03T12:00:00"),
		rec("D", "", "bogus"),
	})

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got[1].Date)
	assert.Equal(t, 2, got[1].Count)
}

func TestDaily_Empty(t *testing.T) {
	assert.Empty(t, Daily(nil))
}
