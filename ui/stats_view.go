package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtracker/stats"
)

// maxDailyRows is how many recent days the daily chart shows
const maxDailyRows = 14

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AAFF"))

// bar renders count as a horizontal bar scaled so that peak fills width.
// Any positive count gets at least one cell.
func bar(count, peak, width int) string {
	if count <= 0 || peak <= 0 || width <= 0 {
		return ""
	}
	n := count * width / peak
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// recentDays returns the last n entries of a day series
func recentDays(days []stats.DayCount, n int) []stats.DayCount {
	if len(days) <= n {
		return days
	}
	return days[len(days)-n:]
}

// updateStats handles updates for the statistics screen
func (m model) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "s", "q", "backspace":
			m.screen = screenList
		}
	}
	return m, nil
}

// viewStats renders the summary, role breakdown and daily chart
func (m model) viewStats() string {
	sum := m.snap.summary
	s := titleStyle.Render("Statistics") + "\n\n"

	if sum.TotalApplications == 0 {
		s += subtitleStyle.Render("No applications yet. Add one from the list with 'a'.")
		s += helpStyle.Render("\n\nesc=back")
		return docStyle.Render(s)
	}

	s += fmt.Sprintf("Total applications  %d\n", sum.TotalApplications)
	s += fmt.Sprintf("Unique companies    %d\n", sum.UniqueCompanies)
	s += fmt.Sprintf("Days tracked        %d\n", sum.TotalDays)
	s += fmt.Sprintf("Daily rate          %.2f\n", sum.DailyRate)

	barWidth := max(m.width-40, 10)

	roles := sum.RolesByCount()
	s += "\n" + lipgloss.NewStyle().Bold(true).Render("By role") + "\n"
	peak := 0
	for _, rc := range roles {
		peak = max(peak, rc.Count)
	}
	for _, rc := range roles {
		s += fmt.Sprintf("%-28s %3d %s\n", truncate(rc.Role, 28), rc.Count, barStyle.Render(bar(rc.Count, peak, barWidth)))
	}

	days := recentDays(m.snap.daily, maxDailyRows)
	if len(days) > 0 {
		s += "\n" + lipgloss.NewStyle().Bold(true).Render("Recent days") + "\n"
		peak = 0
		for _, d := range days {
			peak = max(peak, d.Count)
		}
		for _, d := range days {
			s += fmt.Sprintf("%-28s %3d %s\n", d.Date.Format("Mon 2006-01-02"), d.Count, barStyle.Render(bar(d.Count, peak, barWidth)))
		}
	}

	s += helpStyle.Render("\nesc=back")
	return docStyle.Render(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
