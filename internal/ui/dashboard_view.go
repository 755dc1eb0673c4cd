package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/dashboard"
	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

// maxRecentChats caps the conversations listed on the dashboard
const maxRecentChats = 5

// DashboardView renders a student's summary
type DashboardView struct {
	summary dashboard.Summary
	loaded  bool
	loading bool
	name    string
	width   int
	height  int
	now     func() time.Time
}

// NewDashboardView creates an empty dashboard
func NewDashboardView() *DashboardView {
	return &DashboardView{now: time.Now}
}

// SetSize sets the panel size including borders
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetSummary replaces the summary. loaded=false shows the loading state.
func (v *DashboardView) SetSummary(s dashboard.Summary, loaded, loading bool) {
	v.summary = s
	v.loaded = loaded
	v.loading = loading
}

// SetName sets the greeting name
func (v *DashboardView) SetName(name string) {
	v.name = name
}

// SetClock replaces the time source used for chat timestamps
func (v *DashboardView) SetClock(now func() time.Time) {
	v.now = now
}

func statTile(label string, value int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 2).
		Render(ValueStyle.Bold(true).Render(fmt.Sprintf("%d", value)) + "\n" + LabelStyle.Render(label))
}

// View renders the dashboard
func (v *DashboardView) View() string {
	innerWidth := GetViewContext().InnerWidth(v.width)
	var lines []string

	greeting := "Dashboard"
	if v.name != "" {
		greeting = "Welcome back, " + v.name
	}
	if v.loading {
		greeting += " · refreshing..."
	}
	lines = append(lines, PanelTitleStyle.Render(greeting))

	if !v.loaded {
		lines = append(lines, StatusLoadingStyle.Render("Loading dashboard..."))
		return PanelStyle.Width(v.width).Height(v.height).Render(strings.Join(lines, "\n"))
	}

	s := v.summary
	if s.Degraded() {
		lines = append(lines, BannerStyle.Width(innerWidth).Render(
			"! Could not load "+strings.Join(s.Failed, ", ")+". Showing sample data."))
	}

	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		statTile("Applications", len(s.Applications)),
		statTile("Documents", len(s.Documents)),
		statTile("Unread messages", s.Unread),
	))

	remaining := fmt.Sprintf("You can submit %d more application", s.Remaining)
	if s.Remaining != 1 {
		remaining += "s"
	}
	if s.Remaining <= 0 {
		remaining = fmt.Sprintf("You have reached the limit of %d applications", models.MaxApplicationsPerStudent)
	}
	lines = append(lines, SidebarMutedStyle.Render(remaining+"."))

	if counts := s.StatusCounts(); len(counts) > 0 {
		lines = append(lines, "", SectionTitleStyle.Render("By status"))
		for _, c := range counts {
			lines = append(lines, fmt.Sprintf("  %s %d", StatusBadge(c.Status, c.Color), c.Count))
		}
	}

	lines = append(lines, "", SectionTitleStyle.Render("Recent conversations"))
	if len(s.Chats) == 0 {
		lines = append(lines, SidebarMutedStyle.Render("  No conversations yet."))
	}
	for i, c := range s.Chats {
		if i == maxRecentChats {
			break
		}
		lines = append(lines, fitLine(v.chatLine(c), innerWidth))
	}

	return PanelStyle.Width(v.width).Height(v.height).Render(strings.Join(lines, "\n"))
}

func (v *DashboardView) chatLine(c models.ChatSummary) string {
	title := c.University
	if title == "" {
		title = c.ApplicationID
	}
	line := "  " + title
	if c.UnreadCount > 0 {
		line += lipgloss.NewStyle().Foreground(ColorWarning).Render(fmt.Sprintf(" ●%d", c.UnreadCount))
	}
	if c.LastMessage != "" {
		line += SidebarMutedStyle.Render(" · " + c.LastMessage)
	}
	if !c.UpdatedAt.IsZero() {
		line += ChatTimestampStyle.Render(" · " + format.RelativeTimestamp(c.UpdatedAt, v.now()))
	}
	return line
}
