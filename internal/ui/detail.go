package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

// Detail shows the selected application above its chat
type Detail struct {
	app      models.Application
	has      bool
	width    int
	height   int
	focused  bool
	banner   string
	readOnly bool
}

// NewDetail creates an empty detail panel
func NewDetail() *Detail {
	return &Detail{}
}

// SetSize sets the panel size including borders
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetFocused sets whether the panel has focus
func (d *Detail) SetFocused(focused bool) {
	d.focused = focused
}

// SetApplication shows app. ok=false clears the panel.
func (d *Detail) SetApplication(app models.Application, ok bool) {
	d.app = app
	d.has = ok
}

// SetBanner shows a warning line above the details, e.g. when the list is
// placeholder data
func (d *Detail) SetBanner(banner string) {
	d.banner = banner
}

// SetReadOnly adds a hint that the caller cannot change the application
func (d *Detail) SetReadOnly(readOnly bool) {
	d.readOnly = readOnly
}

// detailRow is one label/value line
func detailRow(label, value string) string {
	if value == "" {
		value = "-"
	}
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value)
}

// View renders the panel
func (d *Detail) View() string {
	style := PanelStyle
	if d.focused {
		style = PanelFocusedStyle
	}
	innerWidth := GetViewContext().InnerWidth(d.width)

	var lines []string
	if d.banner != "" {
		lines = append(lines, BannerStyle.Width(innerWidth).Render("! "+d.banner))
	}

	if !d.has {
		lines = append(lines, SidebarMutedStyle.Render("No application selected."))
		return style.Width(d.width).Height(d.height).Render(strings.Join(lines, "\n"))
	}

	a := d.app
	title := a.University
	if flag := format.CountryFlag(a.CountryCode); flag != "" {
		title = flag + " " + title
	}
	if a.Starred {
		title = StarStyle.Render(starOn) + " " + title
	}
	lines = append(lines,
		PanelTitleStyle.Render(title),
		detailRow("Program", a.Program),
		detailRow("Country", strings.ToUpper(a.CountryCode)),
		detailRow("Intake", format.Intake(a.Intake, a.Year)),
		LabelStyle.Render("Status: ")+StatusBadge(a.Status, a.StatusColor),
		detailRow("Application ID", a.ApplicationID),
		detailRow("Submitted", format.Date(a.Date)),
	)
	if a.StudentName != "" {
		lines = append(lines, detailRow("Student", a.StudentName))
	}
	if a.PortalName != "" || a.PortalID != "" {
		lines = append(lines, detailRow("Portal", strings.TrimSpace(a.PortalName+" "+a.PortalID)))
	}
	if d.readOnly {
		lines = append(lines, "", SidebarMutedStyle.Render("Status changes are made by your advisor."))
	}

	content := lipgloss.NewStyle().Width(innerWidth).Render(strings.Join(lines, "\n"))
	return style.Width(d.width).Height(d.height).Render(content)
}
