package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

const (
	starOn  = "★"
	starOff = "☆"
	// flagCells is the width reserved for a country flag. Regional indicator
	// pairs render two cells wide; an invalid code leaves the cells blank.
	flagCells = 2
)

// Sidebar is the left panel listing applications. It only renders; the
// applications view-model owns the data and the selection.
type Sidebar struct {
	title        string
	items        []models.Application
	selectedID   string
	unread       map[string]int
	busy         map[string]bool
	pendingID    string
	width        int
	height       int
	focused      bool
	loading      bool
	scrollOffset int
}

// NewSidebar creates an empty application list
func NewSidebar() *Sidebar {
	return &Sidebar{title: "Applications"}
}

// SetTitle sets the panel title
func (s *Sidebar) SetTitle(title string) {
	s.title = title
}

// SetSize sets the panel size including borders
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets whether the list has focus
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns whether the list has focus
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetLoading shows a loading line in place of an empty list
func (s *Sidebar) SetLoading(loading bool) {
	s.loading = loading
}

// SetItems replaces the rows and the selected id
func (s *Sidebar) SetItems(items []models.Application, selectedID string) {
	s.items = items
	s.selectedID = selectedID
}

// SetUnread sets per-application unread message counts
func (s *Sidebar) SetUnread(unread map[string]int) {
	s.unread = unread
}

// SetBusy marks applications with a request in flight
func (s *Sidebar) SetBusy(busy map[string]bool) {
	s.busy = busy
}

// SetPendingDelete marks the row awaiting delete confirmation
func (s *Sidebar) SetPendingDelete(id string) {
	s.pendingID = id
}

// SelectedIndex returns the index of the selected row, or -1
func (s *Sidebar) SelectedIndex() int {
	for i, a := range s.items {
		if a.ID == s.selectedID {
			return i
		}
	}
	return -1
}

// StatusBadge renders a status label on its own colour, with black or
// white text picked for contrast.
func StatusBadge(status, color string) string {
	if status == "" {
		return ""
	}
	if !format.ValidHex(color) {
		return lipgloss.NewStyle().Foreground(ColorTextMuted).Render("[" + status + "]")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(format.Contrast(color))).
		Padding(0, 1).
		Render(status)
}

// FlagCell returns the country's flag padded to a fixed width so that
// rows with and without a flag line up.
func FlagCell(code string) string {
	flag := format.CountryFlag(code)
	if w := uniseg.StringWidth(flag); w < flagCells {
		flag += strings.Repeat(" ", flagCells-w)
	}
	return flag
}

// fitLine truncates or pads s to exactly width cells
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// renderRow builds the two lines of one application
func (s *Sidebar) renderRow(a models.Application, width int) []string {
	star := StarStyle.Render(starOff)
	if a.Starred {
		star = StarStyle.Render(starOn)
	}
	badge := StatusBadge(a.Status, a.StatusColor)
	if s.unread[a.ID] > 0 {
		badge = lipgloss.NewStyle().Foreground(ColorWarning).Render(fmt.Sprintf("●%d ", s.unread[a.ID])) + badge
	}
	if s.busy[a.ID] {
		badge = StatusLoadingStyle.Render("… ") + badge
	}

	head := star + " " + FlagCell(a.CountryCode) + " "
	nameWidth := width - ansi.StringWidth(head) - ansi.StringWidth(badge) - 1
	first := head + fitLine(a.University, max(nameWidth, 1)) + " " + badge

	sub := a.Program
	if intake := format.Intake(a.Intake, a.Year); intake != "" {
		sub += " · " + intake
	}
	if a.StudentName != "" {
		sub = a.StudentName + " · " + sub
	}
	second := "     " + SidebarMutedStyle.Render(fitLine(sub, max(width-5, 1)))

	if a.ID == s.pendingID {
		second = "     " + StatusErrorStyle.Render(fitLine("delete? y to confirm, n to cancel", max(width-5, 1)))
	}
	return []string{fitLine(first, width), fitLine(second, width)}
}

// View renders the list
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height) - TitleHeight
	rowWidth := max(innerWidth-2, 1) // item padding

	var allLines []string
	selectedStartLine := 0
	switch {
	case len(s.items) == 0 && s.loading:
		allLines = append(allLines, StatusLoadingStyle.Render("Loading applications..."))
	case len(s.items) == 0:
		allLines = append(allLines, lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No applications."))
	default:
		for _, a := range s.items {
			itemStyle := SidebarItemStyle.Width(innerWidth)
			if a.ID == s.selectedID {
				itemStyle = SidebarSelectedStyle.Width(innerWidth)
				selectedStartLine = len(allLines)
			}
			for _, line := range s.renderRow(a, rowWidth) {
				allLines = append(allLines, itemStyle.Render(line))
			}
		}
	}

	allLines = s.scroll(allLines, selectedStartLine, innerHeight)

	title := PanelTitleStyle.Render(fmt.Sprintf("%s (%d)", s.title, len(s.items)))
	content := title + "\n" + strings.Join(allLines, "\n")

	return style.
		Width(s.width).
		Height(s.height).
		Render(content)
}

// scroll keeps the selected row (two lines) in view
func (s *Sidebar) scroll(lines []string, selectedStart, visible int) []string {
	if visible <= 0 {
		return nil
	}
	if selectedStart < s.scrollOffset {
		s.scrollOffset = selectedStart
	} else if selectedStart+1 >= s.scrollOffset+visible {
		s.scrollOffset = selectedStart + 2 - visible
	}
	maxScroll := max(len(lines)-visible, 0)
	s.scrollOffset = min(max(s.scrollOffset, 0), maxScroll)

	lines = lines[s.scrollOffset:]
	if len(lines) > visible {
		lines = lines[:visible]
	}
	return lines
}
