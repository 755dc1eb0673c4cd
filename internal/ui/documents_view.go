package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/studydesk/internal/documents"
	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

const (
	docTypeColWidth = 24
	docSizeColWidth = 9
	docDateColWidth = 12
)

// DocumentsView renders the document library as a table
type DocumentsView struct {
	snap         documents.Snapshot
	downloading  map[string]bool
	width        int
	height       int
	focused      bool
	scrollOffset int
}

// NewDocumentsView creates an empty document table
func NewDocumentsView() *DocumentsView {
	return &DocumentsView{}
}

// SetSize sets the panel size including borders
func (v *DocumentsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetFocused sets whether the table has focus
func (v *DocumentsView) SetFocused(focused bool) {
	v.focused = focused
}

// SetSnapshot replaces the rows
func (v *DocumentsView) SetSnapshot(s documents.Snapshot) {
	v.snap = s
}

// SetDownloading marks documents with a download in flight
func (v *DocumentsView) SetDownloading(ids map[string]bool) {
	v.downloading = ids
}

// FilterLabel names the active type filter
func FilterLabel(t models.DocumentType) string {
	if t == "" {
		return "All types"
	}
	return t.Label()
}

func (v *DocumentsView) header(width int) string {
	name := max(width-docTypeColWidth-docSizeColWidth-docDateColWidth-3, 8)
	return LabelStyle.Render(fitLine(
		fmt.Sprintf("%-*s %-*s %*s %-*s", name, "Name", docTypeColWidth, "Type", docSizeColWidth, "Size", docDateColWidth, "Uploaded"),
		width))
}

func (v *DocumentsView) renderRow(d models.Document, width int) string {
	name := max(width-docTypeColWidth-docSizeColWidth-docDateColWidth-3, 8)
	title := d.Name
	if v.downloading[d.ID] {
		title = "↓ " + title
	}
	line := fitLine(title, name) + " " +
		fitLine(d.Type.Label(), docTypeColWidth) + " " +
		fmt.Sprintf("%*s", docSizeColWidth, format.FileSize(d.Size)) + " " +
		fitLine(format.Date(d.UploadedAt), docDateColWidth)
	return fitLine(line, width)
}

// View renders the table
func (v *DocumentsView) View() string {
	ctx := GetViewContext()
	style := PanelStyle
	if v.focused {
		style = PanelFocusedStyle
	}
	innerWidth := ctx.InnerWidth(v.width)
	rowWidth := max(innerWidth-2, 1)

	var top []string
	title := fmt.Sprintf("Documents (%d of %d) · %s", len(v.snap.Visible), v.snap.Total, FilterLabel(v.snap.Filter))
	if v.snap.Uploading {
		title += " · uploading..."
	}
	top = append(top, PanelTitleStyle.Render(ansi.Truncate(title, innerWidth, "…")))
	if v.snap.Banner != "" {
		top = append(top, BannerStyle.Width(innerWidth).Render("! "+v.snap.Banner))
	}
	top = append(top, " "+v.header(rowWidth))

	var rows []string
	selected := 0
	switch {
	case len(v.snap.Visible) == 0 && v.snap.Loading:
		rows = append(rows, StatusLoadingStyle.Render("Loading documents..."))
	case len(v.snap.Visible) == 0:
		rows = append(rows, lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true).Render("No documents."))
	default:
		for i, d := range v.snap.Visible {
			itemStyle := SidebarItemStyle.Width(innerWidth)
			if d.ID == v.snap.SelectedID {
				itemStyle = SidebarSelectedStyle.Width(innerWidth)
				selected = i
			}
			line := v.renderRow(d, rowWidth)
			if d.ID == v.snap.PendingDelete {
				line = StatusErrorStyle.Render(fitLine("delete "+d.Name+"? y to confirm, n to cancel", rowWidth))
			}
			rows = append(rows, itemStyle.Render(line))
		}
	}

	visible := ctx.InnerHeight(v.height) - len(top)
	rows = v.scroll(rows, selected, visible)

	content := strings.Join(append(top, rows...), "\n")
	return style.Width(v.width).Height(v.height).Render(content)
}

func (v *DocumentsView) scroll(rows []string, selected, visible int) []string {
	if visible <= 0 {
		return nil
	}
	if selected < v.scrollOffset {
		v.scrollOffset = selected
	} else if selected >= v.scrollOffset+visible {
		v.scrollOffset = selected - visible + 1
	}
	v.scrollOffset = min(max(v.scrollOffset, 0), max(len(rows)-visible, 0))
	rows = rows[v.scrollOffset:]
	if len(rows) > visible {
		rows = rows[:visible]
	}
	return rows
}
