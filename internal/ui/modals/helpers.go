package modals

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// RenderSelectableList renders a simple list with selection highlighting.
// Returns the rendered list string. selectedIndex indicates which item is selected.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		style := SidebarItemStyle
		prefix := "  "
		if i == selectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// TruncateString truncates a string from the end with ellipsis, counting
// display cells rather than bytes
func TruncateString(s string, maxLen int) string {
	return ansi.Truncate(s, maxLen, "...")
}

// layout stacks the title, body and help line the same way in every modal
func layout(title, body, help string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(title),
		body,
		ModalHelpStyle.Render(help),
	)
}

func mutedText(s string) string {
	return lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true).Render(s)
}
