package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const helpKeyWidth = 14

// shortcutItem is a selectable row of the help list
type shortcutItem struct {
	shortcut HelpShortcut
}

func (i shortcutItem) FilterValue() string {
	return i.shortcut.Key + " " + i.shortcut.Desc
}

// headingItem is a section title; it never matches a filter
type headingItem struct {
	title string
}

func (i headingItem) FilterValue() string { return "" }

type helpDelegate struct{}

func (d helpDelegate) Height() int                             { return 1 }
func (d helpDelegate) Spacing() int                            { return 0 }
func (d helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case headingItem:
		fmt.Fprint(w, lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Render(i.title))
	case shortcutItem:
		keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(helpKeyWidth)
		descStyle := lipgloss.NewStyle().Foreground(ColorText)
		prefix := "  "
		if index == m.Index() {
			keyStyle = keyStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			descStyle = descStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			prefix = "> "
		}
		fmt.Fprint(w, prefix+keyStyle.Render(i.shortcut.Key)+descStyle.Render(i.shortcut.Desc))
	}
}

// =============================================================================
// HelpState - State for the Help modal listing the keys valid on this page
// =============================================================================

type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: run  Esc: close"
}

func (s *HelpState) Render() string {
	return layout(s.Title(), s.list.View(), s.Help())
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize leaves room for the title and help lines
func (s *HelpState) SetSize(width, height int) {
	s.list.SetSize(width, max(height-4, 1))
}

// GetSelectedShortcut returns the highlighted shortcut, or nil when a
// heading is highlighted
func (s *HelpState) GetSelectedShortcut() *HelpShortcut {
	if si, ok := s.list.SelectedItem().(shortcutItem); ok {
		return &si.shortcut
	}
	return nil
}

// IsFiltering reports whether the filter input has focus
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpState lists sections in order, starting on the first shortcut
func NewHelpState(sections []HelpSection) *HelpState {
	var items []list.Item
	first := -1
	for _, section := range sections {
		if len(section.Shortcuts) == 0 {
			continue
		}
		items = append(items, headingItem{title: section.Title})
		for _, sc := range section.Shortcuts {
			if first < 0 {
				first = len(items)
			}
			items = append(items, shortcutItem{shortcut: sc})
		}
	}

	l := list.New(items, helpDelegate{}, ModalWidth, ModalMaxVisibleLines)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)
	if first >= 0 {
		l.Select(first)
	}
	return &HelpState{list: l}
}
