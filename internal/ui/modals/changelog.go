package modals

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/changelog"
)

// =============================================================================
// ChangelogState - State for the "What's New" modal
// =============================================================================

type ChangelogState struct {
	// Version is recorded as seen when the modal is dismissed
	Version  string
	entries  []changelog.Entry
	viewport viewport.Model
}

func (*ChangelogState) modalState() {}

func (s *ChangelogState) Title() string { return "What's New" }

func (s *ChangelogState) Help() string {
	if s.viewport.TotalLineCount() > s.viewport.Height() {
		return "up/down: scroll  Enter/Esc: dismiss"
	}
	return "Press Enter or Esc to dismiss"
}

func (s *ChangelogState) Render() string {
	return layout(s.Title(), s.viewport.View(), s.Help())
}

func (s *ChangelogState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// SetSize fits the notes to the space the modal is given
func (s *ChangelogState) SetSize(width, height int) {
	s.viewport.SetWidth(max(width-6, 10))
	s.viewport.SetHeight(max(min(height-8, ModalMaxVisibleLines), 3))
	s.viewport.SetContent(renderEntries(s.entries, s.viewport.Width()))
}

func renderEntries(entries []changelog.Entry, width int) string {
	version := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	bullet := lipgloss.NewStyle().Foreground(ColorSecondary).Render("  - ")
	text := lipgloss.NewStyle().Foreground(ColorText).Width(max(width-4, 10))

	var lines []string
	for i, e := range entries {
		if i > 0 {
			lines = append(lines, "")
		}
		header := "v" + e.Version
		if e.Date != "" {
			header += " (" + e.Date + ")"
		}
		lines = append(lines, version.Render(header))

		for _, change := range e.Changes {
			for j, line := range strings.Split(text.Render(change), "\n") {
				if j == 0 {
					lines = append(lines, bullet+line)
				} else {
					lines = append(lines, "    "+line)
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

// NewChangelogState lists entries, newest first, for the running version.
func NewChangelogState(version string, entries []changelog.Entry) *ChangelogState {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	s := &ChangelogState{Version: version, entries: entries, viewport: vp}
	s.SetSize(ModalWidth, ModalMaxVisibleLines+8)
	return s
}
