package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/config"
	"github.com/zhubert/studydesk/internal/format"
)

// =============================================================================
// StatusPickerState - State for changing an application's status
// =============================================================================

type StatusPickerState struct {
	ApplicationID string
	University    string
	presets       []config.StatusPreset
	selected      int
	form          *huh.Form
}

func (*StatusPickerState) modalState() {}

func (s *StatusPickerState) Title() string { return "Update Status" }

func (s *StatusPickerState) Help() string {
	return "up/down: choose  Enter: apply  Esc: cancel"
}

func (s *StatusPickerState) Render() string {
	body := mutedText(s.University) + "\n\n" + s.form.View()
	if p, ok := s.Selected(); ok && format.ValidHex(p.Color) {
		preview := lipgloss.NewStyle().
			Background(lipgloss.Color(p.Color)).
			Foreground(lipgloss.Color(format.Contrast(p.Color))).
			Padding(0, 1).
			Render(p.Label)
		body += "\n" + preview + "\n"
	}
	return layout(s.Title(), body, s.Help())
}

func (s *StatusPickerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, msg)
	return s, cmd
}

// Selected returns the highlighted preset
func (s *StatusPickerState) Selected() (config.StatusPreset, bool) {
	if s.selected < 0 || s.selected >= len(s.presets) {
		return config.StatusPreset{}, false
	}
	return s.presets[s.selected], true
}

// NewStatusPickerState creates a picker starting on the current status
func NewStatusPickerState(applicationID, university, current string, presets []config.StatusPreset) *StatusPickerState {
	s := &StatusPickerState{
		ApplicationID: applicationID,
		University:    university,
		presets:       presets,
	}

	options := make([]huh.Option[int], len(presets))
	for i, p := range presets {
		options[i] = huh.NewOption(p.Label, i)
		if p.Label == current {
			s.selected = i
		}
	}

	s.form = newForm(ModalInputWidth,
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Status").
				Options(options...).
				Height(min(len(presets)+1, ModalMaxVisibleLines)).
				Value(&s.selected),
		),
	)
	return s
}
