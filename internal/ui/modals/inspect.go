package modals

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// =============================================================================
// InspectState - State for viewing a record as highlighted JSON
// =============================================================================

type InspectState struct {
	title    string
	viewport viewport.Model
}

func (*InspectState) modalState() {}

func (s *InspectState) PreferredWidth() int { return ModalWidthWide }

func (s *InspectState) Title() string { return s.title }

func (s *InspectState) Help() string {
	return "up/down/PgUp/PgDn: scroll  c: copy  Esc: close"
}

func (s *InspectState) Render() string {
	return layout(s.Title(), s.viewport.View(), s.Help())
}

func (s *InspectState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// SetSize fits the viewport to the space the modal is given
func (s *InspectState) SetSize(width, height int) {
	s.viewport.SetWidth(max(width-6, 10))
	s.viewport.SetHeight(max(min(height-8, ModalMaxVisibleLines), 3))
}

// NewInspectState shows content, which is already highlighted
func NewInspectState(title, content string) *InspectState {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.SetWidth(ModalWidthWide - 6)
	vp.SetHeight(ModalMaxVisibleLines)
	vp.SetContent(content)
	return &InspectState{title: title, viewport: vp}
}
