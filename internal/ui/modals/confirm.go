package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ConfirmTarget says what a confirmation is about
type ConfirmTarget int

const (
	ConfirmDeleteApplication ConfirmTarget = iota
	ConfirmDeleteDocument
	ConfirmDeleteStudent
	ConfirmDiscardEdit
)

// =============================================================================
// ConfirmState - State for yes/no confirmations
// =============================================================================

type ConfirmState struct {
	Target  ConfirmTarget
	ID      string
	title   string
	message string
	warning string
}

func (*ConfirmState) modalState() {}

func (s *ConfirmState) Title() string { return s.title }

func (s *ConfirmState) Help() string { return "y/Enter: confirm  n/Esc: cancel" }

func (s *ConfirmState) Render() string {
	body := lipgloss.NewStyle().Foreground(ColorText).Width(ModalInputWidth).Render(s.message)
	if s.warning != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(ColorWarning).Width(ModalInputWidth).Render(s.warning)
	}
	return layout(s.Title(), body+"\n", s.Help())
}

// Update is a no-op: the app decides what y and n do
func (s *ConfirmState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewConfirmDeleteApplication asks before deleting an application
func NewConfirmDeleteApplication(id, university string) *ConfirmState {
	return &ConfirmState{
		Target:  ConfirmDeleteApplication,
		ID:      id,
		title:   "Delete Application?",
		message: "Delete the application to " + university + "?",
		warning: "Its chat history is removed as well. This cannot be undone.",
	}
}

// NewConfirmDeleteDocument asks before deleting a document
func NewConfirmDeleteDocument(id, name string) *ConfirmState {
	return &ConfirmState{
		Target:  ConfirmDeleteDocument,
		ID:      id,
		title:   "Delete Document?",
		message: "Delete " + name + "?",
	}
}

// NewConfirmDeleteStudent asks before deleting a student record
func NewConfirmDeleteStudent(id, name string) *ConfirmState {
	return &ConfirmState{
		Target:  ConfirmDeleteStudent,
		ID:      id,
		title:   "Delete Student?",
		message: "Delete " + name + " and everything attached to them?",
		warning: "Applications, documents and chats are removed. This cannot be undone.",
	}
}

// NewConfirmDiscardEdit asks before throwing away an unsaved section draft
func NewConfirmDiscardEdit(section string) *ConfirmState {
	return &ConfirmState{
		Target:  ConfirmDiscardEdit,
		ID:      section,
		title:   "Discard Changes?",
		message: "Discard your unsaved changes to " + section + "?",
	}
}
