package modals

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/keys"
)

const notesHeight = 8

// =============================================================================
// NotesState - State for editing advisor notes
// =============================================================================

type NotesState struct {
	StudentID string
	Textarea  textarea.Model
}

func (*NotesState) modalState() {}

func (s *NotesState) Title() string { return "Advisor Notes" }

func (s *NotesState) Help() string {
	return "Ctrl+S: save  Esc: cancel"
}

func (s *NotesState) Render() string {
	body := mutedText("Only advisors and admins can see these notes.") + "\n\n" + s.Textarea.View() + "\n"
	return layout(s.Title(), body, s.Help())
}

// Update passes typing to the textarea. Enter inserts a newline; saving is
// bound to Ctrl+S at the app level.
func (s *NotesState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok && keyMsg.String() == keys.CtrlS {
		return s, nil
	}
	var cmd tea.Cmd
	s.Textarea, cmd = s.Textarea.Update(msg)
	return s, cmd
}

// GetNotes returns the edited text
func (s *NotesState) GetNotes() string {
	return s.Textarea.Value()
}

// NewNotesState creates the editor filled with the current notes
func NewNotesState(studentID, notes string) *NotesState {
	ta := textarea.New()
	ta.Placeholder = "Notes about this student..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetWidth(ModalInputWidth)
	ta.SetHeight(notesHeight)
	ApplyTextareaStyles(&ta)
	ta.SetValue(notes)
	ta.Focus()

	return &NotesState{StudentID: studentID, Textarea: ta}
}
