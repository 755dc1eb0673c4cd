package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// ShowFlashForError flashes err, as a warning when the action was only
// rejected because the same one is already running
func (m *Model) ShowFlashForError(err error) tea.Cmd {
	if errors.Is(err, errors.KindBusy) {
		return m.ShowFlashWarning("Still working on the previous request")
	}
	return m.ShowFlashError(errors.Message(err))
}
