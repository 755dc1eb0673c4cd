package app

import (
	"encoding/json"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/clipboard"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/keys"
	"github.com/zhubert/studydesk/internal/notification"
	"github.com/zhubert/studydesk/internal/ui"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

// handleModalKey dispatches keyboard input to the handler for the visible modal
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.ConfirmState:
		return m.handleConfirmModal(key, s)
	case *modals.StatusPickerState:
		return m.handleStatusPickerModal(key, msg, s)
	case *modals.NewApplicationState:
		return m.handleNewApplicationModal(key, msg, s)
	case *modals.UploadState:
		return m.handleUploadModal(key, msg, s)
	case *modals.SectionEditState:
		return m.handleSectionEditModal(key, msg, s)
	case *modals.NotesState:
		return m.handleNotesModal(key, msg, s)
	case *modals.InspectState:
		return m.handleInspectModal(key, msg)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.ChangelogState:
		return m.handleChangelogModal(key, msg, s)
	}

	return m.updateModal(msg)
}

// updateModal forwards msg to the visible modal state
func (m *Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// errorText is what a modal shows for a failed action
func errorText(err error) string {
	if errors.Is(err, errors.KindBusy) {
		return "Still working on the previous request"
	}
	return errors.Message(err)
}

// handleConfirmModal handles y/n for every delete confirmation and for
// discarding a section draft
func (m *Model) handleConfirmModal(key string, state *modals.ConfirmState) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", keys.Enter:
		m.modal.Hide()
		switch state.Target {
		case modals.ConfirmDeleteApplication:
			if l := m.list(); l != nil && l.PendingDelete() == state.ID {
				return m, deleteApplication(l)
			}
		case modals.ConfirmDeleteDocument:
			if m.library.PendingDelete() == state.ID {
				return m, deleteDocument(m.library)
			}
		case modals.ConfirmDeleteStudent:
			if m.prof != nil && m.prof.PendingDelete() {
				return m, deleteStudent(m.prof)
			}
		case modals.ConfirmDiscardEdit:
			if m.editing != nil {
				m.prof.Cancel(m.editing.Section)
				m.editing = nil
			}
		}
		return m, nil

	case "n", "N", keys.Escape:
		m.modal.Hide()
		switch state.Target {
		case modals.ConfirmDeleteApplication:
			if l := m.list(); l != nil {
				l.CancelDelete()
			}
		case modals.ConfirmDeleteDocument:
			m.library.CancelDelete()
		case modals.ConfirmDeleteStudent:
			if m.prof != nil {
				m.prof.CancelDelete()
			}
		case modals.ConfirmDiscardEdit:
			// Back to the draft
			if m.editing != nil {
				m.modal.Show(m.editing)
			}
		}
		return m, nil
	}
	return m, nil
}

// handleStatusPickerModal applies the chosen preset
func (m *Model) handleStatusPickerModal(key string, msg tea.KeyPressMsg, state *modals.StatusPickerState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		preset, ok := state.Selected()
		l := m.list()
		if !ok || l == nil {
			m.modal.Hide()
			return m, nil
		}
		m.modal.Hide()
		return m, updateStatus(l, state.ApplicationID, preset.Label, preset.Color)
	}
	return m.updateModal(msg)
}

// handleNewApplicationModal submits the form. The modal stays open until
// the backend accepts it so validation errors can be shown in place.
func (m *Model) handleNewApplicationModal(key string, msg tea.KeyPressMsg, state *modals.NewApplicationState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if m.studentApps == nil {
			m.modal.Hide()
			return m, nil
		}
		m.modal.SetError("")
		return m, submitApplication(m.studentApps, state.GetValues())
	}
	return m.updateModal(msg)
}

// handleUploadModal starts the upload; errors are shown in the modal
func (m *Model) handleUploadModal(key string, msg tea.KeyPressMsg, state *modals.UploadState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		path, docType := state.GetValues()
		if path == "" {
			m.modal.SetError("Enter the path of a file to upload")
			return m, nil
		}
		m.modal.SetError("")
		return m, uploadDocument(m.library, path, docType)
	}
	return m.updateModal(msg)
}

// handleSectionEditModal copies the edited fields into the section draft
// and saves it. Escape with unsaved edits asks before discarding.
func (m *Model) handleSectionEditModal(key string, msg tea.KeyPressMsg, state *modals.SectionEditState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		if len(state.Changes()) > 0 {
			m.editing = state
			m.modal.Show(modals.NewConfirmDiscardEdit(state.Section.String()))
			return m, nil
		}
		m.modal.Hide()
		m.prof.Cancel(state.Section)
		m.editing = nil
		return m, nil

	case keys.Enter:
		changes := state.Changes()
		if len(changes) == 0 {
			m.modal.Hide()
			m.prof.Cancel(state.Section)
			m.editing = nil
			return m, nil
		}
		for _, c := range changes {
			if err := m.prof.SetField(state.Section, c.Path, c.Value); err != nil {
				m.modal.SetError(errorText(err))
				return m, nil
			}
		}
		m.modal.Hide()
		m.editing = nil
		return m, saveSection(m.prof, state.Section)
	}
	return m.updateModal(msg)
}

// handleNotesModal saves on Ctrl+S; Enter is a newline
func (m *Model) handleNotesModal(key string, msg tea.KeyPressMsg, state *modals.NotesState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.CtrlS:
		if m.prof == nil {
			m.modal.Hide()
			return m, nil
		}
		m.modal.SetError("")
		return m, saveNotes(m.prof, state.GetNotes())
	}
	return m.updateModal(msg)
}

// handleInspectModal copies the record as plain JSON on "c"
func (m *Model) handleInspectModal(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, "q":
		m.modal.Hide()
		m.inspected = nil
		return m, nil
	case "c":
		data, err := json.MarshalIndent(m.inspected, "", "  ")
		if err == nil {
			err = clipboard.WriteText(string(data))
		}
		if err != nil {
			m.log.Warn("failed to copy record", "error", err)
			return m, m.ShowFlashError("Could not copy to clipboard")
		}
		return m, m.ShowFlashSuccess("Record copied")
	}
	return m.updateModal(msg)
}

// handleSettingsModal applies and persists the settings
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if theme := state.GetTheme(); theme != state.OriginalTheme {
			ui.SetThemeByName(theme)
			m.config.SetTheme(theme)
		}
		if dir := state.GetDownloadDir(); dir != "" {
			m.config.SetDownloadDir(dir)
		}
		m.config.SetNotificationsEnabled(state.NotificationsEnabled)
		notification.SetEnabled(state.NotificationsEnabled)

		if err := m.config.Save(); err != nil {
			m.log.Error("failed to save settings", "error", err)
			return m, m.ShowFlashError("Failed to save settings: " + errors.Message(err))
		}
		return m, m.ShowFlashSuccess("Settings saved")
	}
	return m.updateModal(msg)
}

// handleHelpModal runs the highlighted shortcut on Enter
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	if state.IsFiltering() {
		return m.updateModal(msg)
	}
	switch key {
	case keys.Escape, "q", "?":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if sc := state.GetSelectedShortcut(); sc != nil {
			return m, func() tea.Msg {
				return modals.HelpShortcutTriggeredMsg{Key: shortcutKey(sc.Key)}
			}
		}
		return m, nil
	}
	return m.updateModal(msg)
}

// handleChangelogModal records the release as seen once the notes are dismissed
func (m *Model) handleChangelogModal(key string, msg tea.KeyPressMsg, state *modals.ChangelogState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.Enter, "q":
		m.modal.Hide()
		m.markVersionSeen(state.Version)
		return m, nil
	}
	return m.updateModal(msg)
}

// shortcutKey maps a help display key back to the key it binds
func shortcutKey(display string) string {
	for _, s := range ShortcutRegistry {
		if s.DisplayKey == display {
			return s.Key
		}
	}
	return display
}
