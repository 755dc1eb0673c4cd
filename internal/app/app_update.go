package app

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/keys"
	"github.com/zhubert/studydesk/internal/profile"
	"github.com/zhubert/studydesk/internal/ui"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			m.syncViews()
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to the active panel

	case ui.FlashTickMsg:
		// Flash cleared, no need to continue ticking
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()

	case modals.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)

	case ApplicationsLoadedMsg:
		return m.handleApplicationsLoaded(msg)
	case ChatsLoadedMsg:
		return m.handleChatsLoaded(msg)
	case SelectionChangedMsg:
		if msg.ID == m.pendingSelect {
			m.pendingSelect = ""
		}
		return m.handleResult(msg.Err, "")
	case MessageSentMsg:
		return m.handleMessageSent(msg)
	case StarToggledMsg:
		return m.handleResult(msg.Err, "")
	case StatusUpdatedMsg:
		return m.handleStatusUpdated(msg)
	case ApplicationDeletedMsg:
		return m.handleApplicationDeleted(msg)
	case ApplicationSubmittedMsg:
		return m.handleApplicationSubmitted(msg)
	case DocumentsLoadedMsg:
		return m.handleResult(msg.Err, "")
	case DocumentUploadedMsg:
		return m.handleDocumentUploaded(msg)
	case DocumentDownloadedMsg:
		return m.handleResult(msg.Err, "Saved to "+msg.Path)
	case DocumentDeletedMsg:
		return m.handleDocumentDeleted(msg)
	case DashboardLoadedMsg:
		return m.handleResult(msg.Err, "")
	case ProfileLoadedMsg:
		m.header.SetPage(m.pageTitle())
		return m.handleResult(msg.Err, "")
	case SectionSavedMsg:
		return m.handleSectionSaved(msg)
	case NotesSavedMsg:
		return m.handleNotesSaved(msg)
	case StudentDeletedMsg:
		return m.handleStudentDeleted(msg)
	case ExportedMsg:
		return m.handleResult(msg.Err, "Exported to "+msg.Path)
	case NoticeExpiredMsg:
		m.syncViews()
		return m, nil
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	// Everything else (mouse wheel, typing in the chat) goes to the active panel
	switch m.page {
	case PageApplications, PageStudentApplication:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	case PageStudentProfile:
		pv, cmd := m.profileView.Update(msg)
		m.profileView = pv
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the active panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.log.Debug("key pressed", "key", key, "page", m.page.String(), "focus", m.focus, "modal", m.modal.IsVisible())

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Handle ctrl+c specially - always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.focus == FocusChat {
		if result, cmd, handled := m.handleChatFocusedKeys(key); handled {
			return result, cmd
		}
	} else {
		if result, cmd, handled := m.handleNavigationKeys(key); handled {
			return result, cmd
		}
	}

	// Try executing from shortcut registry
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	// Key not handled - return nil to signal it should fall through to the active panel
	return nil, nil
}

// handleChatFocusedKeys handles Enter (send) and Escape (back to the list)
func (m *Model) handleChatFocusedKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case keys.Escape:
		m.toggleFocus()
		return m, nil, true
	case keys.Enter:
		result, cmd := m.sendMessage()
		return result, cmd, true
	}
	return m, nil, false
}

// handleNavigationKeys moves the selection and switches pages
func (m *Model) handleNavigationKeys(key string) (tea.Model, tea.Cmd, bool) {
	delta := 0
	switch key {
	case keys.Up, "k":
		delta = -1
	case keys.Down, "j":
		delta = 1
	case "1", "2", "3", "4", "5":
		p, ok := m.pageForKey(key)
		if !ok {
			return m, m.ShowFlashInfo(m.pageHint()), true
		}
		return m, m.switchPage(p), true
	default:
		return m, nil, false
	}

	switch m.page {
	case PageApplications, PageStudentApplication:
		return m, m.moveApplicationSelection(delta), true
	case PageDocuments:
		m.library.SelectOffset(delta)
	case PageStudentProfile:
		m.section = max(0, min(m.section+delta, len(profile.Sections)-1))
	}
	return m, nil, true
}

// moveApplicationSelection highlights the neighbouring row at once and
// opens its chat in the background
func (m *Model) moveApplicationSelection(delta int) tea.Cmd {
	l := m.list()
	snap := l.Snapshot()
	current := snap.SelectedID
	if m.pendingSelect != "" {
		current = m.pendingSelect
	}
	idx := -1
	for i, a := range snap.Items {
		if a.ID == current {
			idx = i
			break
		}
	}
	if len(snap.Items) == 0 {
		return nil
	}
	next := max(0, min(idx+delta, len(snap.Items)-1))
	id := snap.Items[next].ID
	if id == current {
		return nil
	}
	m.pendingSelect = id
	return selectApplication(l, id)
}

// sendMessage hands the compose text to the chat view-model
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	panel := m.chatPanel()
	if panel == nil {
		return m, nil
	}
	text := m.chat.Input()
	if strings.TrimSpace(text) == "" {
		return m, m.ShowFlashForError(errors.EmptyMessage())
	}
	panel.SetCompose(text)
	return m, sendChatMessage(func(ctx context.Context) error { return panel.Send(ctx) })
}

// handleHelpShortcutTrigger runs the shortcut chosen in the help modal
func (m *Model) handleHelpShortcutTrigger(key string) (tea.Model, tea.Cmd) {
	m.modal.Hide()
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		m.syncViews()
		return result, cmd
	}
	return m, nil
}
