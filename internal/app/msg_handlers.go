package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/notification"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

// handleResult refreshes the views and flashes err, or success when it is set
func (m *Model) handleResult(err error, success string) (tea.Model, tea.Cmd) {
	m.syncViews()
	if err != nil {
		return m, m.ShowFlashForError(err)
	}
	if success != "" {
		return m, m.ShowFlashSuccess(success)
	}
	return m, nil
}

func (m *Model) handleApplicationsLoaded(msg ApplicationsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Scoped && m.cap.IsStudent() && m.studentApps != nil {
		m.notifyStatusChanges()
	}
	return m.handleResult(msg.Err, "")
}

// notifyStatusChanges tells a student when an advisor moved one of their
// applications since the last load
func (m *Model) notifyStatusChanges() {
	items := m.studentApps.Items()
	current := make(map[string]string, len(items))
	for _, a := range items {
		current[a.ID] = a.Status
		if prev, ok := m.lastStatus[a.ID]; ok && prev != a.Status {
			go notification.StatusChanged(a.University, a.Status)
		}
	}
	m.lastStatus = current
}

func (m *Model) handleChatsLoaded(msg ChatsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Badges are a nicety; the list itself reports load failures
		m.log.Warn("failed to load chat summaries", "error", msg.Err)
		return m, nil
	}
	unread := make(map[string]int, len(msg.Chats))
	for _, c := range msg.Chats {
		unread[c.ApplicationID] = c.UnreadCount
		if m.lastUnread != nil && c.UnreadCount > m.lastUnread[c.ApplicationID] {
			go notification.NewMessages(c.University, c.UnreadCount-m.lastUnread[c.ApplicationID])
		}
	}
	m.unread = unread
	m.lastUnread = unread
	m.syncViews()
	return m, nil
}

func (m *Model) handleMessageSent(msg MessageSentMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		m.chat.ClearInput()
	}
	return m.handleResult(msg.Err, "")
}

func (m *Model) handleStatusUpdated(msg StatusUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		// The student's dashboard counts statuses
		delete(m.loaded, PageStudentDashboard)
	}
	return m.handleResult(msg.Err, "Status updated to "+msg.Status)
}

func (m *Model) handleApplicationDeleted(msg ApplicationDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if l := m.list(); l != nil {
			l.CancelDelete()
		}
		return m.handleResult(msg.Err, "")
	}
	delete(m.loaded, PageStudentDashboard)
	flash := m.ShowFlashSuccess("Application deleted")
	if m.emptied.Swap(false) && m.page == PageStudentApplication {
		// Nothing left to show for this student
		next := PageApplications
		if m.cap.IsStudent() {
			next = PageStudentDashboard
		}
		delete(m.loaded, next)
		return m, tea.Batch(flash, m.switchPage(next))
	}
	m.syncViews()
	return m, flash
}

func (m *Model) handleApplicationSubmitted(msg ApplicationSubmittedMsg) (tea.Model, tea.Cmd) {
	_, open := m.modal.State.(*modals.NewApplicationState)
	if msg.Err != nil {
		m.syncViews()
		if open {
			m.modal.SetError(errorText(msg.Err))
			return m, nil
		}
		return m, m.ShowFlashForError(msg.Err)
	}
	if open {
		m.modal.Hide()
	}
	delete(m.loaded, PageStudentDashboard)
	delete(m.loaded, PageApplications)
	return m.handleResult(nil, "Application submitted: "+msg.Application.University)
}

func (m *Model) handleDocumentUploaded(msg DocumentUploadedMsg) (tea.Model, tea.Cmd) {
	_, open := m.modal.State.(*modals.UploadState)
	if msg.Err != nil {
		m.syncViews()
		if open {
			m.modal.SetError(errorText(msg.Err))
			return m, nil
		}
		return m, m.ShowFlashForError(msg.Err)
	}
	if open {
		m.modal.Hide()
	}
	delete(m.loaded, PageStudentDashboard)
	return m.handleResult(nil, "Uploaded "+msg.Document.Name)
}

func (m *Model) handleDocumentDeleted(msg DocumentDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.library.CancelDelete()
		return m.handleResult(msg.Err, "")
	}
	delete(m.loaded, PageStudentDashboard)
	return m.handleResult(nil, "Document deleted")
}

func (m *Model) handleSectionSaved(msg SectionSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m.handleResult(msg.Err, "")
	}
	m.syncViews()
	return m, tea.Batch(m.ShowFlashSuccess(msg.Section.String()+" saved"), noticeExpiry())
}

func (m *Model) handleNotesSaved(msg NotesSavedMsg) (tea.Model, tea.Cmd) {
	_, open := m.modal.State.(*modals.NotesState)
	if msg.Err != nil {
		if open {
			m.modal.SetError(errorText(msg.Err))
			return m, nil
		}
		return m.handleResult(msg.Err, "")
	}
	if open {
		m.modal.Hide()
	}
	return m.handleResult(nil, "Notes saved")
}

func (m *Model) handleStudentDeleted(msg StudentDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.prof != nil {
			m.prof.CancelDelete()
		}
		return m.handleResult(msg.Err, "")
	}
	flash := m.ShowFlashSuccess("Student deleted")
	if !m.studentDeleted.Swap(false) {
		m.syncViews()
		return m, flash
	}
	m.clearStudentScope()
	delete(m.loaded, PageApplications)
	return m, tea.Batch(flash, m.switchPage(PageApplications))
}
