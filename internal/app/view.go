package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/profile"
	"github.com/zhubert/studydesk/internal/ui"
)

func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.ListWidth, ctx.ContentHeight)
	m.detail.SetSize(ctx.DetailWidth, ctx.DetailHeight)
	m.chat.SetSize(ctx.DetailWidth, ctx.ChatHeight)
	m.documentsView.SetSize(ctx.TerminalWidth, ctx.ContentHeight)
	m.dashboardView.SetSize(ctx.TerminalWidth, ctx.ContentHeight)
	m.profileView.SetSize(ctx.TerminalWidth, ctx.ContentHeight)
	m.syncViews()
}

// syncViews copies the view-models' current state into the UI components.
// View-models change inside commands, so this runs after every message.
func (m *Model) syncViews() {
	switch m.page {
	case PageApplications, PageStudentApplication:
		m.syncApplications()
	case PageDocuments:
		snap := m.library.Snapshot()
		downloading := make(map[string]bool)
		for _, d := range snap.Visible {
			if m.library.Downloading(d.ID) {
				downloading[d.ID] = true
			}
		}
		m.documentsView.SetSnapshot(snap)
		m.documentsView.SetDownloading(downloading)
	case PageStudentDashboard:
		if m.dash != nil {
			s, loaded := m.dash.Summary()
			m.dashboardView.SetSummary(s, loaded, m.dash.Loading())
			m.dashboardView.SetName(m.studentName())
		}
	case PageStudentProfile:
		if m.prof != nil {
			m.profileView.SetData(m.profileData())
		}
	}
	m.footer.SetBindings(m.footerBindings())
}

func (m *Model) syncApplications() {
	l := m.list()
	if l == nil {
		return
	}
	snap := l.Snapshot()
	selected := snap.SelectedID
	if m.pendingSelect != "" {
		selected = m.pendingSelect
	}

	title := "Applications"
	if m.page == PageStudentApplication && m.cap.IsStudent() {
		title = "My Applications"
	}
	busy := make(map[string]bool)
	var app models.Application
	found := false
	for _, a := range snap.Items {
		if l.Busy(a.ID) {
			busy[a.ID] = true
		}
		if a.ID == selected {
			app, found = a, true
		}
	}
	m.sidebar.SetTitle(title)
	m.sidebar.SetItems(snap.Items, selected)
	m.sidebar.SetLoading(snap.Loading)
	m.sidebar.SetUnread(m.unread)
	m.sidebar.SetBusy(busy)
	m.sidebar.SetPendingDelete(snap.PendingDelete)
	m.detail.SetApplication(app, found)
	m.detail.SetBanner(snap.Banner)
	m.detail.SetReadOnly(!m.cap.IsAdminOrAdvisor())

	if panel := m.chatPanel(); panel != nil {
		m.chat.SetSnapshot(panel.Snapshot())
	}
	chatTitle := "Conversation"
	if found {
		chatTitle += " · " + app.University
	}
	m.chat.SetTitle(chatTitle)

	// The thread can disappear under a focused chat, e.g. after a delete
	if m.focus == FocusChat && !m.chat.HasThread() {
		m.toggleFocus()
	}
}

// studentName is the name the dashboard greets
func (m *Model) studentName() string {
	if m.cap.IsStudent() {
		return m.cap.Name
	}
	if m.prof != nil {
		if st, ok := m.prof.Student(); ok {
			return st.FullName()
		}
	}
	return ""
}

// profileData gathers everything the profile page shows
func (m *Model) profileData() ui.ProfileData {
	p := m.prof
	d := ui.ProfileData{
		Selected:     m.section,
		CanEdit:      p.CanEdit(),
		Locked:       p.Locked(),
		Placeholder:  p.Placeholder(),
		Loading:      p.Loading(),
		ShowNotes:    m.cap.IsAdminOrAdvisor(),
		NotesSaving:  p.NotesSaving(),
		DeletePrompt: p.PendingDelete(),
	}
	if err := p.LoadErr(); err != nil {
		d.LoadErr = errors.Message(err)
	}
	st, ok := p.Student()
	if !ok {
		return d
	}
	d.Name = st.FullName()
	d.Email = st.Email
	d.Notes = st.AdvisorNotes
	for _, id := range profile.Sections {
		d.Sections = append(d.Sections, ui.ProfileSection{
			Title:  id.String(),
			Phase:  p.Phase(id),
			Notice: p.Notice(id),
			Rows:   p.Values(id),
		})
	}
	return d
}

// pageView renders the content area of the current page
func (m *Model) pageView() string {
	switch m.page {
	case PageApplications, PageStudentApplication:
		right := lipgloss.JoinVertical(lipgloss.Left, m.detail.View(), m.chat.View())
		return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), right)
	case PageDocuments:
		return m.documentsView.View()
	case PageStudentDashboard:
		return m.dashboardView.View()
	case PageStudentProfile:
		return m.profileView.View()
	}
	return fmt.Sprintf("Unknown page %d", m.page)
}

// RenderToString renders the current screen as a string, modal included.
// Demo recordings and tests read frames through it.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.pageView(),
		m.footer.View(),
	)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}
