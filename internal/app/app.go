package app

import (
	"log/slog"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/applications"
	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/changelog"
	"github.com/zhubert/studydesk/internal/chat"
	"github.com/zhubert/studydesk/internal/config"
	"github.com/zhubert/studydesk/internal/dashboard"
	"github.com/zhubert/studydesk/internal/documents"
	"github.com/zhubert/studydesk/internal/logger"
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/profile"
	"github.com/zhubert/studydesk/internal/ui"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

// Service is everything the pages ask of the backend. *api.Client
// satisfies it.
type Service interface {
	applications.Service
	chat.Service
	documents.Service
	dashboard.Service
	profile.Service
}

// Page identifies one screen of the app
type Page int

const (
	PageApplications Page = iota
	PageStudentApplication
	PageDocuments
	PageStudentDashboard
	PageStudentProfile
)

// String returns the title shown in the header
func (p Page) String() string {
	switch p {
	case PageApplications:
		return "Applications"
	case PageStudentApplication:
		return "Student Applications"
	case PageDocuments:
		return "Documents"
	case PageStudentDashboard:
		return "Dashboard"
	case PageStudentProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}

// Focus represents which panel is focused
type Focus int

const (
	FocusList Focus = iota
	FocusChat
)

// Options configures the app model
type Options struct {
	Capability auth.Capability
	// StudentID opens the student pages for one student. Students are
	// always scoped to themselves and ignore it.
	StudentID string
	Version   string
	Now       func() time.Time
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	svc     Service
	cap     auth.Capability
	version string
	now     func() time.Time
	log     *slog.Logger
	presets []config.StatusPreset

	header        *ui.Header
	footer        *ui.Footer
	sidebar       *ui.Sidebar
	detail        *ui.Detail
	chat          *ui.Chat
	documentsView *ui.DocumentsView
	dashboardView *ui.DashboardView
	profileView   *ui.ProfileView
	modal         *ui.Modal

	width  int
	height int
	page   Page
	focus  Focus

	// All applications, elevated roles only
	apps     *applications.List
	appsChat *chat.Panel

	// Pages scoped to studentID
	studentID   string
	studentApps *applications.List
	studentChat *chat.Panel
	dash        *dashboard.Dashboard
	prof        *profile.Profile
	section     int

	// Row highlighted before the list has finished selecting it
	pendingSelect string

	library *documents.Library

	// Record shown by the inspect modal, copied as plain JSON
	inspected any
	// Section draft behind a discard confirmation
	editing *modals.SectionEditState

	loaded     map[Page]bool
	unread     map[string]int
	lastUnread map[string]int
	lastStatus map[string]string

	// Set by view-model callbacks, which run inside commands
	emptied        atomic.Bool
	studentDeleted atomic.Bool
}

// New creates a new app model
func New(cfg *config.Config, svc Service, opts Options) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	log := logger.ComponentLogger("App")
	presets, err := cfg.StatusPresets()
	if err != nil {
		log.Warn("failed to load status presets, using defaults", "error", err)
		presets = config.DefaultStatusPresets()
	}

	m := &Model{
		config:        cfg,
		svc:           svc,
		cap:           opts.Capability,
		version:       opts.Version,
		now:           opts.Now,
		log:           log,
		presets:       presets,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		detail:        ui.NewDetail(),
		chat:          ui.NewChat(),
		documentsView: ui.NewDocumentsView(),
		dashboardView: ui.NewDashboardView(),
		profileView:   ui.NewProfileView(),
		modal:         ui.NewModal(),
		focus:         FocusList,
		loaded:        make(map[Page]bool),
		unread:        make(map[string]int),
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.chat.SetClock(m.now)
	m.dashboardView.SetClock(m.now)
	m.chat.SetMine(func(msg models.Message) bool { return msg.Sender.ID == m.cap.UserID })
	m.header.SetUser(m.cap.String())

	libOpts := documents.Options{Capability: m.cap, Logger: logger.ComponentLogger("Documents")}
	if m.cap.IsAdminOrAdvisor() {
		m.appsChat = chat.NewPanel(svc, m.cap, logger.ComponentLogger("Chat"))
		m.apps = applications.New(svc, applications.Options{
			Capability: m.cap,
			Chat:       m.appsChat,
			Logger:     logger.ComponentLogger("Applications"),
			Now:        m.now,
		})
		m.page = PageApplications
		if opts.StudentID != "" {
			m.setStudentScope(opts.StudentID)
		}
	} else {
		libOpts.StudentID = m.cap.StudentID
		m.setStudentScope(m.cap.StudentID)
		m.page = PageStudentDashboard
	}
	m.library = documents.New(svc, libOpts)

	m.sidebar.SetFocused(true)
	m.header.SetPage(m.page.String())
	return m
}

// setStudentScope rebuilds the student pages for id. Results still in
// flight for the previous student land on the discarded view-models.
func (m *Model) setStudentScope(id string) {
	m.studentID = id
	m.section = 0
	m.studentChat = chat.NewPanel(m.svc, m.cap, logger.ComponentLogger("Chat"))
	m.studentApps = applications.New(m.svc, applications.Options{
		StudentID:  id,
		Capability: m.cap,
		Chat:       m.studentChat,
		Logger:     logger.ComponentLogger("Applications").With("student", id),
		OnEmpty:    func() { m.emptied.Store(true) },
		Now:        m.now,
	})
	m.dash = dashboard.New(m.svc, id, logger.ComponentLogger("Dashboard"))

	profOpts := profile.Options{
		Capability: m.cap,
		Logger:     logger.ComponentLogger("Profile"),
		OnDeleted:  func() { m.studentDeleted.Store(true) },
		Now:        m.now,
	}
	// Students load their own profile; everyone else loads by id
	if !m.cap.IsStudent() {
		profOpts.StudentID = id
	}
	m.prof = profile.New(m.svc, profOpts)

	delete(m.loaded, PageStudentApplication)
	delete(m.loaded, PageStudentDashboard)
	delete(m.loaded, PageStudentProfile)
	m.lastStatus = nil
}

// clearStudentScope drops the student pages, used after a student is deleted
func (m *Model) clearStudentScope() {
	m.studentID = ""
	m.studentApps = nil
	m.studentChat = nil
	m.dash = nil
	m.prof = nil
}

// Pages returns the pages available to the current user in key order
func (m *Model) Pages() []Page {
	if m.cap.IsStudent() {
		return []Page{PageStudentDashboard, PageStudentApplication, PageDocuments, PageStudentProfile}
	}
	pages := []Page{PageApplications, PageDocuments}
	if m.studentID != "" {
		pages = append(pages, PageStudentApplication, PageStudentDashboard, PageStudentProfile)
	}
	return pages
}

// CurrentPage returns the page being shown
func (m *Model) CurrentPage() Page {
	return m.page
}

// StudentID returns the student the student pages are scoped to
func (m *Model) StudentID() string {
	return m.studentID
}

// list returns the application list behind the current page, or nil
func (m *Model) list() *applications.List {
	switch m.page {
	case PageApplications:
		return m.apps
	case PageStudentApplication:
		return m.studentApps
	}
	return nil
}

// chatPanel returns the chat view-model paired with the current list
func (m *Model) chatPanel() *chat.Panel {
	switch m.page {
	case PageApplications:
		return m.appsChat
	case PageStudentApplication:
		return m.studentChat
	}
	return nil
}

// Init starts loading the first page
func (m *Model) Init() tea.Cmd {
	m.showWhatsNew()
	return m.loadPage(m.page)
}

// showWhatsNew opens the release notes the user has not seen yet.
// Development builds never show them.
func (m *Model) showWhatsNew() {
	if !changelog.IsRelease(m.version) {
		return
	}
	lastSeen := m.config.GetLastSeenVersion()
	if lastSeen == m.version {
		return
	}
	changes := changelog.Since(lastSeen, changelog.Parse(changelog.Content))
	if len(changes) == 0 {
		m.markVersionSeen(m.version)
		return
	}
	m.log.Info("showing release notes", "from", lastSeen, "to", m.version, "entries", len(changes))
	m.modal.Show(modals.NewChangelogState(m.version, changes))
}

func (m *Model) markVersionSeen(v string) {
	m.config.SetLastSeenVersion(v)
	if err := m.config.Save(); err != nil {
		m.log.Warn("failed to save last seen version", "error", err)
	}
}

// Reload fetches the current page again
func (m *Model) Reload() tea.Cmd {
	return m.loadPage(m.page)
}

// switchPage shows p, loading it the first time it is visited
func (m *Model) switchPage(p Page) tea.Cmd {
	m.page = p
	m.pendingSelect = ""
	m.focus = FocusList
	m.chat.SetFocused(false)
	m.sidebar.SetFocused(true)
	m.header.SetPage(m.pageTitle())
	m.syncViews()
	if m.loaded[p] {
		return nil
	}
	return m.loadPage(p)
}

// pageTitle names the page, adding the student for scoped pages seen by staff
func (m *Model) pageTitle() string {
	title := m.page.String()
	if m.cap.IsStudent() || m.studentID == "" {
		return title
	}
	switch m.page {
	case PageStudentApplication, PageStudentDashboard, PageStudentProfile:
		if m.prof != nil {
			if st, ok := m.prof.Student(); ok && st.FullName() != "" {
				return title + " · " + st.FullName()
			}
		}
		return title + " · " + m.studentID
	}
	return title
}

// toggleFocus moves between the list and the chat on list pages
func (m *Model) toggleFocus() {
	if m.list() == nil {
		return
	}
	if m.focus == FocusList {
		if !m.chat.HasThread() {
			return
		}
		m.focus = FocusChat
	} else {
		m.focus = FocusList
	}
	m.sidebar.SetFocused(m.focus == FocusList)
	m.chat.SetFocused(m.focus == FocusChat)
}
