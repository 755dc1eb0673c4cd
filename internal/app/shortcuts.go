package app

import (
	"fmt"
	"slices"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/clipboard"
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/profile"
	"github.com/zhubert/studydesk/internal/ui"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string // The key binding (e.g., "n", "ctrl+f")
	DisplayKey  string // Display name in help; defaults to Key
	Description string // Human-readable description
	Category    string // Section for help modal grouping
	// Pages limits the shortcut to some pages; empty means every page
	Pages            []Page
	RequiresList     bool // Must not be typing in the chat
	RequiresElevated bool // Admins and advisors only
	Handler          func(m *Model) (tea.Model, tea.Cmd)
	Condition        func(m *Model) bool // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation   = "Navigation"
	CategoryApplications = "Applications"
	CategoryDocuments    = "Documents"
	CategoryProfile      = "Profile"
	CategoryChat         = "Chat (when focused)"
	CategoryGeneral      = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryApplications,
	CategoryDocuments,
	CategoryProfile,
	CategoryChat,
	CategoryGeneral,
}

var listPages = []Page{PageApplications, PageStudentApplication}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry []Shortcut

// The registry is assigned in init because its handlers transitively read it
// (via footerBindings), which is an initialization cycle for a var initializer.
func init() {
	ShortcutRegistry = []Shortcut{
		// Navigation
		{
			Key:         "tab",
			DisplayKey:  "Tab",
			Description: "Switch between list and chat",
			Category:    CategoryNavigation,
			Pages:       listPages,
			Handler:     shortcutToggleFocus,
		},
		{
			Key:              "o",
			Description:      "Open the selected student",
			Category:         CategoryNavigation,
			Pages:            []Page{PageApplications},
			RequiresList:     true,
			RequiresElevated: true,
			Handler:          shortcutOpenStudent,
			Condition: func(m *Model) bool {
				a, ok := m.selectedApplication()
				return ok && a.StudentID != ""
			},
		},

		// Applications
		{
			Key:          "s",
			Description:  "Star or unstar application",
			Category:     CategoryApplications,
			Pages:        listPages,
			RequiresList: true,
			Handler:      shortcutToggleStar,
			Condition:    hasSelectedApplication,
		},
		{
			Key:              "u",
			Description:      "Update application status",
			Category:         CategoryApplications,
			Pages:            listPages,
			RequiresList:     true,
			RequiresElevated: true,
			Handler:          shortcutUpdateStatus,
			Condition:        hasSelectedApplication,
		},
		{
			Key:          "n",
			Description:  "New application",
			Category:     CategoryApplications,
			Pages:        []Page{PageStudentApplication},
			RequiresList: true,
			Handler:      shortcutNewApplication,
			Condition:    func(m *Model) bool { return m.studentApps != nil && m.studentApps.CanSubmit() },
		},
		{
			Key:              "d",
			Description:      "Delete application",
			Category:         CategoryApplications,
			Pages:            listPages,
			RequiresList:     true,
			RequiresElevated: true,
			Handler:          shortcutDeleteApplication,
			Condition:        hasSelectedApplication,
		},
		{
			Key:          "c",
			Description:  "Copy application reference",
			Category:     CategoryApplications,
			Pages:        listPages,
			RequiresList: true,
			Handler:      shortcutCopyReference,
			Condition:    hasSelectedApplication,
		},
		{
			Key:              "i",
			Description:      "Inspect application record",
			Category:         CategoryApplications,
			Pages:            listPages,
			RequiresList:     true,
			RequiresElevated: true,
			Handler:          shortcutInspectApplication,
			Condition:        hasSelectedApplication,
		},
		{
			Key:              "x",
			Description:      "Export list to XLSX",
			Category:         CategoryApplications,
			Pages:            listPages,
			RequiresList:     true,
			RequiresElevated: true,
			Handler:          shortcutExport,
		},

		// Documents
		{
			Key:         "f",
			Description: "Cycle document type filter",
			Category:    CategoryDocuments,
			Pages:       []Page{PageDocuments},
			Handler:     shortcutCycleFilter,
		},
		{
			Key:         "u",
			Description: "Upload document",
			Category:    CategoryDocuments,
			Pages:       []Page{PageDocuments},
			Handler:     shortcutUpload,
			Condition:   func(m *Model) bool { return m.cap.IsStudent() },
		},
		{
			Key:         "enter",
			DisplayKey:  "Enter",
			Description: "Download document",
			Category:    CategoryDocuments,
			Pages:       []Page{PageDocuments},
			Handler:     shortcutDownload,
			Condition: func(m *Model) bool {
				_, ok := m.library.Selected()
				return ok
			},
		},
		{
			Key:         "d",
			Description: "Delete document",
			Category:    CategoryDocuments,
			Pages:       []Page{PageDocuments},
			Handler:     shortcutDeleteDocument,
			Condition: func(m *Model) bool {
				d, ok := m.library.Selected()
				return ok && m.cap.CanDeleteDocument(d)
			},
		},

		// Profile
		{
			Key:         "e",
			Description: "Edit section",
			Category:    CategoryProfile,
			Pages:       []Page{PageStudentProfile},
			Handler:     shortcutEditSection,
			Condition:   canEditProfile,
		},
		{
			Key:         "enter",
			DisplayKey:  "Enter",
			Description: "Edit section",
			Category:    CategoryProfile,
			Pages:       []Page{PageStudentProfile},
			Handler:     shortcutEditSection,
			Condition:   canEditProfile,
		},
		{
			Key:              "n",
			Description:      "Edit advisor notes",
			Category:         CategoryProfile,
			Pages:            []Page{PageStudentProfile},
			RequiresElevated: true,
			Handler:          shortcutNotes,
			Condition:        profileLoaded,
		},
		{
			Key:              "i",
			Description:      "Inspect student record",
			Category:         CategoryProfile,
			Pages:            []Page{PageStudentProfile},
			RequiresElevated: true,
			Handler:          shortcutInspectStudent,
			Condition:        profileLoaded,
		},
		{
			Key:              "d",
			Description:      "Delete student",
			Category:         CategoryProfile,
			Pages:            []Page{PageStudentProfile},
			RequiresElevated: true,
			Handler:          shortcutDeleteStudent,
			Condition:        profileLoaded,
		},

		// General
		{
			Key:          "r",
			Description:  "Reload page",
			Category:     CategoryGeneral,
			RequiresList: true,
			Handler:      shortcutReload,
		},
		{
			Key:          ",",
			Description:  "Settings",
			Category:     CategoryGeneral,
			RequiresList: true,
			Handler:      shortcutSettings,
		},
		{
			Key:          "q",
			Description:  "Quit application",
			Category:     CategoryGeneral,
			RequiresList: true,
			Handler:      shortcutQuit,
		},
		{
			Key:         "ctrl+c",
			DisplayKey:  "ctrl-c",
			Description: "Quit application",
			Category:    CategoryGeneral,
			Handler:     shortcutQuit,
		},
	}
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:          "?",
	Description:  "Show this help",
	Category:     CategoryGeneral,
	RequiresList: true,
}

// DisplayOnlyShortcuts are handled directly by the key router but are
// listed in the help modal for discoverability
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ j/k", Description: "Move selection", Category: CategoryNavigation},
	{DisplayKey: "1-5", Description: "Switch page", Category: CategoryNavigation},
	{DisplayKey: "y / n", Description: "Confirm or cancel a pending delete", Category: CategoryNavigation},
	{DisplayKey: "Enter", Description: "Send message", Category: CategoryChat},
	{DisplayKey: "Esc", Description: "Back to the list", Category: CategoryChat},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll conversation", Category: CategoryChat},
}

func hasSelectedApplication(m *Model) bool {
	_, ok := m.selectedApplication()
	return ok
}

func canEditProfile(m *Model) bool {
	return m.prof != nil && m.prof.CanEdit()
}

func profileLoaded(m *Model) bool {
	if m.prof == nil {
		return false
	}
	_, ok := m.prof.Student()
	return ok
}

// selectedApplication returns the selection of the current page's list
func (m *Model) selectedApplication() (models.Application, bool) {
	l := m.list()
	if l == nil {
		return models.Application{}, false
	}
	return l.Selected()
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
// This is used to filter which shortcuts appear in the help modal.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if len(s.Pages) > 0 && !slices.Contains(s.Pages, m.page) {
		return false
	}
	if s.RequiresList && m.focus == FocusChat {
		return false
	}
	if s.RequiresElevated && !m.cap.IsAdminOrAdvisor() {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// The first registered shortcut for key whose guards pass is run.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// Handle help shortcut specially (defined outside registry to avoid init cycle)
	if key == helpShortcut.Key {
		if !m.isShortcutApplicable(helpShortcut) {
			return m, nil, false // Guard failed, let key propagate to textarea
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			m.log.Debug("shortcut guard failed", "key", key, "page", m.page.String(), "focus", m.focus)
			continue
		}
		m.log.Debug("executing shortcut", "key", key, "page", m.page.String())
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that are
// applicable in the current application state.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)
	seen := make(map[string]bool)

	for _, s := range registry {
		if !m.isShortcutApplicable(s) {
			continue
		}
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		// The same action can be bound to two keys; list it once
		if seen[s.Category+s.Description] {
			continue
		}
		seen[s.Category+s.Description] = true
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range displayOnly {
		// Chat keys only matter while the chat has focus
		if s.Category == CategoryChat && m.focus != FocusChat {
			continue
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  s.DisplayKey,
			Desc: s.Description,
		})
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// footerBindings lists the most useful keys for the current page
func (m *Model) footerBindings() []ui.KeyBinding {
	if m.focus == FocusChat {
		return []ui.KeyBinding{{Key: "enter", Desc: "send"}, {Key: "esc", Desc: "list"}, {Key: "pgup/pgdn", Desc: "scroll"}}
	}
	var bindings []ui.KeyBinding
	seen := make(map[string]bool)
	for _, s := range ShortcutRegistry {
		if s.Category == CategoryGeneral || seen[s.Description] || !m.isShortcutApplicable(s) {
			continue
		}
		seen[s.Description] = true
		bindings = append(bindings, ui.KeyBinding{Key: s.Key, Desc: s.Description})
	}
	return append(bindings, ui.KeyBinding{Key: "?", Desc: "help"}, ui.KeyBinding{Key: "q", Desc: "quit"})
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutOpenStudent(m *Model) (tea.Model, tea.Cmd) {
	app, ok := m.selectedApplication()
	if !ok || app.StudentID == "" {
		return m, nil
	}
	if app.StudentID != m.studentID {
		m.setStudentScope(app.StudentID)
		m.config.AddRecentStudent(app.StudentID)
		if err := m.config.Save(); err != nil {
			m.log.Warn("failed to save recent students", "error", err)
		}
	}
	return m, m.switchPage(PageStudentApplication)
}

func shortcutToggleStar(m *Model) (tea.Model, tea.Cmd) {
	app, ok := m.selectedApplication()
	if !ok {
		return m, nil
	}
	return m, toggleStar(m.list(), app.ID)
}

func shortcutUpdateStatus(m *Model) (tea.Model, tea.Cmd) {
	app, ok := m.selectedApplication()
	if !ok {
		return m, nil
	}
	m.modal.Show(modals.NewStatusPickerState(app.ID, app.University, app.Status, m.presets))
	return m, nil
}

func shortcutNewApplication(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewNewApplicationState(m.studentID, m.now().Year()))
	return m, nil
}

func shortcutDeleteApplication(m *Model) (tea.Model, tea.Cmd) {
	app, ok := m.selectedApplication()
	if !ok {
		return m, nil
	}
	if err := m.list().RequestDelete(app.ID); err != nil {
		return m, m.ShowFlashForError(err)
	}
	m.syncViews()
	m.modal.Show(modals.NewConfirmDeleteApplication(app.ID, app.University))
	return m, nil
}

func shortcutCopyReference(m *Model) (tea.Model, tea.Cmd) {
	app, ok := m.selectedApplication()
	if !ok {
		return m, nil
	}
	ref := app.ApplicationID
	if ref == "" {
		ref = app.ID
	}
	if err := clipboard.WriteText(ref); err != nil {
		m.log.Warn("failed to copy application reference", "error", err)
		return m, m.ShowFlashError("Could not copy to clipboard")
	}
	return m, m.ShowFlashSuccess("Copied " + ref)
}

func shortcutInspectApplication(m *Model) (tea.Model, tea.Cmd) {
	app, ok := m.selectedApplication()
	if !ok {
		return m, nil
	}
	return m.showInspect(app.University, app)
}

func shortcutInspectStudent(m *Model) (tea.Model, tea.Cmd) {
	st, ok := m.prof.Student()
	if !ok {
		return m, nil
	}
	return m.showInspect(st.FullName(), st)
}

func (m *Model) showInspect(title string, v any) (tea.Model, tea.Cmd) {
	content, err := ui.HighlightJSON(v)
	if err != nil {
		return m, m.ShowFlashError("Could not render record: " + err.Error())
	}
	m.modal.Show(modals.NewInspectState(title, content))
	m.inspected = v
	return m, nil
}

func shortcutExport(m *Model) (tea.Model, tea.Cmd) {
	items := m.list().Items()
	if len(items) == 0 {
		return m, m.ShowFlashWarning("Nothing to export")
	}
	scope := ""
	if m.page == PageStudentApplication {
		scope = m.studentID
	}
	return m, exportApplications(items, m.config.GetDownloadDir(), scope)
}

func shortcutCycleFilter(m *Model) (tea.Model, tea.Cmd) {
	order := append([]models.DocumentType{""}, models.DocumentTypes...)
	i := slices.Index(order, m.library.Filter())
	next := order[(i+1)%len(order)]
	if err := m.library.SetFilter(next); err != nil {
		return m, m.ShowFlashForError(err)
	}
	m.syncViews()
	return m, m.ShowFlashInfo("Showing " + ui.FilterLabel(next))
}

func shortcutUpload(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewUploadState(m.library.Filter()))
	return m, nil
}

func shortcutDownload(m *Model) (tea.Model, tea.Cmd) {
	doc, ok := m.library.Selected()
	if !ok {
		return m, nil
	}
	cmd := downloadDocument(m.library, doc.ID, m.config.GetDownloadDir())
	return m, tea.Batch(cmd, m.ShowFlashInfo("Downloading "+doc.Name+"..."))
}

func shortcutDeleteDocument(m *Model) (tea.Model, tea.Cmd) {
	doc, ok := m.library.Selected()
	if !ok {
		return m, nil
	}
	if err := m.library.RequestDelete(doc.ID); err != nil {
		return m, m.ShowFlashForError(err)
	}
	m.syncViews()
	m.modal.Show(modals.NewConfirmDeleteDocument(doc.ID, doc.Name))
	return m, nil
}

func shortcutEditSection(m *Model) (tea.Model, tea.Cmd) {
	id := profile.Sections[m.section]
	if err := m.prof.Begin(id); err != nil {
		return m, m.ShowFlashForError(err)
	}
	m.syncViews()
	m.modal.Show(modals.NewSectionEditState(id, m.prof.Values(id)))
	return m, nil
}

func shortcutNotes(m *Model) (tea.Model, tea.Cmd) {
	st, ok := m.prof.Student()
	if !ok {
		return m, nil
	}
	m.modal.Show(modals.NewNotesState(st.ID, st.AdvisorNotes))
	return m, nil
}

func shortcutDeleteStudent(m *Model) (tea.Model, tea.Cmd) {
	st, ok := m.prof.Student()
	if !ok {
		return m, nil
	}
	if err := m.prof.RequestDelete(); err != nil {
		return m, m.ShowFlashForError(err)
	}
	m.syncViews()
	m.modal.Show(modals.NewConfirmDeleteStudent(st.ID, st.FullName()))
	return m, nil
}

func shortcutReload(m *Model) (tea.Model, tea.Cmd) {
	return m, m.Reload()
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	names := ui.ThemeNames()
	themes := make([]string, len(names))
	labels := make([]string, len(names))
	for i, n := range names {
		themes[i] = string(n)
		labels[i] = ui.GetTheme(n).Name
	}
	m.modal.Show(modals.NewSettingsState(themes, labels, string(ui.CurrentThemeName()),
		m.config.GetDownloadDir(), m.config.GetNotificationsEnabled()))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	// Include help shortcut in the registry for display purposes
	allShortcuts := append(slices.Clone(ShortcutRegistry), helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpState(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

// pageForKey maps the digit keys to the available pages
func (m *Model) pageForKey(key string) (Page, bool) {
	n, err := strconv.Atoi(key)
	pages := m.Pages()
	if err != nil || n < 1 || n > len(pages) {
		return 0, false
	}
	return pages[n-1], true
}

// pageHint is shown when a digit key names no page
func (m *Model) pageHint() string {
	return fmt.Sprintf("Pages 1-%d", len(m.Pages()))
}
