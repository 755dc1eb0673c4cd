package modals

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
)

const optionNotifications = "notifications"

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	OriginalTheme        string
	NotificationsEnabled bool

	selectedTheme  string
	downloadDir    string
	generalOptions []string

	form *huh.Form
}

func (*SettingsState) modalState() {}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	return layout(s.Title(), s.form.View(), s.Help())
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, msg)
	s.NotificationsEnabled = slices.Contains(s.generalOptions, optionNotifications)
	return s, cmd
}

// GetTheme returns the chosen theme name
func (s *SettingsState) GetTheme() string {
	return s.selectedTheme
}

// GetDownloadDir returns the chosen download directory, possibly empty
func (s *SettingsState) GetDownloadDir() string {
	return expandHome(strings.TrimSpace(s.downloadDir))
}

// NewSettingsState creates the settings form. themes and themeNames are
// parallel slices of theme keys and display names.
func NewSettingsState(themes, themeNames []string, currentTheme, downloadDir string, notificationsEnabled bool) *SettingsState {
	s := &SettingsState{
		OriginalTheme:        currentTheme,
		NotificationsEnabled: notificationsEnabled,
		selectedTheme:        currentTheme,
		downloadDir:          downloadDir,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeNames[i], themes[i])
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
	}
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}

	s.form = newForm(ModalInputWidth,
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&s.selectedTheme),
			huh.NewInput().
				Title("Download directory").
				Description("Where downloaded documents are saved").
				Placeholder("~/Downloads").
				CharLimit(ModalInputCharLimit).
				Value(&s.downloadDir),
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(generalOpts...).
				Height(len(generalOpts)).
				Value(&s.generalOptions),
		),
	)
	return s
}
