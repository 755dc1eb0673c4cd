package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/profile"
)

// ProfileSection is one section as the profile page shows it
type ProfileSection struct {
	Title  string
	Phase  profile.Phase
	Notice profile.Notice
	Rows   []profile.FieldValue
}

// ProfileData is everything the profile page renders
type ProfileData struct {
	Name        string
	Email       string
	Sections    []ProfileSection
	Selected    int
	CanEdit     bool
	Locked      bool
	Placeholder bool
	Loading     bool
	LoadErr     string
	// Notes is shown only to elevated roles
	Notes        string
	ShowNotes    bool
	NotesSaving  bool
	DeletePrompt bool
}

// ProfileView renders the student profile in a scrollable panel
type ProfileView struct {
	viewport viewport.Model
	width    int
	height   int
	data     ProfileData
}

// NewProfileView creates an empty profile panel
func NewProfileView() *ProfileView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &ProfileView{viewport: vp}
}

// SetSize sets the panel size including borders
func (p *ProfileView) SetSize(width, height int) {
	p.width = width
	p.height = height
	ctx := GetViewContext()
	p.viewport.SetWidth(ctx.InnerWidth(width))
	p.viewport.SetHeight(max(ctx.InnerHeight(height), 1))
	p.render()
}

// SetData replaces what is shown and keeps the selected section in view
func (p *ProfileView) SetData(d ProfileData) {
	p.data = d
	p.render()
}

// Update scrolls the panel
func (p *ProfileView) Update(msg tea.Msg) (*ProfileView, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *ProfileView) render() {
	d := p.data
	width := max(p.viewport.Width(), 1)
	var lines []string
	selectedLine := 0

	switch {
	case d.Loading && len(d.Sections) == 0:
		lines = append(lines, StatusLoadingStyle.Render("Loading profile..."))
	case d.LoadErr != "" && len(d.Sections) == 0:
		lines = append(lines, StatusErrorStyle.Render("Could not load this student: "+d.LoadErr))
	default:
		lines = append(lines, PanelTitleStyle.Render(d.Name))
		if d.Email != "" {
			lines = append(lines, SidebarMutedStyle.Render(d.Email))
		}
		if d.Placeholder {
			lines = append(lines, BannerStyle.Width(width).Render("! Profile unavailable. Showing sample data, editing is disabled."))
		}
		if d.Locked {
			lines = append(lines, SidebarMutedStyle.Render("Your profile has been submitted. Contact your advisor to make further changes."))
		}
		if d.DeletePrompt {
			lines = append(lines, StatusErrorStyle.Render("Delete this student? y to confirm, n to cancel"))
		}

		for i, s := range d.Sections {
			lines = append(lines, "")
			if i == d.Selected {
				selectedLine = len(lines)
			}
			lines = append(lines, p.sectionHeader(s, i == d.Selected))
			lines = append(lines, renderRows(s.Rows, width)...)
			if !s.Notice.Empty() {
				style := StatusSuccessStyle
				if s.Notice.Error {
					style = StatusErrorStyle
				}
				lines = append(lines, "  "+style.Render(s.Notice.Text))
			}
		}

		if d.ShowNotes {
			lines = append(lines, "")
			header := "Advisor notes"
			if d.NotesSaving {
				header += " · saving..."
			}
			lines = append(lines, SectionTitleStyle.Render(header))
			notes := d.Notes
			if notes == "" {
				notes = "No notes yet."
			}
			lines = append(lines, ValueStyle.Width(width-2).Render(notes))
		}
	}

	p.viewport.SetContent(strings.Join(lines, "\n"))
	// Keep the selected section's header in view.
	if selectedLine < p.viewport.YOffset() || selectedLine >= p.viewport.YOffset()+p.viewport.Height() {
		p.viewport.SetYOffset(selectedLine)
	}
}

func (p *ProfileView) sectionHeader(s ProfileSection, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	title := s.Title
	switch s.Phase {
	case profile.Editing:
		title += " (editing)"
	case profile.Saving:
		title += " (saving...)"
	}
	if selected {
		return SidebarSelectedStyle.Render(marker + title)
	}
	return SectionTitleStyle.Render(marker + title)
}

// renderRows lays out label/value pairs with aligned labels
func renderRows(rows []profile.FieldValue, width int) []string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, len(r.Label))
	}
	labelWidth = min(labelWidth, width/2)

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		value := r.Value
		if r.Kind == profile.KindBool {
			value = yesNo(value == "true")
		}
		if value == "" {
			value = "-"
		}
		label := fmt.Sprintf("    %-*s ", labelWidth, r.Label)
		out = append(out, fitLine(LabelStyle.Render(label)+ValueStyle.Render(value), width))
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// View renders the panel
func (p *ProfileView) View() string {
	return PanelStyle.Width(p.width).Height(p.height).Render(p.viewport.View())
}
