package modals

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/keys"
)

// newForm builds a modal form in the current palette. The form is
// initialized before it is returned so the first frame shows its fields.
// Multiple groups page one at a time.
func newForm(width int, groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).
		WithTheme(huh.ThemeFunc(formStyles)).
		WithShowHelp(false).
		WithWidth(width)
	form.Init()
	return form
}

// updateForm forwards msg to the form. Enter and Escape belong to the app's
// modal handlers, which submit or cancel.
func updateForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		if s := k.String(); s == keys.Enter || s == keys.Escape {
			return form, nil
		}
	}
	next, cmd := form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		return f, cmd
	}
	return form, cmd
}

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// formStyles reads the palette on every call so a theme change in settings
// reaches the next form.
func formStyles(isDark bool) *huh.Styles {
	s := huh.ThemeBase(isDark)

	focused := &s.Focused
	focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(ColorPrimary)
	focused.Card = focused.Base
	focused.Title = fg(ColorText).Bold(true)
	focused.Description = fg(ColorTextMuted)
	focused.ErrorIndicator = fg(ColorWarning).SetString(" !")
	focused.ErrorMessage = fg(ColorWarning).Italic(true)

	focused.SelectSelector = fg(ColorPrimary).SetString("› ")
	focused.MultiSelectSelector = focused.SelectSelector
	focused.NextIndicator = fg(ColorPrimary).MarginLeft(1).SetString("▸")
	focused.PrevIndicator = fg(ColorPrimary).MarginRight(1).SetString("◂")
	focused.Option = fg(ColorText)
	focused.SelectedOption = fg(ColorSecondary)
	focused.SelectedPrefix = fg(ColorSecondary).SetString("◉ ")
	focused.UnselectedOption = fg(ColorText)
	focused.UnselectedPrefix = fg(ColorTextMuted).SetString("○ ")

	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	focused.FocusedButton = button.Foreground(ColorTextInverse).Background(ColorPrimary)
	focused.BlurredButton = button.Foreground(ColorTextMuted)

	focused.TextInput.Cursor = fg(ColorPrimary)
	focused.TextInput.Prompt = fg(ColorPrimary)
	focused.TextInput.Placeholder = fg(ColorTextMuted).Italic(true)
	focused.TextInput.Text = fg(ColorText)

	s.Blurred = s.Focused
	s.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
	s.Blurred.Card = s.Blurred.Base
	s.Blurred.Title = fg(ColorTextMuted)
	s.Blurred.NextIndicator = lipgloss.NewStyle()
	s.Blurred.PrevIndicator = lipgloss.NewStyle()

	s.Group.Title = fg(ColorSecondary).Bold(true)
	// Section pages show "Page n of m" here
	s.Group.Description = fg(ColorTextMuted).Italic(true)

	s.FieldSeparator = lipgloss.NewStyle().SetString("\n")
	s.Help = help.New().Styles
	return s
}
