package modals

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"

	"github.com/zhubert/studydesk/internal/profile"
)

// sectionFieldsPerPage is how many inputs one page of the section form holds
const sectionFieldsPerPage = 6

// =============================================================================
// SectionEditState - State for editing one profile section
// =============================================================================

type SectionEditState struct {
	Section profile.SectionID
	title   string

	fields   []profile.FieldValue
	texts    []string
	bools    []bool
	original []string
	form     *huh.Form
}

func (*SectionEditState) modalState() {}

func (s *SectionEditState) PreferredWidth() int { return ModalWidthWide }

func (s *SectionEditState) Title() string { return "Edit " + s.title }

func (s *SectionEditState) Help() string {
	if len(s.fields) > sectionFieldsPerPage {
		return "Tab: next field (pages follow)  Enter: save  Esc: cancel"
	}
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SectionEditState) Render() string {
	if len(s.fields) == 0 {
		return layout(s.Title(), mutedText("Nothing to edit in this section.")+"\n", s.Help())
	}
	return layout(s.Title(), s.form.View(), s.Help())
}

func (s *SectionEditState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if s.form == nil {
		return s, nil
	}
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, msg)
	return s, cmd
}

func (s *SectionEditState) value(i int) string {
	if s.fields[i].Kind == profile.KindBool {
		return strconv.FormatBool(s.bools[i])
	}
	return s.texts[i]
}

// Changes returns the edited values keyed by field path, in form order.
// Fields left as they were are omitted.
func (s *SectionEditState) Changes() []profile.FieldValue {
	var out []profile.FieldValue
	for i, f := range s.fields {
		if v := s.value(i); v != s.original[i] {
			f.Value = v
			out = append(out, f)
		}
	}
	return out
}

// NewSectionEditState builds a form with one input per field
func NewSectionEditState(id profile.SectionID, fields []profile.FieldValue) *SectionEditState {
	s := &SectionEditState{
		Section:  id,
		title:    id.String(),
		fields:   fields,
		texts:    make([]string, len(fields)),
		bools:    make([]bool, len(fields)),
		original: make([]string, len(fields)),
	}

	var groups []*huh.Group
	var page []huh.Field
	for i, f := range fields {
		var field huh.Field
		if f.Kind == profile.KindBool {
			s.bools[i] = f.Value == "true"
			s.original[i] = strconv.FormatBool(s.bools[i])
			field = huh.NewConfirm().
				Title(f.Label).
				Affirmative("Yes").
				Negative("No").
				Value(&s.bools[i])
		} else {
			s.texts[i] = f.Value
			s.original[i] = f.Value
			field = huh.NewInput().
				Title(f.Label).
				CharLimit(ModalInputCharLimit).
				Value(&s.texts[i])
		}
		page = append(page, field)
		if len(page) == sectionFieldsPerPage || i == len(fields)-1 {
			groups = append(groups, huh.NewGroup(page...))
			page = nil
		}
	}
	if len(groups) == 0 {
		return s
	}
	if len(groups) > 1 {
		for i, g := range groups {
			g.Description(fmt.Sprintf("Page %d of %d", i+1, len(groups)))
		}
	}

	s.form = newForm(ModalWidthWide-10, groups...)
	return s
}
