package modals

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"

	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

// Intakes are the seasons an application can start in
var Intakes = []string{"Fall", "Spring", "Summer", "Winter"}

// =============================================================================
// NewApplicationState - State for the New Application modal
// =============================================================================

type NewApplicationState struct {
	StudentID string

	university  string
	program     string
	countryCode string
	intake      string
	year        string

	form *huh.Form
}

func (*NewApplicationState) modalState() {}

func (s *NewApplicationState) Title() string { return "New Application" }

func (s *NewApplicationState) Help() string {
	return "Tab: next field  Enter: submit  Esc: cancel"
}

func (s *NewApplicationState) Render() string {
	return layout(s.Title(), s.form.View(), s.Help())
}

func (s *NewApplicationState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, msg)
	return s, cmd
}

// GetValues returns the form as a submission. The year is left at zero when
// it is not a number so that validation reports it.
func (s *NewApplicationState) GetValues() models.NewApplication {
	year, _ := strconv.Atoi(strings.TrimSpace(s.year))
	return models.NewApplication{
		University:  strings.TrimSpace(s.university),
		Program:     strings.TrimSpace(s.program),
		CountryCode: strings.ToUpper(strings.TrimSpace(s.countryCode)),
		Intake:      s.intake,
		Year:        year,
		StudentID:   s.StudentID,
	}
}

func validateCountry(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if format.CountryFlag(v) == "" {
		return fmt.Errorf("use a two-letter country code, e.g. CA")
	}
	return nil
}

func validateYear(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if _, err := strconv.Atoi(v); err != nil {
		return fmt.Errorf("year must be a number")
	}
	return nil
}

// NewNewApplicationState creates the form for studentID, defaulting the
// year to defaultYear
func NewNewApplicationState(studentID string, defaultYear int) *NewApplicationState {
	s := &NewApplicationState{
		StudentID: studentID,
		intake:    Intakes[0],
		year:      strconv.Itoa(defaultYear),
	}

	intakeOptions := make([]huh.Option[string], len(Intakes))
	for i, in := range Intakes {
		intakeOptions[i] = huh.NewOption(in, in)
	}

	s.form = newForm(ModalInputWidth,
		huh.NewGroup(
			huh.NewInput().
				Title("University").
				Placeholder("University of Toronto").
				CharLimit(ModalInputCharLimit).
				Value(&s.university),
			huh.NewInput().
				Title("Program").
				Placeholder("MSc Computer Science").
				CharLimit(ModalInputCharLimit).
				Value(&s.program),
			huh.NewInput().
				Title("Country code").
				Placeholder("CA").
				CharLimit(2).
				Validate(validateCountry).
				Value(&s.countryCode),
			huh.NewSelect[string]().
				Title("Intake").
				Options(intakeOptions...).
				Value(&s.intake),
			huh.NewInput().
				Title("Year").
				CharLimit(4).
				Validate(validateYear).
				Value(&s.year),
		),
	)
	return s
}
