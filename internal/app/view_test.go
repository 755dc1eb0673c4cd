package app

import (
	"strings"
	"testing"

	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

func TestView_StudentListTitle(t *testing.T) {
	m, _ := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "2")
	if !strings.Contains(m.RenderToString(), "My Applications") {
		t.Error("students see their own list title")
	}
}

func TestView_ModalReplacesPage(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	m.modal.Show(modals.NewConfirmDeleteApplication("a1", "MIT"))
	out := m.RenderToString()
	if !strings.Contains(out, "MIT") {
		t.Error("expected the modal in the view")
	}
}

func TestStudentName(t *testing.T) {
	s, _ := testModel(t, studentCap, "")
	if got := s.studentName(); got != studentCap.Name {
		t.Errorf("studentName() = %q, want %q", got, studentCap.Name)
	}

	m, _ := testModel(t, advisorCap, demo.StudentID)
	if got := m.studentName(); got != "" {
		t.Errorf("before the profile loads, got %q", got)
	}
	m = setSize(m, 120, 40)
	m = run(m, m.switchPage(PageStudentProfile))
	if got := m.studentName(); got != demo.Student(demo.StudentID).FullName() {
		t.Errorf("studentName() = %q", got)
	}
}

func TestProfileData(t *testing.T) {
	m, _ := testModel(t, advisorCap, demo.StudentID)
	m = setSize(m, 120, 40)
	m = run(m, m.switchPage(PageStudentProfile))

	d := m.profileData()
	if !d.ShowNotes {
		t.Error("advisors see notes")
	}
	if d.Name == "" || len(d.Sections) == 0 {
		t.Errorf("expected a loaded profile, got %+v", d)
	}
	if !strings.Contains(m.pageTitle(), d.Name) {
		t.Errorf("page title %q should name the student", m.pageTitle())
	}
}
