package app

import (
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

func TestPage_String(t *testing.T) {
	tests := []struct {
		page Page
		want string
	}{
		{PageApplications, "Applications"},
		{PageStudentApplication, "Student Applications"},
		{PageDocuments, "Documents"},
		{PageStudentDashboard, "Dashboard"},
		{PageStudentProfile, "Profile"},
		{Page(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.page.String(); got != tt.want {
			t.Errorf("Page(%d).String() = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestNew_AdvisorStartsOnApplications(t *testing.T) {
	m, _ := testModel(t, advisorCap, "")
	if m.CurrentPage() != PageApplications {
		t.Errorf("expected PageApplications, got %v", m.CurrentPage())
	}
	if got := m.Pages(); !slices.Equal(got, []Page{PageApplications, PageDocuments}) {
		t.Errorf("Pages() = %v", got)
	}
	if m.StudentID() != "" {
		t.Errorf("expected no student scope, got %q", m.StudentID())
	}
}

func TestNew_AdvisorWithStudent(t *testing.T) {
	m, _ := testModel(t, advisorCap, demo.StudentID)
	if len(m.Pages()) != 5 {
		t.Errorf("expected 5 pages with a student open, got %v", m.Pages())
	}
	if m.StudentID() != demo.StudentID {
		t.Errorf("StudentID() = %q", m.StudentID())
	}
}

func TestNew_StudentStartsOnDashboard(t *testing.T) {
	m, _ := testModel(t, studentCap, "someone-else")
	if m.CurrentPage() != PageStudentDashboard {
		t.Errorf("expected PageStudentDashboard, got %v", m.CurrentPage())
	}
	if m.StudentID() != demo.StudentID {
		t.Errorf("students are scoped to themselves, got %q", m.StudentID())
	}
	want := []Page{PageStudentDashboard, PageStudentApplication, PageDocuments, PageStudentProfile}
	if got := m.Pages(); !slices.Equal(got, want) {
		t.Errorf("Pages() = %v, want %v", got, want)
	}
	if m.apps != nil {
		t.Error("students never get the all-applications list")
	}
}

func TestInit_LoadsApplicationsAndChats(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)

	if backend.Calls("ListApplications") != 1 {
		t.Errorf("ListApplications called %d times", backend.Calls("ListApplications"))
	}
	if backend.Calls("ListChats") != 1 {
		t.Errorf("ListChats called %d times", backend.Calls("ListChats"))
	}
	snap := m.apps.Snapshot()
	if len(snap.Items) != len(demo.Applications()) {
		t.Fatalf("expected %d applications, got %d", len(demo.Applications()), len(snap.Items))
	}
	if snap.SelectedID != snap.Items[0].ID {
		t.Errorf("first application should be selected, got %q", snap.SelectedID)
	}
	if !m.chat.HasThread() {
		t.Error("selecting an application should open its chat")
	}
}

func TestInit_FailedLoadShowsSampleData(t *testing.T) {
	m, backend := testModel(t, advisorCap, "")
	backend.Fail("ListApplications", stderrors.New("connection refused"))
	m = setSize(m, 120, 40)
	m = run(m, m.Init())

	snap := m.apps.Snapshot()
	if !snap.Degraded {
		t.Error("expected the list to be degraded")
	}
	if !strings.Contains(snap.Banner, "Showing sample data") {
		t.Errorf("unexpected banner %q", snap.Banner)
	}
	if len(snap.Items) == 0 {
		t.Error("placeholder applications should be shown")
	}
}

func TestSwitchPage_LoadsOnce(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)

	m = press(m, "2")
	if m.CurrentPage() != PageDocuments {
		t.Fatalf("expected PageDocuments, got %v", m.CurrentPage())
	}
	m = press(m, "1")
	m = press(m, "2")
	if n := backend.Calls("ListDocuments"); n != 1 {
		t.Errorf("documents should load once, got %d calls", n)
	}
}

func TestSwitchPage_UnknownDigitFlashesHint(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	m = sendKey(m, "5")
	if m.CurrentPage() != PageApplications {
		t.Errorf("page should not change, got %v", m.CurrentPage())
	}
	if !m.footer.HasFlash() {
		t.Error("expected a page hint flash")
	}
}

func TestReload_FetchesAgain(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	m = run(m, m.Reload())
	if backend.Calls("ListApplications") != 2 {
		t.Errorf("expected a second load, got %d", backend.Calls("ListApplications"))
	}
}

func TestChatsLoaded_SetsUnreadBadges(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	id := demo.Applications()[1].ID
	backend.Receive(id, models.Sender{ID: demo.StudentID, Name: "Priya Sharma"}, "Any news?")

	m = run(m, m.Reload())
	if m.unread[id] != 1 {
		t.Errorf("unread[%s] = %d, want 1", id, m.unread[id])
	}
}

func TestOpenStudent(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	selected, _ := m.selectedApplication()

	m = press(m, "o")
	if m.CurrentPage() != PageStudentApplication {
		t.Fatalf("expected PageStudentApplication, got %v", m.CurrentPage())
	}
	if m.StudentID() != selected.StudentID {
		t.Errorf("StudentID() = %q, want %q", m.StudentID(), selected.StudentID)
	}
	if backend.Calls("ListStudentApplications") != 1 {
		t.Error("student applications should load")
	}
	if recent := m.config.GetRecentStudents(); len(recent) == 0 || recent[0] != selected.StudentID {
		t.Errorf("student should be remembered, got %v", recent)
	}
}

func TestStudentPages(t *testing.T) {
	m, backend := testModelWithSize(t, studentCap, 120, 40)
	if backend.Calls("ListStudentApplications") == 0 {
		t.Error("the dashboard reads the student's applications")
	}

	m = press(m, "3")
	if m.CurrentPage() != PageDocuments {
		t.Fatalf("expected PageDocuments, got %v", m.CurrentPage())
	}
	if backend.Calls("ListStudentDocuments") == 0 || backend.Calls("ListDocuments") != 0 {
		t.Error("students only see their own documents")
	}

	m = press(m, "4")
	if backend.Calls("GetProfile") != 1 {
		t.Errorf("GetProfile called %d times", backend.Calls("GetProfile"))
	}
	if _, ok := m.prof.Student(); !ok {
		t.Error("profile should be loaded")
	}
}

func TestStudentDeleted_ReturnsToApplications(t *testing.T) {
	m, backend := testModel(t, advisorCap, demo.StudentID)
	m = setSize(m, 120, 40)
	m = run(m, m.Init())
	m = run(m, m.switchPage(PageStudentProfile))

	m = press(m, "d")
	if _, ok := m.modal.State.(*modals.ConfirmState); !ok {
		t.Fatalf("expected a confirmation, got %T", m.modal.State)
	}
	m = press(m, "y")

	if backend.Calls("DeleteStudent") != 1 {
		t.Error("expected the student to be deleted")
	}
	if m.CurrentPage() != PageApplications {
		t.Errorf("expected PageApplications, got %v", m.CurrentPage())
	}
	if m.StudentID() != "" {
		t.Error("student scope should be cleared")
	}
}

func TestRenderToString(t *testing.T) {
	m, _ := testModel(t, advisorCap, "")
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("before sizing, got %q", got)
	}

	m = setSize(m, 120, 40)
	m = run(m, m.Init())
	out := m.RenderToString()
	if !strings.Contains(out, "Applications") {
		t.Error("expected the list title in the view")
	}
	if !strings.Contains(out, demo.Applications()[0].University) {
		t.Error("expected an application in the view")
	}
}

func TestView_UsesAltScreen(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}
