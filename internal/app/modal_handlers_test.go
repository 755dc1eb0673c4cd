package app

import (
	"testing"

	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/ui/modals"
)

func TestDeleteApplication_Cancel(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)

	m = sendKey(m, "d")
	state, ok := m.modal.State.(*modals.ConfirmState)
	if !ok {
		t.Fatalf("expected confirm modal, got %T", m.modal.State)
	}
	if m.apps.PendingDelete() != state.ID {
		t.Errorf("pending delete = %q, want %q", m.apps.PendingDelete(), state.ID)
	}

	m = sendKey(m, "n")
	if m.modal.IsVisible() {
		t.Error("n should close the confirmation")
	}
	if m.apps.PendingDelete() != "" {
		t.Error("n should disarm the delete")
	}
	if backend.Calls("DeleteApplication") != 0 {
		t.Error("nothing should be deleted")
	}
}

func TestDeleteApplication_Confirm(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	before := len(m.apps.Items())

	m = press(m, "d")
	m = press(m, "y")
	if backend.Calls("DeleteApplication") != 1 {
		t.Fatalf("DeleteApplication called %d times", backend.Calls("DeleteApplication"))
	}
	if got := len(m.apps.Items()); got != before-1 {
		t.Errorf("expected %d applications, got %d", before-1, got)
	}
}

func TestStatusPicker(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	m = sendKey(m, "u")
	if _, ok := m.modal.State.(*modals.StatusPickerState); !ok {
		t.Fatalf("expected status picker, got %T", m.modal.State)
	}

	m = press(m, "down")
	m = press(m, "enter")
	if m.modal.IsVisible() {
		t.Error("enter should close the picker")
	}
	if backend.Calls("UpdateApplicationStatus") != 1 {
		t.Errorf("UpdateApplicationStatus called %d times", backend.Calls("UpdateApplicationStatus"))
	}
}

func TestStatusPicker_Escape(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	m = sendKey(m, "u")
	m = sendKey(m, "esc")
	if m.modal.IsVisible() {
		t.Error("esc should close the picker")
	}
	if backend.Calls("UpdateApplicationStatus") != 0 {
		t.Error("esc must not update")
	}
}

func TestNewApplication_InvalidKeepsModalOpen(t *testing.T) {
	m, backend := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "2")
	m = sendKey(m, "n")
	if _, ok := m.modal.State.(*modals.NewApplicationState); !ok {
		t.Fatalf("expected new application modal, got %T", m.modal.State)
	}

	m = press(m, "enter")
	if !m.modal.IsVisible() {
		t.Fatal("the form should stay open on a validation error")
	}
	if m.modal.GetError() == "" {
		t.Error("expected a validation message")
	}
	if backend.Calls("CreateApplication") != 0 {
		t.Error("invalid applications never reach the backend")
	}
}

func TestUpload_RequiresPath(t *testing.T) {
	m, backend := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "3")
	m = sendKey(m, "u")
	m = sendKey(m, "enter")
	if m.modal.GetError() == "" {
		t.Error("expected a missing path error")
	}
	if backend.Calls("UploadDocument") != 0 {
		t.Error("nothing should be uploaded")
	}
}

func TestInspect_OpenAndClose(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	m = sendKey(m, "i")
	if _, ok := m.modal.State.(*modals.InspectState); !ok {
		t.Fatalf("expected inspect modal, got %T", m.modal.State)
	}
	if m.inspected == nil {
		t.Error("inspected record should be kept for copying")
	}
	m = sendKey(m, "esc")
	if m.modal.IsVisible() || m.inspected != nil {
		t.Error("esc should close inspect and drop the record")
	}
}

func TestSettings_Save(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	m = sendKey(m, ",")
	if _, ok := m.modal.State.(*modals.SettingsState); !ok {
		t.Fatalf("expected settings modal, got %T", m.modal.State)
	}
	m = sendKey(m, "enter")
	if m.modal.IsVisible() {
		t.Error("enter should close settings")
	}
	if !m.footer.HasFlash() {
		t.Error("expected a confirmation flash")
	}
}

func TestNotes_AdvisorOnly(t *testing.T) {
	m, _ := testModel(t, advisorCap, demo.StudentID)
	m = setSize(m, 120, 40)
	m = run(m, m.switchPage(PageStudentProfile))

	m = sendKey(m, "n")
	if _, ok := m.modal.State.(*modals.NotesState); !ok {
		t.Fatalf("expected notes modal, got %T", m.modal.State)
	}
	m = sendKey(m, "esc")

	s, _ := testModelWithSize(t, studentCap, 120, 40)
	s = press(s, "4")
	s = sendKey(s, "n")
	if _, ok := s.modal.State.(*modals.NotesState); ok {
		t.Error("students cannot edit advisor notes")
	}
}

func TestEditSection_DiscardPrompt(t *testing.T) {
	m, _ := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "4")
	m = sendKey(m, "e")
	if _, ok := m.modal.State.(*modals.SectionEditState); !ok {
		t.Fatalf("expected section editor, got %T", m.modal.State)
	}

	// No edits: escape closes straight away
	m = sendKey(m, "esc")
	if m.modal.IsVisible() {
		t.Error("esc without changes should close the editor")
	}
}

func TestErrorText(t *testing.T) {
	if got := errorText(errors.Busy("x")); got != "Still working on the previous request" {
		t.Errorf("errorText(busy) = %q", got)
	}
	if got := errorText(errors.EmptyMessage()); got == "" {
		t.Error("expected a message")
	}
}

func TestShortcutKey(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"Tab", "tab"},
		{"Enter", "enter"},
		{"ctrl-c", "ctrl+c"},
		{"s", "s"},
	}
	for _, tt := range tests {
		if got := shortcutKey(tt.display); got != tt.want {
			t.Errorf("shortcutKey(%q) = %q, want %q", tt.display, got, tt.want)
		}
	}
}

func TestWhatsNew_ShownOnceForRelease(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetLastSeenVersion("0.1.0")
	m := New(cfg, demo.NewBackend(advisorCap), Options{Capability: advisorCap, Version: "0.3.0"})
	m = setSize(m, 120, 40)
	m.Init()

	if _, ok := m.modal.State.(*modals.ChangelogState); !ok {
		t.Fatalf("expected release notes, got %T", m.modal.State)
	}
	m = sendKey(m, "enter")
	if m.modal.IsVisible() {
		t.Error("enter should dismiss the notes")
	}
	if cfg.GetLastSeenVersion() != "0.3.0" {
		t.Errorf("LastSeenVersion = %q, want 0.3.0", cfg.GetLastSeenVersion())
	}

	again := New(cfg, demo.NewBackend(advisorCap), Options{Capability: advisorCap, Version: "0.3.0"})
	again.Init()
	if again.modal.IsVisible() {
		t.Error("notes should not be shown twice")
	}
}

func TestWhatsNew_SkippedForDevBuilds(t *testing.T) {
	m, _ := testModel(t, advisorCap, "")
	m.Init()
	if m.modal.IsVisible() {
		t.Errorf("dev builds show no release notes, got %T", m.modal.State)
	}
}
