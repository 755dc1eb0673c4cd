package app

import (
	"slices"
	"testing"

	"github.com/zhubert/studydesk/internal/ui/modals"
)

// =============================================================================
// ShortcutRegistry Tests
// =============================================================================

func TestShortcutRegistry_AllShortcutsHaveHandlers(t *testing.T) {
	for _, s := range ShortcutRegistry {
		if s.Handler == nil {
			t.Errorf("Shortcut %q has no handler", s.Key)
		}
		if s.Key == "" {
			t.Error("Shortcut has empty key")
		}
		if s.Description == "" {
			t.Errorf("Shortcut %q has no description", s.Key)
		}
		if s.Category == "" {
			t.Errorf("Shortcut %q has no category", s.Key)
		}
	}
}

// A key may be reused across pages, never twice on one page
func TestShortcutRegistry_NoDuplicateKeysPerPage(t *testing.T) {
	allPages := []Page{PageApplications, PageStudentApplication, PageDocuments, PageStudentDashboard, PageStudentProfile}
	pagesOf := func(s Shortcut) []Page {
		if len(s.Pages) == 0 {
			return allPages
		}
		return s.Pages
	}
	for i, a := range ShortcutRegistry {
		for _, b := range ShortcutRegistry[i+1:] {
			if a.Key != b.Key || a.Description == b.Description {
				continue
			}
			for _, p := range pagesOf(a) {
				if slices.Contains(pagesOf(b), p) {
					t.Errorf("key %q bound twice on %v: %q and %q", a.Key, p, a.Description, b.Description)
				}
			}
		}
	}
	for _, s := range ShortcutRegistry {
		if s.Key == helpShortcut.Key {
			t.Error("Help shortcut key '?' duplicated in registry")
		}
	}
}

func TestShortcutRegistry_ValidCategories(t *testing.T) {
	for _, s := range ShortcutRegistry {
		if !slices.Contains(categoryOrder, s.Category) {
			t.Errorf("Shortcut %q has invalid category: %q", s.Key, s.Category)
		}
	}
}

// =============================================================================
// ExecuteShortcut Tests
// =============================================================================

func TestExecuteShortcut_ReturnsNotHandledForUnknownKey(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	if _, _, handled := m.ExecuteShortcut("z"); handled {
		t.Error("expected 'z' not to be handled")
	}
}

func TestExecuteShortcut_ElevatedOnly(t *testing.T) {
	m, _ := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "2")
	if m.CurrentPage() != PageStudentApplication {
		t.Fatalf("expected PageStudentApplication, got %v", m.CurrentPage())
	}
	for _, key := range []string{"u", "d", "i", "x"} {
		if _, _, handled := m.ExecuteShortcut(key); handled {
			t.Errorf("students should not be able to use %q", key)
		}
	}
}

func TestExecuteShortcut_ListKeysIgnoredWhileChatFocused(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	m = sendKey(m, "tab")
	if m.focus != FocusChat {
		t.Fatal("expected chat focus")
	}
	if _, _, handled := m.ExecuteShortcut("s"); handled {
		t.Error("star must not fire while typing")
	}
}

func TestShortcut_ToggleStar(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	m = press(m, "s")
	if backend.Calls("ToggleStar") != 1 {
		t.Errorf("ToggleStar called %d times", backend.Calls("ToggleStar"))
	}
}

func TestShortcut_MoveSelection(t *testing.T) {
	m, backend := testModelWithSize(t, advisorCap, 120, 40)
	items := m.apps.Items()

	m = press(m, "down")
	if got := m.apps.Snapshot().SelectedID; got != items[1].ID {
		t.Errorf("selected %q, want %q", got, items[1].ID)
	}
	if m.pendingSelect != "" {
		t.Error("pending selection should clear once the chat opens")
	}
	if backend.Calls("GetApplicationChat") < 2 {
		t.Error("the new selection's chat should be opened")
	}

	// Clamped at the top
	m = press(m, "up")
	m = press(m, "up")
	if got := m.apps.Snapshot().SelectedID; got != items[0].ID {
		t.Errorf("selected %q, want %q", got, items[0].ID)
	}
}

func TestShortcut_Help(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	m = sendKey(m, "?")
	if _, ok := m.modal.State.(*modals.HelpState); !ok {
		t.Fatalf("expected help modal, got %T", m.modal.State)
	}
	m = sendKey(m, "esc")
	if m.modal.IsVisible() {
		t.Error("esc should close help")
	}
}

func TestShortcut_Quit(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	_, cmd := m.Update(keyPress("q"))
	if !isQuit(cmd) {
		t.Error("q should quit")
	}
	_, cmd = m.Update(keyPress("ctrl+c"))
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
}

func TestShortcut_CycleFilter(t *testing.T) {
	m, _ := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "3")
	before := m.library.Filter()
	m = sendKey(m, "f")
	if m.library.Filter() == before {
		t.Error("f should change the document filter")
	}
}

func TestShortcut_UploadStudentsOnly(t *testing.T) {
	m, _ := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "3")
	m = sendKey(m, "u")
	if _, ok := m.modal.State.(*modals.UploadState); !ok {
		t.Errorf("expected upload modal, got %T", m.modal.State)
	}

	staff, _ := testModelWithSize(t, advisorCap, 120, 40)
	staff = press(staff, "2")
	staff = sendKey(staff, "u")
	if staff.modal.IsVisible() {
		t.Error("staff cannot upload documents")
	}
}

// =============================================================================
// Help and footer
// =============================================================================

func TestHelpSections_FilteredByRole(t *testing.T) {
	m, _ := testModelWithSize(t, studentCap, 120, 40)
	m = press(m, "2")
	sections := m.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts)
	for _, sec := range sections {
		for _, sc := range sec.Shortcuts {
			if sc.Desc == "Update application status" {
				t.Error("students should not see status updates in help")
			}
		}
	}
	if len(sections) == 0 || sections[0].Title != CategoryNavigation {
		t.Errorf("expected Navigation first, got %+v", sections)
	}
}

func TestFooterBindings(t *testing.T) {
	m, _ := testModelWithSize(t, advisorCap, 120, 40)
	b := m.footerBindings()
	if len(b) < 2 || b[len(b)-1].Key != "q" || b[len(b)-2].Key != "?" {
		t.Errorf("bindings should end with help and quit, got %v", b)
	}

	m = sendKey(m, "tab")
	b = m.footerBindings()
	if b[0].Key != "enter" {
		t.Errorf("chat focus shows send first, got %v", b)
	}
}

func TestPageForKey(t *testing.T) {
	m, _ := testModel(t, studentCap, "")
	tests := []struct {
		key  string
		want Page
		ok   bool
	}{
		{"1", PageStudentDashboard, true},
		{"2", PageStudentApplication, true},
		{"4", PageStudentProfile, true},
		{"5", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := m.pageForKey(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("pageForKey(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
	if m.pageHint() != "Pages 1-4" {
		t.Errorf("pageHint() = %q", m.pageHint())
	}
}
