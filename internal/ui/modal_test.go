package ui

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/studydesk/internal/ui/modals"
)

func TestNewModal(t *testing.T) {
	modal := NewModal()

	if modal == nil {
		t.Fatal("NewModal() returned nil")
	}
	if modal.IsVisible() {
		t.Error("New modal should not be visible")
	}
	if modal.State != nil {
		t.Error("New modal should have nil state")
	}
}

func TestModal_ShowHide(t *testing.T) {
	modal := NewModal()
	modal.Show(modals.NewConfirmDeleteDocument("d1", "passport.pdf"))

	if !modal.IsVisible() {
		t.Error("Modal should be visible after Show")
	}

	modal.Hide()

	if modal.IsVisible() {
		t.Error("Modal should not be visible after Hide")
	}
}

func TestModal_Error(t *testing.T) {
	modal := NewModal()

	if modal.GetError() != "" {
		t.Error("New modal should have no error")
	}

	modal.SetError("Something went wrong")
	if modal.GetError() != "Something went wrong" {
		t.Errorf("Expected error message, got %q", modal.GetError())
	}

	// Show clears error
	modal.Show(modals.NewConfirmDeleteDocument("d1", "passport.pdf"))
	if modal.GetError() != "" {
		t.Error("Show should clear error")
	}

	modal.SetError("New error")
	modal.Hide()
	if modal.GetError() != "" {
		t.Error("Hide should clear error")
	}
}

func TestModal_View(t *testing.T) {
	modal := NewModal()

	if view := modal.View(80, 24); view != "" {
		t.Error("View should return empty string when not visible")
	}

	modal.Show(modals.NewConfirmDeleteApplication("a1", "McGill University"))
	modal.SetError("Could not delete application")

	view := stripANSI(modal.View(100, 30))
	for _, want := range []string{"Delete Application?", "McGill University", "Could not delete application"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q\n%s", want, view)
		}
	}
}

func TestModal_View_WidthClamping(t *testing.T) {
	modal := NewModal()
	modal.Show(modals.NewInspectState("Application", strings.Repeat("x", 40)))

	for _, screen := range []int{200, 100, 60} {
		view := modal.View(screen, 40)
		if view == "" {
			t.Fatalf("View should render at width %d", screen)
		}
		for i, line := range strings.Split(view, "\n") {
			if w := lipgloss.Width(line); w > screen {
				t.Errorf("screen %d: line %d is %d wide", screen, i, w)
			}
		}
	}
}

func TestModal_PreferredWidth(t *testing.T) {
	modal := NewModal()

	modal.Show(modals.NewConfirmDeleteDocument("d1", "a.pdf"))
	if got := modal.width(200); got != ModalWidth {
		t.Errorf("default width = %d, want %d", got, ModalWidth)
	}

	modal.Show(modals.NewInspectState("x", "{}"))
	if got := modal.width(200); got != ModalWidthWide {
		t.Errorf("wide width = %d, want %d", got, ModalWidthWide)
	}
	if got := modal.width(50); got != 50-modalMargin {
		t.Errorf("clamped width = %d, want %d", got, 50-modalMargin)
	}
}

func TestRefreshModalStyles(t *testing.T) {
	SetTheme("nord")
	defer SetTheme(DefaultTheme)

	if modals.ColorPrimary != ColorPrimary {
		t.Error("modal colours should follow the theme")
	}
	if modals.ModalWidthWide != ModalWidthWide {
		t.Errorf("modals.ModalWidthWide = %d", modals.ModalWidthWide)
	}
}
