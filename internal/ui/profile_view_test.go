package ui

import (
	"strings"
	"testing"

	"github.com/zhubert/studydesk/internal/profile"
)

func testProfileData() ProfileData {
	return ProfileData{
		Name:  "Priya Sharma",
		Email: "priya@example.com",
		Sections: []ProfileSection{
			{
				Title: "Basic Info",
				Phase: profile.Editing,
				Rows: []profile.FieldValue{
					{Path: "firstName", Label: "First name", Kind: profile.KindText, Value: "Priya"},
					{Path: "phone", Label: "Phone", Kind: profile.KindText},
				},
			},
			{
				Title:  "Personal Details",
				Phase:  profile.Viewing,
				Notice: profile.Notice{Text: "Saved"},
				Rows: []profile.FieldValue{
					{Path: "hasPassport", Label: "Has passport", Kind: profile.KindBool, Value: "true"},
				},
			},
		},
		CanEdit: true,
	}
}

func TestProfileView_RendersSections(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)
	p := NewProfileView()
	p.SetSize(80, 30)
	p.SetData(testProfileData())

	view := stripANSI(p.View())
	for _, want := range []string{
		"Priya Sharma", "priya@example.com", "> Basic Info (editing)",
		"Personal Details", "Has passport", "Yes", "Saved",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q\n%s", want, view)
		}
	}
	if strings.Contains(view, "Advisor notes") {
		t.Error("notes should be hidden unless ShowNotes is set")
	}
}

func TestProfileView_States(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)

	tests := []struct {
		name string
		edit func(*ProfileData)
		want string
	}{
		{"loading", func(d *ProfileData) { d.Sections = nil; d.Loading = true }, "Loading profile..."},
		{"load error", func(d *ProfileData) { d.Sections = nil; d.LoadErr = "not found" }, "Could not load this student: not found"},
		{"placeholder", func(d *ProfileData) { d.Placeholder = true }, "Showing sample data"},
		{"locked", func(d *ProfileData) { d.Locked = true }, "Contact your advisor"},
		{"delete prompt", func(d *ProfileData) { d.DeletePrompt = true }, "Delete this student?"},
		{"empty notes", func(d *ProfileData) { d.ShowNotes = true }, "No notes yet."},
		{"saving notes", func(d *ProfileData) { d.ShowNotes = true; d.NotesSaving = true }, "Advisor notes · saving..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testProfileData()
			tt.edit(&d)
			p := NewProfileView()
			p.SetSize(90, 34)
			p.SetData(d)
			if view := stripANSI(p.View()); !strings.Contains(view, tt.want) {
				t.Errorf("view should contain %q\n%s", tt.want, view)
			}
		})
	}
}

func TestRenderRows(t *testing.T) {
	rows := renderRows([]profile.FieldValue{
		{Label: "Name", Kind: profile.KindText, Value: "Ana"},
		{Label: "Married", Kind: profile.KindBool, Value: "false"},
		{Label: "Phone", Kind: profile.KindText},
	}, 60)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"Ana", "No", "-"} {
		if got := stripANSI(rows[i]); !strings.Contains(got, want) {
			t.Errorf("row %d = %q, want it to contain %q", i, got, want)
		}
	}
}
