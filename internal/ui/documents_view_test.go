package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/zhubert/studydesk/internal/documents"
	"github.com/zhubert/studydesk/internal/models"
)

func testDocs() []models.Document {
	at := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	return []models.Document{
		{ID: "d1", Name: "passport.pdf", Type: models.DocPassport, Size: 2048, UploadedAt: at},
		{ID: "d2", Name: "transcript.pdf", Type: models.DocTranscript, Size: 1536 * 1024, UploadedAt: at},
	}
}

func TestDocumentsView_Table(t *testing.T) {
	GetViewContext().UpdateTerminalSize(140, 40)
	v := NewDocumentsView()
	v.SetSize(120, 20)
	v.SetDownloading(map[string]bool{"d2": true})
	v.SetSnapshot(documents.Snapshot{Visible: testDocs(), Total: 2, SelectedID: "d1"})

	view := stripANSI(v.View())
	for _, want := range []string{
		"Documents (2 of 2) · All types", "Name", "Uploaded",
		"passport.pdf", "Passport", "2 KB", "Feb 3, 2025",
		"↓ transcript.pdf", "1.5 MB",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q\n%s", want, view)
		}
	}
}

func TestDocumentsView_States(t *testing.T) {
	GetViewContext().UpdateTerminalSize(140, 40)

	tests := []struct {
		name string
		snap documents.Snapshot
		want string
	}{
		{"loading", documents.Snapshot{Loading: true}, "Loading documents..."},
		{"empty", documents.Snapshot{}, "No documents."},
		{"filtered", documents.Snapshot{Filter: models.DocVisa, Total: 3}, "Documents (0 of 3) · Visa"},
		{"uploading", documents.Snapshot{Uploading: true}, "uploading..."},
		{"banner", documents.Snapshot{Banner: "Could not load documents."}, "! Could not load documents."},
		{"pending delete", documents.Snapshot{Visible: testDocs(), PendingDelete: "d2"}, "delete transcript.pdf? y to confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewDocumentsView()
			v.SetSize(120, 20)
			v.SetSnapshot(tt.snap)
			if view := stripANSI(v.View()); !strings.Contains(view, tt.want) {
				t.Errorf("view should contain %q\n%s", tt.want, view)
			}
		})
	}
}

func TestFilterLabel(t *testing.T) {
	if got := FilterLabel(""); got != "All types" {
		t.Errorf("FilterLabel(\"\") = %q", got)
	}
	if got := FilterLabel(models.DocSOP); got != "Statement of Purpose" {
		t.Errorf("FilterLabel(sop) = %q", got)
	}
}
