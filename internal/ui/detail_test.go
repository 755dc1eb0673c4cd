package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/zhubert/studydesk/internal/models"
)

func TestDetail_Empty(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)
	d := NewDetail()
	d.SetSize(60, 15)

	if view := stripANSI(d.View()); !strings.Contains(view, "No application selected.") {
		t.Errorf("expected empty state\n%s", view)
	}
}

func TestDetail_Application(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)
	d := NewDetail()
	d.SetSize(70, 18)
	d.SetBanner("Could not load applications. Showing sample data.")
	d.SetReadOnly(true)
	d.SetApplication(models.Application{
		University:    "University of Toronto",
		Program:       "MSc Computer Science",
		CountryCode:   "ca",
		Intake:        "Fall",
		Year:          2025,
		Status:        "Offer Received",
		StatusColor:   "#4caf50",
		ApplicationID: "482913/2025",
		Date:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Starred:       true,
	}, true)

	view := stripANSI(d.View())
	for _, want := range []string{
		"University of Toronto", "★", "MSc Computer Science", "Country: CA",
		"Fall 2025", "Offer Received", "482913/2025", "Jan 15, 2025",
		"sample data", "made by your advisor",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q\n%s", want, view)
		}
	}
}

func TestDetailRow_EmptyValue(t *testing.T) {
	if got := stripANSI(detailRow("Portal", "")); got != "Portal: -" {
		t.Errorf("detailRow = %q", got)
	}
}
