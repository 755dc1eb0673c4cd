// Package scenarios contains built-in demo scenarios for studydesk.
package scenarios

import (
	"time"

	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/demo/replay"
	"github.com/zhubert/studydesk/internal/models"
)

// Overview walks an advisor through a working session:
// - Browsing every application with its chat
// - Replying to a student and starring an application
// - Moving an application to a new status
// - Opening the student's profile
var Overview = &replay.Scenario{
	Name:        "overview",
	Description: "Advisor: triage applications, chat, update status, open a student",
	Width:       120,
	Height:      40,
	Setup:       replay.DefaultSetup(),
	Steps: []replay.Step{
		// Initial view - all applications with the first chat open
		replay.Wait(1 * time.Second),
		replay.Annotate("Every application, starred first"),
		replay.Capture(),

		// A student writes in while we look
		replay.Incoming(demo.Applications()[1].ID,
			models.Sender{ID: demo.StudentID, Name: "Priya Sharma", Role: string(auth.RoleStudent)},
			"I've uploaded the financial documents you asked for."),
		replay.Wait(500 * time.Millisecond),

		// Move to that application
		replay.KeyWithDesc("down", "Select the next application"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),

		// Reply in the chat
		replay.KeyWithDesc("tab", "Focus the chat"),
		replay.Type("Thanks Priya, I'll review them today."),
		replay.Wait(300 * time.Millisecond),
		replay.Capture(),
		replay.KeyWithDesc("enter", "Send the reply"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),

		// Back to the list and star it
		replay.KeyWithDesc("esc", "Back to the list"),
		replay.KeyWithDesc("s", "Star the application"),
		replay.Wait(300 * time.Millisecond),
		replay.Capture(),

		// Update the status
		replay.KeyWithDesc("u", "Pick a new status"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),
		replay.Key("down"),
		replay.Key("down"),
		replay.Wait(300 * time.Millisecond),
		replay.KeyWithDesc("enter", "Apply the status"),
		replay.Wait(500 * time.Millisecond),
		replay.Annotate("The student is told in the chat"),
		replay.Capture(),

		// Open the student behind the application
		replay.KeyWithDesc("o", "Open the student"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),
		replay.KeyWithDesc("5", "Student profile"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),

		// Final pause
		replay.Wait(2 * time.Second),
	},
}

// Student shows the student's side: dashboard, applications, documents
// and the one-time profile edit.
var Student = &replay.Scenario{
	Name:        "student",
	Description: "Student: dashboard, applications, documents and profile",
	Width:       120,
	Height:      40,
	Setup: &replay.ScenarioSetup{
		Capability: auth.Capability{
			UserID:    "demo-user",
			Name:      "Priya Sharma",
			Role:      auth.RoleStudent,
			StudentID: demo.StudentID,
		},
	},
	Steps: []replay.Step{
		replay.Wait(1 * time.Second),
		replay.Annotate("The dashboard sums up every application"),
		replay.Capture(),

		replay.KeyWithDesc("2", "My applications"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),

		replay.KeyWithDesc("3", "Documents"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),
		replay.KeyWithDesc("f", "Filter by type"),
		replay.Wait(300 * time.Millisecond),
		replay.Capture(),

		replay.KeyWithDesc("4", "Profile"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),
		replay.KeyWithDesc("e", "Edit basic info"),
		replay.Wait(500 * time.Millisecond),
		replay.Capture(),
		replay.KeyWithDesc("esc", "Close without changes"),

		// Final pause
		replay.Wait(2 * time.Second),
	},
}

// All returns all available scenarios.
func All() []*replay.Scenario {
	return []*replay.Scenario{
		Overview,
		Student,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *replay.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
