// Package replay drives the app through scripted scenarios against the
// in-memory demo backend and captures what the terminal shows. It produces
// deterministic recordings without a running API.
package replay

import (
	"fmt"
	"time"

	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/demo"
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/ui"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
	// StepFlash shows a footer flash message.
	StepFlash
	// StepIncoming delivers a chat message from the other side, then
	// reloads so the unread badge appears.
	StepIncoming
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText and StepIncoming
	Text string

	// For StepWait
	Duration time.Duration

	// For StepAnnotate
	Annotation string

	// For StepFlash
	FlashText string
	FlashType ui.FlashType

	// For StepIncoming
	ApplicationID string
	From          models.Sender
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines who is signed in and what they start looking at.
type ScenarioSetup struct {
	Capability auth.Capability

	// StudentID opens the student pages for an advisor
	StudentID string

	// Extra records on top of the demo fixtures
	Students     []models.Student
	Applications []models.Application
}

// DefaultSetup signs in as the demo advisor.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Capability: auth.Capability{
			UserID: demo.AdvisorID,
			Name:   "Maya Fernandes",
			Role:   auth.RoleAdvisor,
		},
	}
}

// Validate checks that the scenario is valid and fills defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if s.Setup.Capability.Role == "" {
		return &ValidationError{Field: "Setup.Capability", Message: "a role is required"}
	}
	for i, step := range s.Steps {
		if step.Type == StepIncoming && step.ApplicationID == "" {
			return &ValidationError{Field: "Steps", Message: fmt.Sprintf("incoming message without an application at step %d", i)}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}

// Flash creates a flash message step.
func Flash(text string, flashType ui.FlashType) Step {
	return Step{
		Type:      StepFlash,
		FlashText: text,
		FlashType: flashType,
	}
}

// Incoming delivers a message from someone else into an application chat.
func Incoming(applicationID string, from models.Sender, text string) Step {
	return Step{
		Type:          StepIncoming,
		ApplicationID: applicationID,
		From:          from,
		Text:          text,
	}
}
