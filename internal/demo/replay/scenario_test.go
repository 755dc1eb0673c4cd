package replay

import (
	"testing"
	"time"

	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/models"
	"github.com/zhubert/studydesk/internal/ui"
)

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name      string
		scenario  *Scenario
		wantErr   bool
		errField  string
		wantWidth int
	}{
		{
			name: "valid scenario",
			scenario: &Scenario{
				Name:        "test",
				Description: "Test scenario",
				Width:       100,
				Height:      30,
				Setup:       DefaultSetup(),
			},
			wantErr:   false,
			wantWidth: 100,
		},
		{
			name: "missing name",
			scenario: &Scenario{
				Description: "Test scenario",
			},
			wantErr:  true,
			errField: "Name",
		},
		{
			name: "default width and height",
			scenario: &Scenario{
				Name:        "test",
				Description: "Test scenario",
			},
			wantErr:   false,
			wantWidth: 120, // Default
		},
		{
			name: "missing role",
			scenario: &Scenario{
				Name:  "test",
				Setup: &ScenarioSetup{Capability: auth.Capability{UserID: "u1"}},
			},
			wantErr:  true,
			errField: "Setup.Capability",
		},
		{
			name: "incoming without application",
			scenario: &Scenario{
				Name:  "test",
				Steps: []Step{Incoming("", models.Sender{}, "hi")},
			},
			wantErr:  true,
			errField: "Steps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil {
				if ve, ok := err.(*ValidationError); ok {
					if ve.Field != tt.errField {
						t.Errorf("Validate() error field = %v, want %v", ve.Field, tt.errField)
					}
				}
			}
			if !tt.wantErr && tt.wantWidth > 0 {
				if tt.scenario.Width != tt.wantWidth {
					t.Errorf("Width = %v, want %v", tt.scenario.Width, tt.wantWidth)
				}
			}
		})
	}
}

func TestStepBuilders(t *testing.T) {
	t.Run("Wait", func(t *testing.T) {
		step := Wait(500 * time.Millisecond)
		if step.Type != StepWait {
			t.Errorf("Type = %v, want StepWait", step.Type)
		}
		if step.Duration != 500*time.Millisecond {
			t.Errorf("Duration = %v, want 500ms", step.Duration)
		}
	})

	t.Run("KeyWithDesc", func(t *testing.T) {
		step := KeyWithDesc("s", "Star the application")
		if step.Type != StepKey || step.Key != "s" {
			t.Errorf("got %+v, want a key step for s", step)
		}
		if step.Description != "Star the application" {
			t.Errorf("Description = %v, want 'Star the application'", step.Description)
		}
	})

	t.Run("Type", func(t *testing.T) {
		step := Type("hello world")
		if step.Type != StepTypeText {
			t.Errorf("Type = %v, want StepTypeText", step.Type)
		}
		if step.Text != "hello world" {
			t.Errorf("Text = %v, want 'hello world'", step.Text)
		}
	})

	t.Run("Flash", func(t *testing.T) {
		step := Flash("Saved", ui.FlashSuccess)
		if step.Type != StepFlash || step.FlashText != "Saved" || step.FlashType != ui.FlashSuccess {
			t.Errorf("got %+v", step)
		}
	})

	t.Run("Incoming", func(t *testing.T) {
		from := models.Sender{ID: "s1", Name: "Priya"}
		step := Incoming("app-1", from, "hello")
		if step.Type != StepIncoming || step.ApplicationID != "app-1" || step.From != from || step.Text != "hello" {
			t.Errorf("got %+v", step)
		}
	})
}

func TestDefaultSetup(t *testing.T) {
	setup := DefaultSetup()

	if !setup.Capability.IsAdminOrAdvisor() {
		t.Errorf("default role = %v, want an advisor", setup.Capability.Role)
	}
	if setup.StudentID != "" {
		t.Errorf("StudentID = %q, want empty", setup.StudentID)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "Name",
		Message: "is required",
	}

	expected := "validation error: Name: is required"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}
