package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/studydesk/internal/app"
	"github.com/zhubert/studydesk/internal/config"
	"github.com/zhubert/studydesk/internal/demo"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// CommandTimeout bounds how long a command may run before its result is
	// dropped. Timers such as the flash tick never finish in time, which
	// keeps recordings from waiting on them.
	CommandTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false, // Don't capture every step by default for cleaner demos
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		CommandTimeout:   250 * time.Millisecond,
	}
}

// maxCommandDepth stops commands that keep scheduling more commands
const maxCommandDepth = 32

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config  ExecutorConfig
	model   *app.Model
	backend *demo.Backend
	frames  []Frame
	tmpDir  string

	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultExecutorConfig().CommandTimeout
	}
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Cleanup removes the scratch config directory.
func (e *Executor) Cleanup() {
	if e.tmpDir != "" {
		_ = os.RemoveAll(e.tmpDir)
		e.tmpDir = ""
	}
}

// Model returns the app model being driven, nil before Run.
func (e *Executor) Model() *app.Model {
	return e.model
}

// Backend returns the in-memory backend behind the model, nil before Run.
func (e *Executor) Backend() *demo.Backend {
	return e.backend
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Initialize the model
	if err := e.setup(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	// Ensure cleanup is called when we're done
	defer e.Cleanup()

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	// Execute each step
	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	return e.frames, nil
}

// setup builds the backend and model for the scenario and loads the first page.
func (e *Executor) setup(scenario *Scenario) error {
	dir, err := os.MkdirTemp("", "studydesk-demo-")
	if err != nil {
		return err
	}
	e.tmpDir = dir

	// Settings changed during a demo never reach the user's real config
	cfg, err := config.LoadFrom(filepath.Join(dir, "config.json"))
	if err != nil {
		return err
	}

	setup := scenario.Setup
	e.backend = demo.NewBackend(setup.Capability)
	for _, s := range setup.Students {
		e.backend.AddStudent(s)
	}
	for _, a := range setup.Applications {
		e.backend.AddApplication(a)
	}

	e.model = app.New(cfg, e.backend, app.Options{
		Capability: setup.Capability,
		StudentID:  setup.StudentID,
		Version:    "demo",
		Now:        func() time.Time { return demo.Epoch },
	})

	e.dispatch(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	})
	e.run(e.model.Init(), 0)
	return nil
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.captureFrame(index, step.Duration)

	case StepKey:
		e.dispatch(keyPress(step.Key))
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.dispatch(keyPress(string(ch)))
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)

	case StepFlash:
		e.run(e.model.ShowFlash(step.FlashText, step.FlashType), 0)
		e.captureFrame(index, 100*time.Millisecond)

	case StepIncoming:
		e.backend.Receive(step.ApplicationID, step.From, step.Text)
		e.run(e.model.Reload(), 0)
		e.captureFrame(index, 300*time.Millisecond)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}

	return nil
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	frame := Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// dispatch sends msg to the model and runs whatever it asks for.
func (e *Executor) dispatch(msg tea.Msg) {
	result, cmd := e.model.Update(msg)
	e.model = result.(*app.Model)
	e.run(cmd, 0)
}

// run executes cmd the way the Bubble Tea runtime would, but synchronously,
// so each frame reflects every finished backend call.
func (e *Executor) run(cmd tea.Cmd, depth int) {
	if cmd == nil || depth > maxCommandDepth {
		return
	}
	switch msg := e.await(cmd).(type) {
	case nil, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			e.run(c, depth+1)
		}
	default:
		result, next := e.model.Update(msg)
		e.model = result.(*app.Model)
		e.run(next, depth+1)
	}
}

// await returns cmd's message, or nil when it outlives CommandTimeout.
func (e *Executor) await(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(e.config.CommandTimeout):
		return nil
	}
}

// keyPress converts a key string to a tea.KeyPressMsg.
// Duplicated from the app tests, which cannot be imported.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "escape", "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
