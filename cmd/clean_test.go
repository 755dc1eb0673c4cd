package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"uppercase YES", "YES\n", true},
		{"mixed case Yes", "Yes\n", true},
		{"lowercase n", "n\n", false},
		{"lowercase no", "no\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
		{"yes with spaces", "  yes  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.input)
			result := confirm(reader, io.Discard, "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	// Test with empty reader (simulates EOF)
	reader := strings.NewReader("")
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(EOF) = %v, want false", result)
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	// Test with a reader that returns an error
	reader := &errorReader{}
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(error) = %v, want false", result)
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func TestConfirm_WritesPrompt(t *testing.T) {
	var out bytes.Buffer
	confirm(strings.NewReader("n\n"), &out, "Really?")
	if out.String() != "Really? [y/N]: " {
		t.Errorf("prompt = %q", out.String())
	}
}

func withSkipConfirm(t *testing.T, v bool) {
	t.Helper()
	orig := skipConfirm
	t.Cleanup(func() { skipConfirm = orig })
	skipConfirm = v
}

func TestRunClean_Aborted(t *testing.T) {
	withSkipConfirm(t, false)
	cfg := testConfig(t)
	cfg.AddRecentStudent("s1")

	var out bytes.Buffer
	if err := runCleanWithReader(cfg, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runCleanWithReader() error = %v", err)
	}
	if !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("expected abort message, got %q", out.String())
	}
	if len(cfg.GetRecentStudents()) != 1 {
		t.Error("recent students should survive an aborted clean")
	}
}

func TestRunClean_ForgetsRecentStudents(t *testing.T) {
	withSkipConfirm(t, true)
	cfg := testConfig(t)
	cfg.AddRecentStudent("s1")
	cfg.AddRecentStudent("s2")

	var out bytes.Buffer
	if err := runCleanWithReader(cfg, strings.NewReader(""), &out); err != nil {
		t.Fatalf("runCleanWithReader() error = %v", err)
	}
	if !strings.Contains(out.String(), "2 recent student(s) forgotten") {
		t.Errorf("unexpected output %q", out.String())
	}
	if len(cfg.GetRecentStudents()) != 0 {
		t.Error("recent students should be cleared")
	}
}
