package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statuses.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStatusPresets_Defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		got, err := LoadStatusPresets(path)
		if err != nil {
			t.Fatalf("LoadStatusPresets(%q) error: %v", path, err)
		}
		if len(got) != len(DefaultStatusPresets()) {
			t.Errorf("expected defaults for %q, got %d presets", path, len(got))
		}
	}
}

func TestLoadStatusPresets_File(t *testing.T) {
	path := writePresets(t, `statuses:
  - label: Applied
    color: "#112233"
  - label: Accepted
    color: "#00ff00"
`)
	got, err := LoadStatusPresets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(got))
	}
	if got[1].Label != "Accepted" || got[1].Color != "#00ff00" {
		t.Errorf("unexpected preset: %+v", got[1])
	}
}

func TestLoadStatusPresets_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "statuses: [\n"},
		{"missing label", "statuses:\n  - color: \"#000000\"\n"},
		{"bad color", "statuses:\n  - label: X\n    color: red\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadStatusPresets(writePresets(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultStatusPresets_ValidColors(t *testing.T) {
	for _, p := range DefaultStatusPresets() {
		if p.Label == "" || len(p.Color) != 7 || p.Color[0] != '#' {
			t.Errorf("bad default preset %+v", p)
		}
	}
}

func TestConfig_StatusPresets(t *testing.T) {
	path := writePresets(t, "statuses:\n  - label: Only\n    color: \"#abcdef\"\n")
	cfg := &Config{StatusPresetsPath: path}
	got, err := cfg.StatusPresets()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Label != "Only" {
		t.Errorf("unexpected presets %v", got)
	}
}
