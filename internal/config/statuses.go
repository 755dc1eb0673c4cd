package config

import (
	"fmt"
	"os"

	"github.com/zhubert/studydesk/internal/format"
	"gopkg.in/yaml.v3"
)

// StatusPreset is a status label and badge colour offered by the status picker.
type StatusPreset struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

type statusFile struct {
	Statuses []StatusPreset `yaml:"statuses"`
}

// DefaultStatusPresets are offered when no presets file is configured.
func DefaultStatusPresets() []StatusPreset {
	return []StatusPreset{
		{Label: "Pending", Color: "#9e9e9e"},
		{Label: "Documents Requested", Color: "#ffb300"},
		{Label: "Submitted", Color: "#1e88e5"},
		{Label: "Under Review", Color: "#8e24aa"},
		{Label: "Interview", Color: "#00acc1"},
		{Label: "Offer Received", Color: "#43a047"},
		{Label: "Visa Approved", Color: "#2e7d32"},
		{Label: "Rejected", Color: "#e53935"},
		{Label: "Withdrawn", Color: "#424242"},
	}
}

// LoadStatusPresets reads presets from a YAML file of the form
//
//	statuses:
//	  - label: Offer Received
//	    color: "#43a047"
//
// An empty path or a missing file yields the defaults.
func LoadStatusPresets(path string) ([]StatusPreset, error) {
	if path == "" {
		return DefaultStatusPresets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultStatusPresets(), nil
		}
		return nil, fmt.Errorf("failed to read status presets: %w", err)
	}

	var f statusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse status presets: %w", err)
	}
	if len(f.Statuses) == 0 {
		return DefaultStatusPresets(), nil
	}

	for i, p := range f.Statuses {
		if p.Label == "" {
			return nil, fmt.Errorf("status preset %d has no label", i+1)
		}
		if !format.ValidHex(p.Color) {
			return nil, fmt.Errorf("status preset %q has invalid color %q", p.Label, p.Color)
		}
	}
	return f.Statuses, nil
}

// StatusPresets loads the presets configured for c.
func (c *Config) StatusPresets() ([]StatusPreset, error) {
	c.mu.RLock()
	path := c.StatusPresetsPath
	c.mu.RUnlock()
	return LoadStatusPresets(path)
}
