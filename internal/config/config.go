package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/zhubert/studydesk/internal/errors"
)

// Environment variables that override values from the config file. They are
// never written back by Save.
const (
	EnvAPIURL  = "STUDYDESK_API_URL"
	EnvToken   = "STUDYDESK_TOKEN"
	EnvStudent = "STUDYDESK_STUDENT"
)

// DefaultAPIURL is used when neither the file nor the environment names a backend.
const DefaultAPIURL = "http://localhost:5000"

const maxRecentStudents = 10

// Config holds the application configuration
type Config struct {
	APIBaseURL           string   `json:"api_base_url,omitempty"`
	Token                string   `json:"token,omitempty"`
	StudentID            string   `json:"student_id,omitempty"`            // Default student scope for advisors
	DownloadDir          string   `json:"download_dir,omitempty"`          // Where downloaded documents are saved
	NotificationsEnabled bool     `json:"notifications_enabled,omitempty"` // Desktop notifications on status changes
	Theme                string   `json:"theme,omitempty"`
	StatusPresetsPath    string   `json:"status_presets_path,omitempty"` // Optional YAML file of status presets
	RecentStudents       []string `json:"recent_students,omitempty"`
	LastSeenVersion      string   `json:"last_seen_version,omitempty"` // Release whose notes were last shown

	// Values from the environment take precedence over the file.
	envAPIURL  string
	envToken   string
	envStudent string

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".studydesk"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from ~/.studydesk/config.json, or returns a fresh one
// if the file doesn't exist. A .env file in the working directory is loaded
// first so its variables can override the file.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("home directory", err)
	}
	_ = godotenv.Load()
	return LoadFrom(path)
}

// LoadFrom reads the config at path and applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}

	// Must happen before Validate(), which only reads.
	cfg.ensureInitialized()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureInitialized fills nil slices. Not thread-safe; only called from
// LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.RecentStudents == nil {
		c.RecentStudents = []string{}
	}
}

func (c *Config) applyEnv() {
	c.envAPIURL = strings.TrimSpace(os.Getenv(EnvAPIURL))
	c.envToken = strings.TrimSpace(os.Getenv(EnvToken))
	c.envStudent = strings.TrimSpace(os.Getenv(EnvStudent))
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, raw := range []string{c.APIBaseURL, c.envAPIURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.ConfigInvalid("api base URL must be an http(s) URL: " + raw)
		}
	}

	seen := make(map[string]bool)
	for _, id := range c.RecentStudents {
		if id == "" {
			return errors.ConfigInvalid("empty student id in recent students")
		}
		if seen[id] {
			return errors.ConfigInvalid("duplicate recent student: " + id)
		}
		seen[id] = true
	}
	return nil
}

// Save writes the config to disk. Environment overrides are not persisted.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0700); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	// The file can carry a bearer token.
	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.filePath
}

// GetAPIURL returns the backend base URL, preferring the environment.
func (c *Config) GetAPIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.envAPIURL != "":
		return c.envAPIURL
	case c.APIBaseURL != "":
		return c.APIBaseURL
	}
	return DefaultAPIURL
}

// SetAPIURL sets the persisted backend base URL.
func (c *Config) SetAPIURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIBaseURL = u
}

// GetToken returns the bearer token, preferring the environment.
func (c *Config) GetToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.envToken != "" {
		return c.envToken
	}
	return c.Token
}

// SetToken sets the persisted bearer token.
func (c *Config) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Token = token
}

// GetStudentID returns the default student scope, preferring the environment.
func (c *Config) GetStudentID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.envStudent != "" {
		return c.envStudent
	}
	return c.StudentID
}

// GetDownloadDir returns where downloads go, falling back to ~/Downloads.
func (c *Config) GetDownloadDir() string {
	c.mu.RLock()
	dir := c.DownloadDir
	c.mu.RUnlock()
	if dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Downloads")
	}
	return "."
}

// SetDownloadDir sets the download directory
func (c *Config) SetDownloadDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DownloadDir = dir
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetLastSeenVersion returns the release whose notes were last dismissed
func (c *Config) GetLastSeenVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSeenVersion
}

func (c *Config) SetLastSeenVersion(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSeenVersion = v
}

// AddRecentStudent moves id to the front of the recent list, capping its length.
func (c *Config) AddRecentStudent(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []string{id}
	for _, s := range c.RecentStudents {
		if s != id {
			out = append(out, s)
		}
	}
	if len(out) > maxRecentStudents {
		out = out[:maxRecentStudents]
	}
	c.RecentStudents = out
}

// GetRecentStudents returns a copy of the recent students list
func (c *Config) GetRecentStudents() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.RecentStudents))
	copy(out, c.RecentStudents)
	return out
}

// ClearRecentStudents forgets every recently opened student and reports how many there were
func (c *Config) ClearRecentStudents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.RecentStudents)
	c.RecentStudents = []string{}
	return n
}
