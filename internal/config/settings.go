package config

import (
	"fyne.io/fyne/v2"

	"github.com/drivegrab/drivegrab/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyLinksFile     = "links_file_path"
	KeyOutputDir     = "output_directory"
	KeyQuietMode     = "quiet_mode"
	KeyFuzzyMatching = "fuzzy_matching"
)

// Default values
const (
	DefaultQuietMode     = false
	DefaultFuzzyMatching = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLinksFile returns the last used links file path, empty if never set
func (s *Settings) GetLinksFile() string {
	return s.app.Preferences().String(KeyLinksFile)
}

// SetLinksFile remembers the links file path for the next session
func (s *Settings) SetLinksFile(path string) {
	s.app.Preferences().SetString(KeyLinksFile, path)
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetQuietMode returns whether the transfer client suppresses diagnostics
func (s *Settings) GetQuietMode() bool {
	return s.app.Preferences().BoolWithFallback(KeyQuietMode, DefaultQuietMode)
}

// SetQuietMode sets quiet mode
func (s *Settings) SetQuietMode(quiet bool) {
	s.app.Preferences().SetBool(KeyQuietMode, quiet)
}

// GetFuzzyMatching returns whether Drive file IDs are extracted from any
// recognized URL shape rather than only the direct-download form
func (s *Settings) GetFuzzyMatching() bool {
	return s.app.Preferences().BoolWithFallback(KeyFuzzyMatching, DefaultFuzzyMatching)
}

// SetFuzzyMatching sets fuzzy matching
func (s *Settings) SetFuzzyMatching(fuzzy bool) {
	s.app.Preferences().SetBool(KeyFuzzyMatching, fuzzy)
}
