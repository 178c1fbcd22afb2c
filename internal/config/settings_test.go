package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestLinksFile(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Never set means empty
	if settings.GetLinksFile() != "" {
		t.Errorf("Expected empty links file path, got %s", settings.GetLinksFile())
	}

	// Test setting custom value
	customPath := "/home/user/links.txt"
	settings.SetLinksFile(customPath)

	if settings.GetLinksFile() != customPath {
		t.Errorf("Expected links file %s, got %s", customPath, settings.GetLinksFile())
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetOutputDirectory()
	if dir == "" {
		t.Error("Output directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetOutputDirectory(customDir)

	retrievedDir := settings.GetOutputDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, retrievedDir)
	}
}

func TestQuietMode(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if settings.GetQuietMode() != DefaultQuietMode {
		t.Errorf("Expected default quiet mode %v, got %v", DefaultQuietMode, settings.GetQuietMode())
	}

	// Test setting custom value
	settings.SetQuietMode(true)
	if !settings.GetQuietMode() {
		t.Error("Expected quiet mode to be enabled")
	}
}

func TestFuzzyMatching(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if settings.GetFuzzyMatching() != DefaultFuzzyMatching {
		t.Errorf("Expected default fuzzy matching %v, got %v", DefaultFuzzyMatching, settings.GetFuzzyMatching())
	}

	// Test setting custom value
	settings.SetFuzzyMatching(false)
	if settings.GetFuzzyMatching() {
		t.Error("Expected fuzzy matching to be disabled")
	}
}
