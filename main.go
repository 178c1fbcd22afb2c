package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/drivegrab/drivegrab/internal/batch"
	"github.com/drivegrab/drivegrab/internal/config"
	"github.com/drivegrab/drivegrab/internal/gdrive"
	"github.com/drivegrab/drivegrab/internal/platform"
	"github.com/drivegrab/drivegrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.drivegrab.app"
	AppName = "Drive Bulk Downloader"

	WindowWidth  = 620
	WindowHeight = 460
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		fmt.Printf("failed to ensure output dir: %v\n", err)
	}

	client := gdrive.NewClient()
	client.SetQuiet(settings.GetQuietMode())
	client.SetFuzzy(settings.GetFuzzyMatching())

	runner := batch.NewRunner(client)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, runner, client, settings)

	// Show and run
	myWindow.ShowAndRun()
}
