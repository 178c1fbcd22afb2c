package ui

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/drivegrab/drivegrab/internal/batch"
	"github.com/drivegrab/drivegrab/internal/config"
	"github.com/drivegrab/drivegrab/internal/gdrive"
	"github.com/drivegrab/drivegrab/internal/model"
	"github.com/drivegrab/drivegrab/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window
	app    fyne.App

	linksEntry    *widget.Entry
	outputEntry   *widget.Entry
	startBtn      *widget.Button
	openFolderBtn *widget.Button
	logPanel      *LogPanel

	runner   *batch.Runner
	client   *gdrive.Client
	settings *config.Settings

	// At most one batch run may be active at a time
	runMu   sync.Mutex
	running bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, runner *batch.Runner, client *gdrive.Client, settings *config.Settings) *RootUI {
	ui := &RootUI{
		window:   window,
		app:      app,
		runner:   runner,
		client:   client,
		settings: settings,
	}

	// Every line the runner logs lands in the panel
	ui.runner.SetLogFunc(ui.onLogMessage)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Links file row
	ui.linksEntry = widget.NewEntry()
	ui.linksEntry.SetPlaceHolder(LinksPlaceholder)
	ui.linksEntry.SetText(ui.settings.GetLinksFile())
	browseLinksBtn := widget.NewButton(BrowseButtonLabel, ui.onBrowseLinksFile)
	linksRow := container.NewBorder(nil, nil, widget.NewLabel(LinksFieldLabel), browseLinksBtn, ui.linksEntry)

	// Output directory row
	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetPlaceHolder(OutputPlaceholder)
	ui.outputEntry.SetText(ui.settings.GetOutputDirectory())
	browseOutputBtn := widget.NewButton(BrowseButtonLabel, ui.onBrowseOutputDir)
	outputRow := container.NewBorder(nil, nil, widget.NewLabel(OutputFieldLabel), browseOutputBtn, ui.outputEntry)

	topPanel := container.NewVBox(linksRow, outputRow)

	// Log panel
	ui.logPanel = NewLogPanel()

	// Action row
	ui.startBtn = widget.NewButton(StartButtonLabel, ui.onStartClick)
	ui.startBtn.Importance = widget.HighImportance
	ui.openFolderBtn = widget.NewButton(OpenFolderButtonLabel, ui.onOpenFolder)
	actionRow := container.NewHBox(layout.NewSpacer(), ui.startBtn, ui.openFolderBtn, layout.NewSpacer())

	content := container.NewBorder(
		topPanel,             // top
		actionRow,            // bottom
		nil,                  // left
		nil,                  // right
		ui.logPanel.Widget(), // center
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(SettingsMenuLabel, ui.onShowSettings)

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(FileMenuLabel, settingsItem),
	)

	ui.window.SetMainMenu(mainMenu)
}

// onBrowseLinksFile opens the links-file chooser. Cancellation leaves the
// prior value unchanged.
func (ui *RootUI) onBrowseLinksFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return // cancelled
		}
		defer reader.Close()

		path := reader.URI().Path()
		ui.linksEntry.SetText(path)
		ui.settings.SetLinksFile(path)
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter(LinksFileExtensions))
	fd.Show()
}

// onBrowseOutputDir opens the output-directory chooser. Cancellation leaves
// the prior value unchanged.
func (ui *RootUI) onBrowseOutputDir() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return // cancelled
		}

		dir := uri.Path()
		ui.outputEntry.SetText(dir)
		ui.settings.SetOutputDirectory(dir)
	}, ui.window)
}

// onStartClick validates the form and launches the batch run on a worker
// goroutine so the form stays responsive
func (ui *RootUI) onStartClick() {
	linksPath := strings.TrimSpace(ui.linksEntry.Text)
	outputDir := strings.TrimSpace(ui.outputEntry.Text)

	if linksPath == "" || outputDir == "" {
		dialog.ShowError(errors.New(MissingSelectionsMessage), ui.window)
		return
	}

	ui.runMu.Lock()
	if ui.running {
		ui.runMu.Unlock()
		return
	}
	ui.running = true
	ui.runMu.Unlock()

	// Clear previous logs and guard against a second run
	ui.logPanel.Clear()
	ui.startBtn.Disable()

	ui.settings.SetLinksFile(linksPath)
	ui.settings.SetOutputDirectory(outputDir)

	go func() {
		summary := ui.runner.Run(context.Background(), linksPath, outputDir)
		log.Printf("batch run %s: state=%s attempted=%d succeeded=%d failed=%d",
			summary.RunID, summary.State, summary.Attempted, summary.Succeeded, summary.Failed)

		ui.runMu.Lock()
		ui.running = false
		ui.runMu.Unlock()

		fyne.Do(func() {
			ui.startBtn.Enable()
		})
	}()
}

// onLogMessage is the runner's log callback; called from the worker goroutine
func (ui *RootUI) onLogMessage(level model.LogLevel, message string) {
	ui.logPanel.Append(level, message)
}

// onOpenFolder reveals the output directory in the system file manager
func (ui *RootUI) onOpenFolder() {
	dir := strings.TrimSpace(ui.outputEntry.Text)
	if dir == "" {
		widget.ShowPopUp(widget.NewLabel(NoOutputFolderMessage), ui.window.Canvas())
		return
	}

	if err := platform.OpenFolderInManager(dir); err != nil {
		log.Printf("Error opening folder %s: %v", dir, err)
		dialog.ShowError(err, ui.window)
	}
}

// onShowSettings shows the settings dialog and applies saved transfer
// options to the download client
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, func() {
		ui.client.SetQuiet(ui.settings.GetQuietMode())
		ui.client.SetFuzzy(ui.settings.GetFuzzyMatching())

		// Pre-fill the output field when it is still empty
		if strings.TrimSpace(ui.outputEntry.Text) == "" {
			ui.outputEntry.SetText(ui.settings.GetOutputDirectory())
		}
	})
}
