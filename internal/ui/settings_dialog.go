package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/drivegrab/drivegrab/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	outputDirEntry *widget.Entry
	quietCheck     *widget.Check
	fuzzyCheck     *widget.Check
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs
// after the settings have been persisted.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, onSaved func()) {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Default output directory selection
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Default output directory")

	browseDirBtn := widget.NewButton(BrowseButtonLabel, sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// Transfer options
	sd.quietCheck = widget.NewCheck("Quiet mode (suppress transfer diagnostics)", nil)
	sd.fuzzyCheck = widget.NewCheck("Fuzzy matching (accept any Drive link shape)", nil)

	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Default Output Directory:"),
		outputDirRow,

		widget.NewSeparator(),
		widget.NewLabel("Transfer Options"),
		widget.NewSeparator(),

		sd.quietCheck,
		sd.fuzzyCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.quietCheck.SetChecked(sd.settings.GetQuietMode())
	sd.fuzzyCheck.SetChecked(sd.settings.GetFuzzyMatching())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.outputDirEntry.Text != "" {
		sd.settings.SetOutputDirectory(sd.outputDirEntry.Text)
	}
	sd.settings.SetQuietMode(sd.quietCheck.Checked)
	sd.settings.SetFuzzyMatching(sd.fuzzyCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
