package ui

// UI-wide constants to avoid magic strings scattered across the codebase.

// Labels
const (
	LinksFieldLabel       = "Links file:"
	OutputFieldLabel      = "Output directory:"
	BrowseButtonLabel     = "Browse"
	StartButtonLabel      = "Start Download"
	OpenFolderButtonLabel = "Open Folder"

	LinksPlaceholder  = "Path to a text file with one URL per line"
	OutputPlaceholder = "Directory downloads are written to"

	FileMenuLabel     = "File"
	SettingsMenuLabel = "Settings"
)

// Messages
const (
	MissingSelectionsMessage = "Please select both the links file and output directory!"
	NoOutputFolderMessage    = "No output directory selected"
)

// Dialog and layout sizing
const (
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 260
)

// File pickers
var (
	LinksFileExtensions = []string{".txt"}
)
