package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/drivegrab/drivegrab/internal/model"
)

// LogPanel is the scrollable log area. Append is safe to call from the
// worker goroutine: the backing slice is mutex-guarded and widget updates
// are marshalled onto the UI thread via fyne.Do.
type LogPanel struct {
	list *widget.List

	mu      sync.Mutex
	entries []model.LogEntry
}

// NewLogPanel creates the log panel widget
func NewLogPanel() *LogPanel {
	lp := &LogPanel{}

	lp.list = widget.NewList(
		func() int {
			lp.mu.Lock()
			defer lp.mu.Unlock()
			return len(lp.entries)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			lp.mu.Lock()
			defer lp.mu.Unlock()
			if id >= len(lp.entries) {
				return
			}
			entry := lp.entries[id]

			label := obj.(*widget.Label)
			label.SetText(entry.String())
			switch entry.Level {
			case model.LevelError:
				label.Importance = widget.DangerImportance
			case model.LevelWarning:
				label.Importance = widget.WarningImportance
			default:
				label.Importance = widget.MediumImportance
			}
		},
	)

	return lp
}

// Widget returns the canvas object to place in the layout
func (lp *LogPanel) Widget() fyne.CanvasObject {
	return lp.list
}

// Append adds one entry and auto-scrolls to the newest line. Unknown levels
// render as INFO.
func (lp *LogPanel) Append(level model.LogLevel, message string) {
	lp.mu.Lock()
	lp.entries = append(lp.entries, model.NewLogEntry(level, message))
	lp.mu.Unlock()

	fyne.Do(func() {
		lp.list.Refresh()
		lp.list.ScrollToBottom()
	})
}

// Clear drops all entries; called at the start of each run
func (lp *LogPanel) Clear() {
	lp.mu.Lock()
	lp.entries = nil
	lp.mu.Unlock()

	fyne.Do(func() {
		lp.list.Refresh()
	})
}

// Entries returns a snapshot of the current log content
func (lp *LogPanel) Entries() []model.LogEntry {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	snapshot := make([]model.LogEntry, len(lp.entries))
	copy(snapshot, lp.entries)
	return snapshot
}
