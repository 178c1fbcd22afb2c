package ui

// Package ui contains the Fyne-based desktop user interface: the batch form
// with its two path fields, the leveled log panel, and the settings dialog.
// It wires user interactions to the batch runner and marshals worker-side
// log appends onto the UI thread.
