package model

// RunState represents where a batch run currently is in its strictly linear
// lifecycle. There are no retry or resume transitions.
type RunState string

const (
	// RunStateIdle means no run has started yet
	RunStateIdle RunState = "Idle"

	// RunStateValidating means preconditions are being checked
	RunStateValidating RunState = "Validating"

	// RunStateReadingList means the links file is being read and trimmed
	RunStateReadingList RunState = "ReadingList"

	// RunStateDownloading means the sequential download loop is active
	RunStateDownloading RunState = "Downloading"

	// RunStateFinished means the loop completed, regardless of per-URL failures
	RunStateFinished RunState = "Finished"

	// RunStateAborted means a precondition failed before any download started
	RunStateAborted RunState = "Aborted"
)

// String returns the string representation of RunState
func (rs RunState) String() string {
	return string(rs)
}

// IsTerminal returns true if the run is in a finished state
func (rs RunState) IsTerminal() bool {
	return rs == RunStateFinished || rs == RunStateAborted
}
