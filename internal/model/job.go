package model

import "fmt"

// Outcome classifies how a single download attempt ended. The set is closed
// on purpose: OutcomeFailed is the bottom case for anything the more
// specific outcomes do not cover.
type Outcome string

const (
	// OutcomePending means the job has not been attempted yet
	OutcomePending Outcome = "Pending"

	// OutcomeSuccess means the file was downloaded and found on disk
	OutcomeSuccess Outcome = "Success"

	// OutcomeMalformedURL means the URL could not be interpreted at all
	OutcomeMalformedURL Outcome = "MalformedURL"

	// OutcomeNetworkError means the transfer failed at the transport level
	OutcomeNetworkError Outcome = "NetworkError"

	// OutcomeFailed covers every other failure
	OutcomeFailed Outcome = "Failed"
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	return string(o)
}

// IsFailure returns true for any non-success terminal outcome
func (o Outcome) IsFailure() bool {
	return o == OutcomeMalformedURL || o == OutcomeNetworkError || o == OutcomeFailed
}

// DownloadJob is the ephemeral record for one URL in a batch run. It exists
// for the duration of a loop iteration and is not persisted.
type DownloadJob struct {
	Index         int // 1-based position in the links file
	Total         int
	RawURL        string
	NormalizedURL string
	Outcome       Outcome
	Err           error  // set for failure outcomes
	OutputPath    string // set on success
}

// Label returns the "[i/total]" progress marker used in log messages
func (j *DownloadJob) Label() string {
	return fmt.Sprintf("[%d/%d]", j.Index, j.Total)
}
