package batch

// Package batch implements the batch-download control flow: precondition
// checks, links-file parsing, and the strictly sequential download loop.
// Per-URL failures never abort a run; only precondition failures do, and
// every failure path produces exactly one log entry.
