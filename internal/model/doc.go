package model

// Package model defines domain data structures used across the app: log
// levels and entries, per-URL download jobs with explicit outcomes, and the
// run lifecycle enum. Structures are designed for direct rendering in the UI
// and explicit state transitions.
