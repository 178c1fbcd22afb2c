package gdrive

// Package gdrive implements the transfer side of the app: rewriting Google
// Drive "view" URLs into their direct-download form and fetching files over
// HTTP, including the Drive virus-scan confirmation interstitial. Errors are
// classified as malformed-URL, transport, or other so the batch runner can
// report them separately.
