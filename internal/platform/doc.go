package platform

// Package platform contains OS integration glue: filesystem helpers, base
// directory resolution for packaged builds, and OS open/reveal of the output
// directory.
