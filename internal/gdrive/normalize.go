package gdrive

import (
	"regexp"
	"strings"
)

// DriveHost is the marker that identifies Google Drive share links
const DriveHost = "drive.google.com"

// Normalize rewrites a Google Drive "view" URL into the direct-download
// form: the "/file/d/" path segment becomes "/uc?id=" and a trailing
// "/view" segment is stripped. This is a best-effort string rewrite, not a
// full URL parse; anything that doesn't look like a Drive link passes
// through unchanged.
func Normalize(rawURL string) string {
	if !strings.Contains(rawURL, DriveHost) {
		return rawURL
	}

	fixed := strings.ReplaceAll(rawURL, "/file/d/", "/uc?id=")
	fixed = strings.ReplaceAll(fixed, "/view", "")
	return fixed
}

// fileIDPatterns covers the Drive URL shapes fuzzy matching recognizes.
// Order matters: path-based forms are tried before query parameters.
var fileIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`/document/d/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`[?&]id=([A-Za-z0-9_-]+)`),
}

// ExtractFileID pulls a Drive file ID out of any recognized URL shape.
// Returns false when the URL carries no recognizable ID.
func ExtractFileID(rawURL string) (string, bool) {
	if !strings.Contains(rawURL, DriveHost) {
		return "", false
	}

	for _, re := range fileIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}
