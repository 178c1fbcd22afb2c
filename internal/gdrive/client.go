package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Transfer constants
const (
	// DirectDownloadFormat is the canonical direct-download URL built from
	// a file ID when fuzzy matching is enabled
	DirectDownloadFormat = "https://drive.google.com/uc?export=download&id=%s"

	// MaxInterstitialBody bounds how much of a Drive HTML confirmation page
	// is read while looking for the download form
	MaxInterstitialBody = 2 << 20

	// TempFilePermissions is the mode for in-flight .part files
	TempFilePermissions = 0644
)

// ErrMalformedURL marks URLs that cannot be interpreted at all: empty,
// unparseable, or carrying a non-http(s) scheme.
var ErrMalformedURL = errors.New("malformed URL")

// TransportError wraps network-level failures: dial/TLS/read errors and
// non-success HTTP statuses.
type TransportError struct {
	URL string
	Err error
}

// Error returns the error message
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client downloads files over HTTP. It is the app's external download
// collaborator: the batch runner hands it one URL at a time and classifies
// the returned error.
type Client struct {
	httpClient *http.Client

	mu    sync.RWMutex
	quiet bool
	fuzzy bool
}

// NewClient creates a new download client. No overall timeout is applied:
// Drive transfers can legitimately run for a long time and the per-request
// context carries any deadline the caller wants.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		fuzzy:      true,
	}
}

// SetQuiet controls whether transfer diagnostics are written to the
// application log
func (c *Client) SetQuiet(quiet bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quiet = quiet
}

// SetFuzzy controls whether a Drive file ID is extracted from any
// recognized URL shape and the direct-download URL rebuilt from it
func (c *Client) SetFuzzy(fuzzy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fuzzy = fuzzy
}

func (c *Client) isQuiet() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quiet
}

func (c *Client) isFuzzy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fuzzy
}

// Fetch downloads rawURL into destDir and returns the path of the written
// file. Errors are classified: ErrMalformedURL for uninterpretable URLs,
// *TransportError for network failures, anything else is unexpected.
func (c *Client) Fetch(ctx context.Context, rawURL, destDir string) (string, error) {
	target, err := c.resolveTarget(rawURL)
	if err != nil {
		return "", err
	}

	resp, err := c.get(ctx, target)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Large Drive files answer with an HTML virus-scan confirmation page
	// instead of the file. Extract the confirmation form and retry once.
	if isDriveInterstitial(resp) {
		confirmURL, err := parseInterstitial(resp)
		if err != nil {
			return "", err
		}
		resp.Body.Close()

		resp, err = c.get(ctx, confirmURL)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if isDriveInterstitial(resp) {
			return "", fmt.Errorf("cannot retrieve file from %s: access may be denied or the download quota exceeded", rawURL)
		}
	}

	return c.saveBody(resp, destDir)
}

// resolveTarget validates the URL and applies fuzzy file-ID extraction
func (c *Client) resolveTarget(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty URL", ErrMalformedURL)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedURL, trimmed, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %q: URL must start with http:// or https://", ErrMalformedURL, trimmed)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrMalformedURL, trimmed)
	}

	if c.isFuzzy() {
		if id, ok := ExtractFileID(trimmed); ok {
			return fmt.Sprintf(DirectDownloadFormat, id), nil
		}
	}
	return trimmed, nil
}

// get performs one GET and classifies failures as transport errors
func (c *Client) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedURL, target, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &TransportError{URL: target, Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}
	return resp, nil
}

// Drive confirmation form markup
var (
	formActionRe  = regexp.MustCompile(`<form[^>]+action="([^"]+)"`)
	hiddenInputRe = regexp.MustCompile(`<input type="hidden" name="([^"]+)" value="([^"]*)"`)
)

// isDriveInterstitial reports whether the response is the Drive HTML
// confirmation page rather than file content
func isDriveInterstitial(resp *http.Response) bool {
	if !strings.Contains(resp.Request.URL.Host, "google.com") {
		return false
	}
	contentType := resp.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "text/html")
}

// parseInterstitial extracts the confirmation form from the virus-scan page
// and rebuilds the confirmed download URL
func parseInterstitial(resp *http.Response) (string, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxInterstitialBody))
	if err != nil {
		return "", &TransportError{URL: resp.Request.URL.String(), Err: err}
	}

	page := string(body)
	actionMatch := formActionRe.FindStringSubmatch(page)
	if actionMatch == nil {
		return "", fmt.Errorf("cannot retrieve file from %s: no download form on confirmation page", resp.Request.URL)
	}

	action, err := url.Parse(strings.ReplaceAll(actionMatch[1], "&amp;", "&"))
	if err != nil {
		return "", fmt.Errorf("invalid confirmation form action: %w", err)
	}
	confirmURL := resp.Request.URL.ResolveReference(action)

	query := confirmURL.Query()
	for _, m := range hiddenInputRe.FindAllStringSubmatch(page, -1) {
		query.Set(m[1], m[2])
	}
	confirmURL.RawQuery = query.Encode()

	return confirmURL.String(), nil
}

// saveBody streams the response body into destDir via a temp file
func (c *Client) saveBody(resp *http.Response, destDir string) (string, error) {
	filename := deriveFilename(resp)
	outputPath := filepath.Join(destDir, filename)
	tempPath := outputPath + ".part-" + uuid.NewString()[:8]

	out, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, TempFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		out.Close()
		os.Remove(tempPath)
		return "", &TransportError{URL: resp.Request.URL.String(), Err: err}
	}

	if err := out.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to finalize %s: %w", outputPath, err)
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	if !c.isQuiet() {
		log.Printf("downloaded %d bytes to %s", written, outputPath)
	}
	return outputPath, nil
}

// deriveFilename picks an output name: Content-Disposition first, then the
// URL path, then a generated fallback
func deriveFilename(resp *http.Response) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := filepath.Base(params["filename"]); name != "" && name != "." && name != "/" {
				return name
			}
		}
	}

	base := path.Base(resp.Request.URL.Path)
	if base != "" && base != "." && base != "/" && base != "uc" && base != "download" {
		return base
	}

	if id := resp.Request.URL.Query().Get("id"); id != "" {
		return "drive-" + id
	}
	return "download-" + uuid.NewString()[:8]
}
