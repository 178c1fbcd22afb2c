package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drivegrab/drivegrab/internal/gdrive"
	"github.com/drivegrab/drivegrab/internal/model"
)

// fakeFetcher records fetch calls and fails URLs on demand
type fakeFetcher struct {
	calls    []string
	failWith map[string]error
	skipFile bool // return a path without creating the file
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL, destDir string) (string, error) {
	f.calls = append(f.calls, rawURL)

	if err, ok := f.failWith[rawURL]; ok {
		return "", err
	}

	name := path.Base(rawURL)
	if name == "" || name == "." || name == "/" {
		name = "download"
	}
	outputPath := filepath.Join(destDir, name)
	if !f.skipFile {
		if err := os.WriteFile(outputPath, []byte("data"), 0644); err != nil {
			return "", err
		}
	}
	return outputPath, nil
}

// logRecorder captures run output for assertions
type logRecorder struct {
	entries []model.LogEntry
}

func (lr *logRecorder) record(level model.LogLevel, message string) {
	lr.entries = append(lr.entries, model.NewLogEntry(level, message))
}

func (lr *logRecorder) countLevel(level model.LogLevel) int {
	n := 0
	for _, e := range lr.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (lr *logRecorder) countMessage(substr string) int {
	n := 0
	for _, e := range lr.entries {
		if strings.Contains(e.Message, substr) {
			n++
		}
	}
	return n
}

func writeLinksFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatalf("Failed to write links file: %v", err)
	}
	return path
}

func newTestRunner(fetcher Fetcher) (*Runner, *logRecorder) {
	runner := NewRunner(fetcher)
	recorder := &logRecorder{}
	runner.SetLogFunc(recorder.record)
	return runner, recorder
}

func TestRun_AttemptsAllURLsInOrder(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner, recorder := newTestRunner(fetcher)

	links := writeLinksFile(t, "https://example.com/a.zip\nhttps://example.com/b.zip\nhttps://example.com/c.zip\n")
	summary := runner.Run(context.Background(), links, t.TempDir())

	expected := []string{
		"https://example.com/a.zip",
		"https://example.com/b.zip",
		"https://example.com/c.zip",
	}
	if len(fetcher.calls) != len(expected) {
		t.Fatalf("Expected %d fetch calls, got %d", len(expected), len(fetcher.calls))
	}
	for i, url := range expected {
		if fetcher.calls[i] != url {
			t.Errorf("Call %d: expected %s, got %s", i, url, fetcher.calls[i])
		}
	}

	if summary.Attempted != 3 || summary.Succeeded != 3 || summary.Failed != 0 {
		t.Errorf("Expected summary 3/3/0, got %d/%d/%d", summary.Attempted, summary.Succeeded, summary.Failed)
	}
	if summary.State != model.RunStateFinished {
		t.Errorf("Expected state Finished, got %s", summary.State)
	}

	if recorder.countMessage("Finished downloading process") != 1 {
		t.Error("Expected exactly one finished message")
	}
	if recorder.countMessage("Download completed successfully") != 3 {
		t.Errorf("Expected 3 completion messages, got %d", recorder.countMessage("Download completed successfully"))
	}
}

func TestRun_TrimsAndSkipsBlankLines(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner, _ := newTestRunner(fetcher)

	links := writeLinksFile(t, "\n  https://example.com/a.zip  \n\n\t\nhttps://example.com/b.zip\r\n\n")
	summary := runner.Run(context.Background(), links, t.TempDir())

	if summary.Attempted != 2 {
		t.Fatalf("Expected 2 attempts, got %d", summary.Attempted)
	}
	if fetcher.calls[0] != "https://example.com/a.zip" || fetcher.calls[1] != "https://example.com/b.zip" {
		t.Errorf("Expected trimmed URLs in order, got %v", fetcher.calls)
	}
}

func TestRun_EmptyLinksFile(t *testing.T) {
	tests := []string{"", "\n\n\n", "   \n\t\n  "}

	for _, content := range tests {
		fetcher := &fakeFetcher{}
		runner, recorder := newTestRunner(fetcher)

		summary := runner.Run(context.Background(), writeLinksFile(t, content), t.TempDir())

		if len(fetcher.calls) != 0 {
			t.Errorf("Expected zero download attempts, got %d", len(fetcher.calls))
		}
		if recorder.countLevel(model.LevelWarning) != 1 {
			t.Errorf("Expected one WARNING, got %d", recorder.countLevel(model.LevelWarning))
		}
		if summary.State != model.RunStateAborted {
			t.Errorf("Expected state Aborted, got %s", summary.State)
		}
		if recorder.countMessage("Finished downloading process") != 0 {
			t.Error("Finished message must not be logged for an aborted run")
		}
	}
}

func TestRun_MissingLinksFile(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner, recorder := newTestRunner(fetcher)

	summary := runner.Run(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), t.TempDir())

	if len(fetcher.calls) != 0 {
		t.Errorf("Expected zero download attempts, got %d", len(fetcher.calls))
	}
	if recorder.countLevel(model.LevelError) != 1 {
		t.Errorf("Expected exactly one ERROR, got %d", recorder.countLevel(model.LevelError))
	}
	if recorder.countMessage("does not exist") != 1 {
		t.Error("Expected a missing-file error message")
	}
	if summary.State != model.RunStateAborted {
		t.Errorf("Expected state Aborted, got %s", summary.State)
	}
}

func TestRun_OutputDirCreationFails(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner, recorder := newTestRunner(fetcher)

	// A regular file where the output directory should go
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}

	links := writeLinksFile(t, "https://example.com/a.zip\n")
	summary := runner.Run(context.Background(), links, filepath.Join(blocker, "out"))

	if len(fetcher.calls) != 0 {
		t.Errorf("Expected zero download attempts, got %d", len(fetcher.calls))
	}
	if len(recorder.entries) != 1 {
		t.Fatalf("Expected exactly one log entry, got %d", len(recorder.entries))
	}
	if recorder.entries[0].Level != model.LevelError {
		t.Errorf("Expected ERROR entry, got %s", recorder.entries[0].Level)
	}
	if summary.State != model.RunStateAborted {
		t.Errorf("Expected state Aborted, got %s", summary.State)
	}
}

func TestRun_UnreadableLinksFile(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner, recorder := newTestRunner(fetcher)

	// Invalid UTF-8 bytes
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	summary := runner.Run(context.Background(), path, t.TempDir())

	if len(fetcher.calls) != 0 {
		t.Errorf("Expected zero download attempts, got %d", len(fetcher.calls))
	}
	if recorder.countMessage("Failed to read file") != 1 {
		t.Error("Expected a read-failure error message")
	}
	if summary.State != model.RunStateAborted {
		t.Errorf("Expected state Aborted, got %s", summary.State)
	}
}

func TestRun_MalformedURLContinues(t *testing.T) {
	badURL := "not-a-url"
	fetcher := &fakeFetcher{
		failWith: map[string]error{
			badURL: fmt.Errorf("%w: %q", gdrive.ErrMalformedURL, badURL),
		},
	}
	runner, recorder := newTestRunner(fetcher)

	links := writeLinksFile(t, "https://example.com/a.zip\nnot-a-url\nhttps://example.com/c.zip\n")
	summary := runner.Run(context.Background(), links, t.TempDir())

	if summary.Attempted != 3 {
		t.Errorf("Expected all 3 URLs attempted, got %d", summary.Attempted)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("Expected 2 succeeded / 1 failed, got %d/%d", summary.Succeeded, summary.Failed)
	}
	if recorder.countMessage("Invalid URL format") != 1 {
		t.Errorf("Expected one invalid-URL error, got %d", recorder.countMessage("Invalid URL format"))
	}
	if recorder.countMessage("Finished downloading process") != 1 {
		t.Error("Expected exactly one finished message")
	}
}

func TestRun_ErrorClassification(t *testing.T) {
	transportURL := "https://example.com/transport.zip"
	weirdURL := "https://example.com/weird.zip"
	fetcher := &fakeFetcher{
		failWith: map[string]error{
			transportURL: &gdrive.TransportError{URL: transportURL, Err: errors.New("connection refused")},
			weirdURL:     errors.New("disk exploded"),
		},
	}
	runner, recorder := newTestRunner(fetcher)

	links := writeLinksFile(t, transportURL+"\n"+weirdURL+"\n")
	summary := runner.Run(context.Background(), links, t.TempDir())

	if summary.Failed != 2 {
		t.Errorf("Expected 2 failures, got %d", summary.Failed)
	}
	if recorder.countMessage("Network error while downloading") != 1 {
		t.Error("Expected one network error message")
	}
	if recorder.countMessage("Unexpected error while downloading") != 1 {
		t.Error("Expected one unexpected error message")
	}
}

func TestRun_NormalizesDriveURLs(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner, recorder := newTestRunner(fetcher)

	links := writeLinksFile(t, "https://drive.google.com/file/d/ABC123/view\n")
	runner.Run(context.Background(), links, t.TempDir())

	if len(fetcher.calls) != 1 {
		t.Fatalf("Expected 1 fetch call, got %d", len(fetcher.calls))
	}
	if fetcher.calls[0] != "https://drive.google.com/uc?id=ABC123" {
		t.Errorf("Expected normalized URL, got %s", fetcher.calls[0])
	}
	if recorder.countMessage("Downloading [1/1]: https://drive.google.com/uc?id=ABC123") != 1 {
		t.Error("Expected the normalized URL in the progress message")
	}
}

func TestRun_MissingOutputFileIsFailure(t *testing.T) {
	fetcher := &fakeFetcher{skipFile: true}
	runner, recorder := newTestRunner(fetcher)

	links := writeLinksFile(t, "https://example.com/a.zip\n")
	summary := runner.Run(context.Background(), links, t.TempDir())

	if summary.Succeeded != 0 || summary.Failed != 1 {
		t.Errorf("Expected 0 succeeded / 1 failed, got %d/%d", summary.Succeeded, summary.Failed)
	}
	if recorder.countMessage("Unexpected error while downloading") != 1 {
		t.Error("Expected the missing file to be reported as an unexpected error")
	}
}

func TestRun_SummaryHasRunID(t *testing.T) {
	runner, _ := newTestRunner(&fakeFetcher{})

	links := writeLinksFile(t, "https://example.com/a.zip\n")
	summary := runner.Run(context.Background(), links, t.TempDir())

	if !strings.HasPrefix(summary.RunID, "run-") {
		t.Errorf("Expected run ID with 'run-' prefix, got %s", summary.RunID)
	}
	if len(summary.RunID) != len("run-")+36 {
		t.Errorf("Expected run ID length %d, got %d", len("run-")+36, len(summary.RunID))
	}
}

func TestReadLinks(t *testing.T) {
	tests := []struct {
		content  string
		expected []string
	}{
		{"a\nb\nc", []string{"a", "b", "c"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"  a  \n\n  b\t\n", []string{"a", "b"}},
		{"a\na\n", []string{"a", "a"}}, // no deduplication
		{"", nil},
	}

	for _, test := range tests {
		path := writeLinksFile(t, test.content)
		urls, err := readLinks(path)
		if err != nil {
			t.Fatalf("readLinks(%q) error: %v", test.content, err)
		}
		if len(urls) != len(test.expected) {
			t.Errorf("readLinks(%q) = %v, expected %v", test.content, urls, test.expected)
			continue
		}
		for i := range urls {
			if urls[i] != test.expected[i] {
				t.Errorf("readLinks(%q)[%d] = %q, expected %q", test.content, i, urls[i], test.expected[i])
			}
		}
	}
}
