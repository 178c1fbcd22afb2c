package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/drivegrab/drivegrab/internal/gdrive"
	"github.com/drivegrab/drivegrab/internal/model"
	"github.com/drivegrab/drivegrab/internal/platform"
)

// Fetcher is the external download collaborator: it transfers one URL into
// destDir and returns the path of the written file.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, destDir string) (string, error)
}

// LogFunc receives every log line a run produces. It must be safe to call
// from the worker goroutine.
type LogFunc func(level model.LogLevel, message string)

// Summary describes one completed batch run
type Summary struct {
	RunID     string
	State     model.RunState
	Attempted int
	Succeeded int
	Failed    int
}

// Runner owns the batch-download control flow. At most one run should be
// active at a time; the UI guards the start action accordingly.
type Runner struct {
	fetcher Fetcher
	baseDir string

	mu    sync.RWMutex
	logFn LogFunc
}

// NewRunner creates a new batch runner. The base working directory is
// resolved once so relative links-file paths behave consistently even when
// a packaged build runs from a temporary extraction directory.
func NewRunner(fetcher Fetcher) *Runner {
	return &Runner{
		fetcher: fetcher,
		baseDir: platform.BaseDir(),
	}
}

// SetLogFunc sets the callback receiving log lines
func (r *Runner) SetLogFunc(fn LogFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logFn = fn
}

// logf emits one log line to the callback and mirrors it to the app log
func (r *Runner) logf(level model.LogLevel, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Printf("%s - %s", level, message)

	r.mu.RLock()
	fn := r.logFn
	r.mu.RUnlock()
	if fn != nil {
		fn(level, message)
	}
}

// Run executes one batch: validates preconditions, reads the links file and
// downloads each URL in file order. The output directory is passed into
// every fetch explicitly; the process working directory is never mutated.
func (r *Runner) Run(ctx context.Context, linksPath, outputDir string) Summary {
	summary := Summary{
		RunID: "run-" + uuid.NewString(),
		State: model.RunStateValidating,
	}

	// Anchor relative paths against the stable base directory
	if !filepath.IsAbs(linksPath) {
		linksPath = filepath.Join(r.baseDir, linksPath)
	}

	info, err := os.Stat(linksPath)
	if err != nil || info.IsDir() {
		r.logf(model.LevelError, "The file '%s' does not exist!", linksPath)
		summary.State = model.RunStateAborted
		return summary
	}

	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		r.logf(model.LevelError, "Failed to create output directory '%s': %v", outputDir, err)
		summary.State = model.RunStateAborted
		return summary
	}

	summary.State = model.RunStateReadingList
	urls, err := readLinks(linksPath)
	if err != nil {
		r.logf(model.LevelError, "Failed to read file '%s': %v", linksPath, err)
		summary.State = model.RunStateAborted
		return summary
	}

	if len(urls) == 0 {
		r.logf(model.LevelWarning, "No valid URLs found in the file!")
		summary.State = model.RunStateAborted
		return summary
	}

	summary.State = model.RunStateDownloading
	r.logf(model.LevelInfo, "Started downloading process")
	r.reportFreeSpace(outputDir)

	total := len(urls)
	for i, rawURL := range urls {
		job := &model.DownloadJob{
			Index:         i + 1,
			Total:         total,
			RawURL:        rawURL,
			NormalizedURL: gdrive.Normalize(rawURL),
			Outcome:       model.OutcomePending,
		}

		r.logf(model.LevelInfo, "Downloading %s: %s", job.Label(), job.NormalizedURL)
		r.download(ctx, job, outputDir)
		summary.Attempted++

		switch job.Outcome {
		case model.OutcomeSuccess:
			summary.Succeeded++
			r.logf(model.LevelInfo, "Download completed successfully")
		case model.OutcomeMalformedURL:
			summary.Failed++
			r.logf(model.LevelError, "Invalid URL format: '%s'", job.NormalizedURL)
		case model.OutcomeNetworkError:
			summary.Failed++
			r.logf(model.LevelError, "Network error while downloading '%s': %v", job.NormalizedURL, job.Err)
		default:
			summary.Failed++
			r.logf(model.LevelError, "Unexpected error while downloading '%s': %v", job.NormalizedURL, job.Err)
		}
	}

	summary.State = model.RunStateFinished
	r.logf(model.LevelInfo, "Finished downloading process")
	return summary
}

// download runs one fetch and records the job outcome
func (r *Runner) download(ctx context.Context, job *model.DownloadJob, outputDir string) {
	outputPath, err := r.fetcher.Fetch(ctx, job.NormalizedURL, outputDir)
	if err == nil {
		// Verify the file actually landed instead of trusting the
		// collaborator blindly
		if _, statErr := os.Stat(outputPath); statErr != nil {
			job.Outcome = model.OutcomeFailed
			job.Err = fmt.Errorf("downloaded file is missing: %w", statErr)
			return
		}
		job.Outcome = model.OutcomeSuccess
		job.OutputPath = outputPath
		return
	}

	var transportErr *gdrive.TransportError
	switch {
	case errors.Is(err, gdrive.ErrMalformedURL):
		job.Outcome = model.OutcomeMalformedURL
	case errors.As(err, &transportErr):
		job.Outcome = model.OutcomeNetworkError
	default:
		job.Outcome = model.OutcomeFailed
	}
	job.Err = err
}

// readLinks reads the links file as UTF-8 text: one URL per line, trimmed,
// blank lines dropped, order preserved, no deduplication.
func readLinks(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("file is not valid UTF-8 text")
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls, nil
}

// reportFreeSpace logs how much room the output directory's filesystem has
// left. Failures here are informational only and never affect the run.
func (r *Runner) reportFreeSpace(outputDir string) {
	usage, err := disk.Usage(outputDir)
	if err != nil {
		log.Printf("failed to read disk usage for %s: %v", outputDir, err)
		return
	}
	r.logf(model.LevelInfo, "Free space in output directory: %.1f GB", float64(usage.Free)/1024/1024/1024)
}
