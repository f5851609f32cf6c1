// Package archiver is the implementation of the fetcher-archiver component.
// The archiver is responsible for fetching the station status feed over HTTP,
// writing it atomically into the output directory under a timestamped name,
// and compressing it in place.
//
// One invocation produces one snapshot. There are no retries: a failed run
// exits and the external scheduler tries again on its next tick. Overlapping
// invocations are not coordinated here either; if two ticks can fire at once,
// the scheduler or a lock file must serialize them.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/ubuntu/decorate"

	"github.com/bikeshare-tools/stationsnap/internal/constants"
	"github.com/bikeshare-tools/stationsnap/internal/fileutils"
	"github.com/bikeshare-tools/stationsnap/internal/snapshot"
)

var (
	// ErrDirectory is returned when the output directory cannot be created.
	ErrDirectory = errors.New("output directory is not usable")

	// ErrFetch is returned when the feed cannot be fetched, either due to a
	// network error, a timeout, or a non-success status code.
	ErrFetch = errors.New("feed fetch failed")

	// ErrCompression is returned when the snapshot was fetched and written but
	// could not be compressed. The uncompressed snapshot is kept on disk.
	ErrCompression = errors.New("snapshot compression failed")
)

type timeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// Archiver is an interface for the fetcher-archiver component.
type Archiver interface {
	// Run performs one fetch-and-archive tick and returns the final snapshot.
	Run(ctx context.Context) (snapshot.Snapshot, error)
}

// archiver is an abstraction of the fetcher-archiver component.
type archiver struct {
	url       string
	outputDir string

	// Overrides for testing.
	client       *http.Client
	timeProvider timeProvider

	log *slog.Logger
}

// Config represents the archiver specific data needed to fetch and archive.
type Config struct {
	URL       string
	OutputDir string
	Timeout   time.Duration
}

// Sanitize sets defaults and checks that the Config is properly configured.
func (c *Config) Sanitize(l *slog.Logger) error {
	if c.URL == "" {
		c.URL = constants.DefaultFeedURL
		l.Info("No URL provided, defaulting to", "url", c.URL)
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid feed URL %q: %v", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported feed URL scheme %q", u.Scheme)
	}

	if c.OutputDir == "" {
		c.OutputDir = constants.DefaultCachePath
		l.Info("No output directory provided, defaulting to", "outputDir", c.OutputDir)
	}

	if c.Timeout <= 0 {
		c.Timeout = constants.DefaultTimeout
	}

	return nil
}

type options struct {
	// Private members exported for tests.
	timeProvider timeProvider
	transport    http.RoundTripper
}

var defaultOptions = options{
	timeProvider: realTimeProvider{},
}

// Options represents an optional function to override Archiver default values.
type Options func(*options)

// New returns a new Archiver.
//
// Sanitize the config before use, but Sanitize may be called beforehand safely.
func New(l *slog.Logger, c Config, args ...Options) (Archiver, error) {
	l.Debug("Creating new archiver", "url", c.URL, "outputDir", c.OutputDir)

	if err := c.Sanitize(l); err != nil {
		return archiver{}, err
	}

	opts := defaultOptions
	for _, opt := range args {
		opt(&opts)
	}

	return archiver{
		url:       c.URL,
		outputDir: c.OutputDir,

		client:       &http.Client{Timeout: c.Timeout, Transport: opts.transport},
		timeProvider: opts.timeProvider,

		log: l,
	}, nil
}

// Run performs one fetch-and-archive tick.
//
// It creates the output directory if needed, streams the feed into a temporary
// file, renames it to its timestamped name and compresses it in place. The
// returned snapshot points at the compressed artifact.
//
// A snapshot name encodes the local capture time at minute resolution, so a
// rerun within the same minute overwrites the earlier snapshot: the rename
// replaces it atomically and the rerun supersedes the earlier fetch.
func (a archiver) Run(ctx context.Context) (s snapshot.Snapshot, err error) {
	defer decorate.OnError(&err, "snapshot failed")

	a.log.Debug("Fetching feed", "url", a.url, "outputDir", a.outputDir)

	if err := os.MkdirAll(a.outputDir, 0750); err != nil {
		return snapshot.Snapshot{}, errors.Join(ErrDirectory, fmt.Errorf("failed to create output directory %s: %v", a.outputDir, err))
	}

	finalPath, err := a.fetch(ctx)
	if err != nil {
		return snapshot.Snapshot{}, errors.Join(ErrFetch, err)
	}
	a.log.Info("Snapshot written", "file", finalPath)

	compressedPath, err := a.compress(finalPath)
	if err != nil {
		// Degraded success: the uncompressed snapshot stays on disk.
		a.log.Warn("Snapshot left uncompressed", "file", finalPath, "error", err)
		return snapshot.Snapshot{}, errors.Join(ErrCompression, err)
	}
	a.log.Info("Snapshot compressed", "file", compressedPath)

	return snapshot.New(compressedPath)
}

// fetch streams the feed through a temporary file into its timestamped name
// inside the output directory, so the snapshot never appears partially written
// under a final name. It returns the path of the written snapshot.
func (a archiver) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send HTTP request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	path := filepath.Join(a.outputDir, snapshot.TimestampName(a.timeProvider.Now()))
	if err := fileutils.AtomicWrite(path, func(w io.Writer) error {
		n, err := io.Copy(w, resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %v", err)
		}
		a.log.Debug("Feed fetched", "bytes", n)
		return nil
	}); err != nil {
		return "", err
	}

	return path, nil
}
