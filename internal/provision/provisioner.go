// Package provision ensures an architecture's syscall test-case bundle
// is present and unpacked in its cache directory.
//
// The cache directory (build/<arch>) doubles as the idempotence marker:
// a directory with any entry is treated as already populated and Build
// becomes a no-op, no matter what the entries are. This presence-only
// check is deliberate; a stricter completion-marker mode is available
// via WithStrictCheck.
//
// Provisioning is single-threaded and blocking. Concurrent Build calls
// for the same architecture are not guarded against and race on
// directory creation and file writes; distinct architectures use
// disjoint directories and are safe to run concurrently.
package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tcbundle-dev/tcbundle/internal/arch"
	"github.com/tcbundle-dev/tcbundle/internal/config"
	"github.com/tcbundle-dev/tcbundle/internal/log"
)

// markerName is the completion marker written after a successful
// extraction when strict checking is enabled.
const markerName = ".complete"

// Provisioner provisions the test-case bundle for one architecture.
type Provisioner struct {
	arch      arch.Architecture
	buildRoot string
	baseURL   string
	fetcher   Fetcher
	extractor Extractor
	logger    log.Logger
	strict    bool
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithBuildRoot overrides the build root directory.
func WithBuildRoot(dir string) Option {
	return func(p *Provisioner) { p.buildRoot = dir }
}

// WithBaseURL overrides the bundle download base URL.
func WithBaseURL(url string) Option {
	return func(p *Provisioner) { p.baseURL = url }
}

// WithFetcher replaces the default HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(p *Provisioner) { p.fetcher = f }
}

// WithExtractor replaces the default archive extractor.
func WithExtractor(e Extractor) Option {
	return func(p *Provisioner) { p.extractor = e }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(p *Provisioner) { p.logger = l }
}

// WithStrictCheck makes Populated require the completion marker written
// after a successful extraction, instead of accepting any directory
// entry. Off by default to match the historical presence-only semantic.
func WithStrictCheck(strict bool) Option {
	return func(p *Provisioner) { p.strict = strict }
}

// New creates a Provisioner for the given architecture. The
// architecture must already be validated via arch.Parse; defaults for
// build root, base URL and download timeout come from the environment.
func New(a arch.Architecture, opts ...Option) *Provisioner {
	p := &Provisioner{
		arch:      a,
		buildRoot: config.GetBuildRoot(),
		baseURL:   config.GetBaseURL(),
		extractor: &ArchiveExtractor{},
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.fetcher == nil {
		p.fetcher = NewHTTPFetcher(config.GetDownloadTimeout())
	}
	p.logger = p.logger.With("arch", string(a))
	return p
}

// CacheDir returns the architecture's cache directory.
func (p *Provisioner) CacheDir() string {
	return p.arch.CacheDir(p.buildRoot)
}

// BundleURL returns the download URL for the architecture's bundle.
func (p *Provisioner) BundleURL() string {
	return p.arch.BundleURL(p.baseURL)
}

// Populated reports whether the cache directory is considered populated.
// In the default mode any entry counts, including a stray partial
// download; strict mode requires the completion marker.
func (p *Provisioner) Populated() (bool, error) {
	dir := p.CacheDir()

	if p.strict {
		_, err := os.Stat(filepath.Join(dir, markerName))
		if os.IsNotExist(err) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to stat completion marker: %w", err)
		}
		return true, nil
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache directory %s: %w", dir, err)
	}
	return len(entries) > 0, nil
}

// Build ensures the cache directory contains the extracted bundle,
// downloading it only when the directory is absent or empty. Network
// I/O happens at most once per clean cache state; a populated directory
// makes Build a no-op. There is no retry: every failure aborts the call
// and is surfaced to the caller.
func (p *Provisioner) Build(ctx context.Context) error {
	dir := p.CacheDir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	populated, err := p.Populated()
	if err != nil {
		return err
	}
	if populated {
		p.logger.Debug("cache already populated, skipping download", "dir", dir)
		return nil
	}

	url := p.BundleURL()
	archivePath := filepath.Join(dir, p.arch.BundleName())
	p.logger.Info("downloading test-case bundle", "url", url)

	if err := p.download(ctx, url, archivePath); err != nil {
		// The partial file is intentionally left in place; a later
		// Build will see a non-empty directory and skip the fetch.
		return &DownloadError{Arch: p.arch, URL: url, Err: err}
	}

	p.logger.Info("extracting test-case bundle", "archive", archivePath)
	if err := p.extractor.Extract(archivePath, dir); err != nil {
		return &ExtractError{Arch: p.arch, Path: archivePath, Err: err}
	}

	if p.strict {
		if err := os.WriteFile(filepath.Join(dir, markerName), nil, 0644); err != nil {
			return fmt.Errorf("failed to write completion marker: %w", err)
		}
	}

	p.logger.Debug("bundle provisioned", "dir", dir)
	return nil
}

// download streams the bundle into archivePath. On failure the
// partially written file is not removed.
func (p *Provisioner) download(ctx context.Context, url, archivePath string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create bundle file: %w", err)
	}

	if err := p.fetcher.Fetch(ctx, url, out); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close bundle file: %w", err)
	}
	return nil
}

// Clean removes the architecture's cache directory in its entirety,
// including the downloaded archive and all extracted contents. Removing
// an already-absent directory is a success.
func (p *Provisioner) Clean() error {
	dir := p.CacheDir()
	p.logger.Debug("removing cache directory", "dir", dir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove cache directory %s: %w", dir, err)
	}
	return nil
}
