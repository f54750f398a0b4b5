package provision

import (
	"fmt"

	"github.com/tcbundle-dev/tcbundle/internal/arch"
)

// DownloadError reports a failed bundle download: transport error,
// non-success response, or truncated transfer. Any partially written
// bundle file is left in place for inspection.
type DownloadError struct {
	Arch arch.Architecture
	URL  string
	Err  error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s test-case bundle from %s: %v", e.Arch, e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractError reports a failed bundle extraction: unreadable or corrupt
// archive, or an I/O error during unpack. The downloaded archive file is
// left on disk for inspection.
type ExtractError struct {
	Arch arch.Architecture
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting %s test-case bundle %s: %v", e.Arch, e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }
