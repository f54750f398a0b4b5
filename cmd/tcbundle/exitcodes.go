package main

import (
	"errors"
	"os"

	"github.com/tcbundle-dev/tcbundle/internal/arch"
	"github.com/tcbundle-dev/tcbundle/internal/provision"
)

// Exit codes for different error types.
// These let build scripts distinguish between failure modes.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0

	// ExitGeneral indicates a general or filesystem error
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments, including an architecture
	// outside the supported set
	ExitUsage = 2

	// ExitDownload indicates the bundle download failed
	ExitDownload = 5

	// ExitExtract indicates the bundle extraction failed
	ExitExtract = 6
)

// exitCodeFor maps an error to its exit code.
func exitCodeFor(err error) int {
	var unsupported *arch.UnsupportedError
	if errors.As(err, &unsupported) {
		return ExitUsage
	}

	var download *provision.DownloadError
	if errors.As(err, &download) {
		return ExitDownload
	}

	var extract *provision.ExtractError
	if errors.As(err, &extract) {
		return ExitExtract
	}

	return ExitGeneral
}

// exitWithCode exits with the specified exit code
func exitWithCode(code int) {
	os.Exit(code)
}
