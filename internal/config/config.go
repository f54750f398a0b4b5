// Package config provides environment and file configuration for tcbundle.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvArch is the environment variable selecting the target architecture
	EnvArch = "TCBUNDLE_ARCH"

	// EnvBuildDir is the environment variable overriding the build root directory
	EnvBuildDir = "TCBUNDLE_BUILD_DIR"

	// EnvBaseURL is the environment variable overriding the bundle base URL
	EnvBaseURL = "TCBUNDLE_BASE_URL"

	// EnvDownloadTimeout is the environment variable configuring the download timeout
	EnvDownloadTimeout = "TCBUNDLE_DOWNLOAD_TIMEOUT"

	// DefaultArch is the architecture used when none is configured
	DefaultArch = "riscv64"

	// DefaultBuildDir is the build root under which per-architecture
	// cache directories are created
	DefaultBuildDir = "build"

	// DefaultBaseURL is the upstream release location of the syscall
	// test-case bundles
	DefaultBaseURL = "https://github.com/oscomp/testsuits-for-oskernel/releases/download/pre-20250615"

	// DefaultDownloadTimeout is the default timeout for bundle downloads.
	// The bundles are tens of megabytes; five minutes covers slow links.
	DefaultDownloadTimeout = 5 * time.Minute
)

// GetArch returns the configured architecture token from TCBUNDLE_ARCH.
// If not set, returns DefaultArch. The value is not validated here;
// validation against the closed set happens in arch.Parse.
func GetArch() string {
	if v := os.Getenv(EnvArch); v != "" {
		return v
	}
	return DefaultArch
}

// GetBuildRoot returns the build root directory from TCBUNDLE_BUILD_DIR.
// If not set, returns DefaultBuildDir.
func GetBuildRoot() string {
	if v := os.Getenv(EnvBuildDir); v != "" {
		return v
	}
	return DefaultBuildDir
}

// GetBaseURL returns the bundle base URL from TCBUNDLE_BASE_URL.
// If not set, returns DefaultBaseURL.
func GetBaseURL() string {
	if v := os.Getenv(EnvBaseURL); v != "" {
		return v
	}
	return DefaultBaseURL
}

// GetDownloadTimeout returns the configured download timeout from
// TCBUNDLE_DOWNLOAD_TIMEOUT. If not set or invalid, returns
// DefaultDownloadTimeout. Accepts duration strings like "30s", "2m", "10m".
func GetDownloadTimeout() time.Duration {
	envValue := os.Getenv(EnvDownloadTimeout)
	if envValue == "" {
		return DefaultDownloadTimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvDownloadTimeout, envValue, DefaultDownloadTimeout)
		return DefaultDownloadTimeout
	}

	// Validate reasonable range (1 second to 30 minutes)
	if duration < 1*time.Second {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum 1s\n",
			EnvDownloadTimeout, duration)
		return 1 * time.Second
	}
	if duration > 30*time.Minute {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum 30m\n",
			EnvDownloadTimeout, duration)
		return 30 * time.Minute
	}

	return duration
}
