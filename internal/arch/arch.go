// Package arch defines the closed set of target architectures tcbundle
// can provision syscall test-case bundles for.
//
// The set is intentionally closed: bundles only exist upstream for the
// architectures listed here, and an unrecognized value is a configuration
// error that must abort before any filesystem or network action.
package arch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Architecture identifies a supported target architecture.
// Values are constructed via Parse; do not cast free-form strings.
type Architecture string

const (
	// RISCV64 is the 64-bit RISC-V target.
	RISCV64 Architecture = "riscv64"

	// LoongArch64 is the 64-bit LoongArch target.
	LoongArch64 Architecture = "loongarch64"
)

// platformNames maps each architecture to its human-readable platform
// name. Informational only: used for logs and `tcbundle info` output.
var platformNames = map[Architecture]string{
	RISCV64:     "RISC-V 64",
	LoongArch64: "LoongArch 64",
}

// Supported returns the recognized architectures in a stable order.
func Supported() []Architecture {
	return []Architecture{RISCV64, LoongArch64}
}

// UnsupportedError reports an architecture token outside the closed set.
type UnsupportedError struct {
	Value string
}

func (e *UnsupportedError) Error() string {
	names := make([]string, 0, len(platformNames))
	for _, a := range Supported() {
		names = append(names, string(a))
	}
	return fmt.Sprintf("unsupported architecture %q (supported: %s)",
		e.Value, strings.Join(names, ", "))
}

// Parse validates an architecture token against the closed set.
// Returns *UnsupportedError for anything not in the set.
func Parse(s string) (Architecture, error) {
	a := Architecture(s)
	if _, ok := platformNames[a]; !ok {
		return "", &UnsupportedError{Value: s}
	}
	return a, nil
}

// Platform returns the human-readable platform name.
func (a Architecture) Platform() string {
	return platformNames[a]
}

// BundleName returns the fixed archive filename for this architecture,
// e.g. "riscv64-syscall-testcases.tar.xz".
func (a Architecture) BundleName() string {
	return string(a) + "-syscall-testcases.tar.xz"
}

// BundleURL returns the download URL for this architecture's bundle
// under the given base URL.
func (a Architecture) BundleURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + a.BundleName()
}

// CacheDir returns the per-architecture cache directory under the
// given build root, e.g. "build/riscv64". Directories for distinct
// architectures never overlap.
func (a Architecture) CacheDir(buildRoot string) string {
	return filepath.Join(buildRoot, string(a))
}

func (a Architecture) String() string {
	return string(a)
}
