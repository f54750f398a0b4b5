package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the optional project-local configuration file read from
// the working directory.
const FileName = "tcbundle.toml"

// FileConfig holds settings read from tcbundle.toml. All fields are
// optional; zero values mean "not set". Environment variables override
// the file, and command-line flags override both.
type FileConfig struct {
	// Arch selects the target architecture (e.g. "riscv64").
	Arch string `toml:"arch"`

	// BuildDir overrides the build root directory.
	BuildDir string `toml:"build_dir"`

	// BaseURL overrides the bundle download base URL.
	BaseURL string `toml:"base_url"`
}

// LoadFile reads tcbundle.toml from the working directory.
// A missing file is not an error; defaults apply.
func LoadFile() (*FileConfig, error) {
	return loadFromPath(FileName)
}

// loadFromPath reads config from a specific file path (for testing).
func loadFromPath(path string) (*FileConfig, error) {
	fileCfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fileCfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return fileCfg, nil
}

// ResolveArch returns the effective architecture token: flag value if
// non-empty, then TCBUNDLE_ARCH, then the config file, then DefaultArch.
func (c *FileConfig) ResolveArch(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvArch); v != "" {
		return v
	}
	if c.Arch != "" {
		return c.Arch
	}
	return DefaultArch
}

// ResolveBuildRoot returns the effective build root: TCBUNDLE_BUILD_DIR,
// then the config file, then DefaultBuildDir.
func (c *FileConfig) ResolveBuildRoot() string {
	if v := os.Getenv(EnvBuildDir); v != "" {
		return v
	}
	if c.BuildDir != "" {
		return c.BuildDir
	}
	return DefaultBuildDir
}

// ResolveBaseURL returns the effective base URL: TCBUNDLE_BASE_URL,
// then the config file, then DefaultBaseURL.
func (c *FileConfig) ResolveBaseURL() string {
	if v := os.Getenv(EnvBaseURL); v != "" {
		return v
	}
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}
