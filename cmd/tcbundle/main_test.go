package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tcbundle-dev/tcbundle/internal/arch"
	"github.com/tcbundle-dev/tcbundle/internal/config"
)

func TestNewProvisionerDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	os.Unsetenv(config.EnvArch)
	os.Unsetenv(config.EnvBuildDir)
	os.Unsetenv(config.EnvBaseURL)
	archFlag = ""
	defer func() { archFlag = "" }()

	p, a, err := newProvisioner()
	if err != nil {
		t.Fatalf("newProvisioner() failed: %v", err)
	}
	if a != arch.RISCV64 {
		t.Errorf("default architecture = %v, want riscv64", a)
	}
	if p.CacheDir() != filepath.Join("build", "riscv64") {
		t.Errorf("CacheDir() = %q", p.CacheDir())
	}
}

func TestNewProvisionerFlagWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvArch, "riscv64")
	archFlag = "loongarch64"
	defer func() { archFlag = "" }()

	_, a, err := newProvisioner()
	if err != nil {
		t.Fatalf("newProvisioner() failed: %v", err)
	}
	if a != arch.LoongArch64 {
		t.Errorf("architecture = %v, want loongarch64 (flag over env)", a)
	}
}

func TestNewProvisionerReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	os.Unsetenv(config.EnvArch)
	archFlag = ""

	content := `arch = "loongarch64"
build_dir = "out"
`
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, a, err := newProvisioner()
	if err != nil {
		t.Fatalf("newProvisioner() failed: %v", err)
	}
	if a != arch.LoongArch64 {
		t.Errorf("architecture = %v, want loongarch64 (from file)", a)
	}
	if p.CacheDir() != filepath.Join("out", "loongarch64") {
		t.Errorf("CacheDir() = %q", p.CacheDir())
	}
}

func TestNewProvisionerRejectsUnsupportedArchBeforeAnyAction(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvArch, "x86_64")
	archFlag = ""

	_, _, err := newProvisioner()
	if err == nil {
		t.Fatal("newProvisioner() should reject x86_64")
	}
	if exitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitUsage)
	}

	// Validation happens before any filesystem action: not even the
	// build root may be created.
	if _, statErr := os.Stat(filepath.Join(dir, "build")); !os.IsNotExist(statErr) {
		t.Error("rejecting the architecture must not create the build directory")
	}
}
