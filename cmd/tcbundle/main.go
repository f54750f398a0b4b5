package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcbundle-dev/tcbundle/internal/arch"
	"github.com/tcbundle-dev/tcbundle/internal/config"
	"github.com/tcbundle-dev/tcbundle/internal/log"
	"github.com/tcbundle-dev/tcbundle/internal/provision"
)

var (
	// Version is the current version of tcbundle
	Version = "0.1.0"

	archFlag    string
	strictFlag  bool
	verboseFlag bool
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "tcbundle",
	Short: "Provision syscall test-case bundles for kernel builds",
	Long: `tcbundle ensures the syscall test-case bundle for a target
architecture is downloaded and unpacked into its build directory
(build/<arch>), fetching the bundle only when the directory is empty.

The architecture is taken from --arch, the TCBUNDLE_ARCH environment
variable, or tcbundle.toml, defaulting to riscv64.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verboseFlag {
			level = slog.LevelDebug
		}
		if quietFlag {
			level = slog.LevelError
		}
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		log.SetDefault(log.New(h))
	},
}

// newProvisioner resolves configuration (flag > env > tcbundle.toml >
// defaults) and validates the architecture before anything touches the
// filesystem or network.
func newProvisioner() (*provision.Provisioner, arch.Architecture, error) {
	fileCfg, err := config.LoadFile()
	if err != nil {
		return nil, "", err
	}

	a, err := arch.Parse(fileCfg.ResolveArch(archFlag))
	if err != nil {
		return nil, "", err
	}

	p := provision.New(a,
		provision.WithBuildRoot(fileCfg.ResolveBuildRoot()),
		provision.WithBaseURL(fileCfg.ResolveBaseURL()),
		provision.WithStrictCheck(strictFlag),
		provision.WithLogger(log.Default()),
	)
	return p, a, nil
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Download and unpack the test-case bundle if needed",
	Long: `Ensure the architecture's build directory contains the extracted
syscall test-case bundle. A directory that already has any entry is
treated as populated and nothing is downloaded.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, a, err := newProvisioner()
		if err != nil {
			printError(err)
			exitWithCode(exitCodeFor(err))
		}

		if err := p.Build(context.Background()); err != nil {
			printError(err)
			exitWithCode(exitCodeFor(err))
		}

		printInfof("✓ %s test cases ready in %s\n", a.Platform(), p.CacheDir())
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the architecture's build directory",
	Long: `Remove the architecture's build directory entirely, including the
downloaded archive and all extracted contents. Cleaning an absent
directory is a success.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, a, err := newProvisioner()
		if err != nil {
			printError(err)
			exitWithCode(exitCodeFor(err))
		}

		if err := p.Clean(); err != nil {
			printError(err)
			exitWithCode(exitCodeFor(err))
		}

		printInfof("✓ %s cache removed\n", a)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show bundle provisioning state",
	Long:  `Show the resolved platform, cache directory, bundle URL and whether the cache is populated.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		p, a, err := newProvisioner()
		if err != nil {
			printError(err)
			exitWithCode(exitCodeFor(err))
		}

		populated, err := p.Populated()
		if err != nil {
			printError(err)
			exitWithCode(exitCodeFor(err))
		}

		if jsonOutput {
			printJSON(struct {
				Arch      string `json:"arch"`
				Platform  string `json:"platform"`
				CacheDir  string `json:"cache_dir"`
				BundleURL string `json:"bundle_url"`
				Populated bool   `json:"populated"`
			}{
				Arch:      a.String(),
				Platform:  a.Platform(),
				CacheDir:  p.CacheDir(),
				BundleURL: p.BundleURL(),
				Populated: populated,
			})
			return
		}

		fmt.Printf("Architecture: %s\n", a)
		fmt.Printf("Platform:     %s\n", a.Platform())
		fmt.Printf("Cache dir:    %s\n", p.CacheDir())
		fmt.Printf("Bundle URL:   %s\n", p.BundleURL())
		fmt.Printf("Populated:    %t\n", populated)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&archFlag, "arch", "", "target architecture (riscv64, loongarch64)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "errors only")

	buildCmd.Flags().BoolVar(&strictFlag, "strict", false, "require a completion marker instead of any directory entry")
	infoCmd.Flags().BoolVar(&strictFlag, "strict", false, "require a completion marker instead of any directory entry")
	infoCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(infoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitWithCode(ExitUsage)
	}
}
