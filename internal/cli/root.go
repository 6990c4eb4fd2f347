// internal/cli/root.go
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/arc-language/fetchdeps"
	"github.com/arc-language/fetchdeps/pkg/core"
	"github.com/arc-language/fetchdeps/pkg/log"
)

var (
	cfgFile string
	debug   bool
	quiet   bool
	config  *core.Config
)

// rootCmd installs the dependencies when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "fetchdeps",
	Short: "Install the native dependencies of the samples",
	Long: `fetchdeps - sample dependency installer

Detects the operating system and installs the libraries and tools the
samples need to build (assimp, sdl2 and meson through Homebrew on macOS).
Packages are installed one at a time and the run stops at the first failure.`,
	Args:          cobra.NoArgs,
	RunE:          runInstall,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return fetchdeps.ExitSuccess
	}

	// install failures have already been reported by the installer
	var ferr *fetchdeps.Error
	if !errors.As(err, &ferr) {
		log.Error(err)
	}
	return fetchdeps.ExitCode(err)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/fetchdeps/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "hide package manager output and show a progress bar")

	// Add commands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		log.Warnf("loading config: %v", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
	if quiet {
		config.Quiet = true
	}

	log.SetDebug(config.Debug)
}
