// types.go
package brew

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/arc-language/fetchdeps/pkg/execx"
)

// ErrNotInstalled is returned by Probe when brew cannot be run
var ErrNotInstalled = errors.New("homebrew is not installed")

// Config configures the package manager
type Config struct {
	Executable string      // Default: brew
	Logger     *log.Logger // Custom logger (optional)
}

// PackageManager drives the Homebrew CLI
type PackageManager struct {
	runner execx.Runner
	config *Config
	logger *log.Logger
}
