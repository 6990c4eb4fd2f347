// pkg/platform/resolver.go
package platform

import (
	"github.com/charmbracelet/log"

	"github.com/arc-language/fetchdeps/pkg/brew"
	"github.com/arc-language/fetchdeps/pkg/core"
	"github.com/arc-language/fetchdeps/pkg/execx"
)

// ResolveManager builds the package manager used on p. Platforms without a
// dependency list get a nil manager and no error.
func ResolveManager(p Platform, config *core.Config, runner execx.Runner, logger *log.Logger) core.PackageManager {
	if config == nil {
		config = core.DefaultConfig()
	}

	switch p {
	case Darwin:
		return brew.NewPackageManager(runner, &brew.Config{
			Executable: config.Brew.Executable,
			Logger:     logger,
		})
	case Linux, Unsupported:
		return nil
	default:
		return nil
	}
}
