// internal/cli/install.go
package cli

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/arc-language/fetchdeps"
	"github.com/arc-language/fetchdeps/pkg/execx"
	"github.com/arc-language/fetchdeps/pkg/log"
	"github.com/arc-language/fetchdeps/pkg/platform"
	"github.com/arc-language/fetchdeps/pkg/registry"
)

func runInstall(cmd *cobra.Command, args []string) error {
	// installs are never cancelled or timed out
	ctx := context.Background()

	plat := platform.Current()
	log.Debug("detected platform", "platform", plat, "goos", runtime.GOOS, "goarch", runtime.GOARCH)

	reg := registry.Default()
	opts := &fetchdeps.Options{
		Registry: reg,
		Logger:   log.Logger,
	}

	var runner execx.Runner = execx.NewCommandRunner()
	if config.Quiet {
		runner = execx.NewQuietRunner()
		opts.ShowCommandErrors = true
		if pkgs := reg.Packages(platform.Backend(plat)); len(pkgs) > 0 {
			opts.Progress = log.NewProgressBar(len(pkgs), "installing", config.Debug)
		}
	}

	pm := platform.ResolveManager(plat, config, runner, log.Logger)

	return fetchdeps.NewInstaller(pm, opts).Install(ctx, plat)
}
