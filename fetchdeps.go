// fetchdeps.go
package fetchdeps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/arc-language/fetchdeps/pkg/core"
	"github.com/arc-language/fetchdeps/pkg/execx"
	fdlog "github.com/arc-language/fetchdeps/pkg/log"
	"github.com/arc-language/fetchdeps/pkg/platform"
	"github.com/arc-language/fetchdeps/pkg/registry"
)

// Process exit statuses
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Progress receives one step per installed package. It is satisfied by
// *progressbar.ProgressBar.
type Progress interface {
	Describe(description string)
	Add(num int) error
	Clear() error
}

// Options configures an Installer. The zero value installs the embedded
// manifest and logs to the shared logger.
type Options struct {
	Registry *registry.Registry
	Logger   *log.Logger

	// Progress, when set, replaces the per-package "installing" lines.
	Progress Progress

	// ShowCommandErrors prints the captured standard error of a failed
	// install. Set it when the runner does not forward child output.
	ShowCommandErrors bool
}

// Installer installs the dependency list of a platform with a package manager
type Installer struct {
	manager  core.PackageManager
	registry *registry.Registry
	logger   *log.Logger
	opts     Options
}

// NewInstaller creates an installer. manager may be nil on platforms that
// declare no dependencies.
func NewInstaller(manager core.PackageManager, opts *Options) *Installer {
	if opts == nil {
		opts = &Options{}
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = fdlog.Logger
	}

	return &Installer{
		manager:  manager,
		registry: reg,
		logger:   logger,
		opts:     *opts,
	}
}

// Run installs the dependencies for p with manager and returns the process
// exit status.
func Run(ctx context.Context, p platform.Platform, manager core.PackageManager) int {
	return NewInstaller(manager, nil).Run(ctx, p)
}

// Run is Install reduced to an exit status
func (in *Installer) Run(ctx context.Context, p platform.Platform) int {
	return ExitCode(in.Install(ctx, p))
}

// Packages returns the manifest entries installed on p, in install order.
func (in *Installer) Packages(p platform.Platform) []registry.Entry {
	backend := platform.Backend(p)
	if backend == "" {
		return nil
	}
	return in.registry.Packages(backend)
}

// Install installs every dependency declared for p, stopping at the first
// failure. Packages installed before the failure are left in place.
func (in *Installer) Install(ctx context.Context, p platform.Platform) error {
	switch p {
	case platform.Darwin:
		return in.installAll(ctx, p)
	case platform.Linux:
		// No Linux package list exists yet; the run succeeds without touching
		// any package manager.
		in.logger.Debug("no dependencies declared", "platform", p)
		return nil
	case platform.Unsupported:
		in.logger.Error("unsupported platform")
		return &Error{Op: "install", Err: ErrPlatformNotSupported}
	default:
		in.logger.Error("unsupported platform")
		return &Error{Op: "install", Err: fmt.Errorf("%w: %d", ErrPlatformNotSupported, int(p))}
	}
}

func (in *Installer) installAll(ctx context.Context, p platform.Platform) error {
	if in.manager == nil {
		in.logger.Error("no package manager configured", "platform", p)
		return &Error{Op: "probe", Err: ErrToolchainMissing}
	}

	if err := in.manager.Probe(ctx); err != nil {
		in.logger.Debug("probe failed", "err", err)
		in.logger.Errorf("%s is not installed", displayName(in.manager.Name()))
		in.logger.Print(in.manager.Hint())
		return &Error{Op: "probe", Err: fmt.Errorf("%w: %w", ErrToolchainMissing, err)}
	}

	backend := in.manager.Name()
	packages := in.registry.Packages(backend)
	in.logger.Debug("installing dependencies", "platform", p, "backend", backend, "count", len(packages))

	for _, entry := range packages {
		if in.opts.Progress != nil {
			in.opts.Progress.Describe("installing " + entry.Name)
		} else {
			in.logger.Info("installing " + entry.Name)
		}

		if err := in.manager.Install(ctx, entry.Backends[backend]); err != nil {
			if in.opts.Progress != nil {
				_ = in.opts.Progress.Clear()
			}
			in.logger.Error("cannot install " + entry.Name)
			in.logger.Debug("install failed", "package", entry.Name, "err", err)
			in.printCommandError(err)
			return &Error{Op: "install", Package: entry.Name, Err: fmt.Errorf("%w: %w", ErrInstallFailed, err)}
		}

		if in.opts.Progress != nil {
			_ = in.opts.Progress.Add(1)
		}
	}

	in.logger.Info("all packages installed")
	return nil
}

func (in *Installer) printCommandError(err error) {
	if !in.opts.ShowCommandErrors {
		return
	}
	var exerr *execx.ExternalCommandError
	if errors.As(err, &exerr) && exerr.StdErr != "" {
		in.logger.Print(strings.TrimRight(exerr.StdErr, "\n"))
	}
}

func displayName(backend string) string {
	switch backend {
	case "brew":
		return "homebrew"
	default:
		return backend
	}
}
