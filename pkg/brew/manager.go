// manager.go
package brew

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arc-language/fetchdeps/pkg/core"
	"github.com/arc-language/fetchdeps/pkg/execx"
	fdlog "github.com/arc-language/fetchdeps/pkg/log"
)

var _ core.PackageManager = (*PackageManager)(nil)

// NewPackageManager creates a new Homebrew package manager
func NewPackageManager(runner execx.Runner, cfg *Config) *PackageManager {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Executable == "" {
		cfg.Executable = DefaultExecutable
	}
	if runner == nil {
		runner = execx.NewCommandRunner()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = fdlog.Logger
	}

	pm := &PackageManager{
		runner: runner,
		config: cfg,
		logger: logger,
	}

	pm.logger.Debug("initialized homebrew package manager", "executable", cfg.Executable)

	return pm
}

// Name returns the backend name
func (pm *PackageManager) Name() string {
	return BackendName
}

// Hint returns installation guidance for Homebrew
func (pm *PackageManager) Hint() string {
	return "you can get it at " + InstallURL
}

// Probe runs `brew --version` and discards its output.
func (pm *PackageManager) Probe(ctx context.Context) error {
	version, err := pm.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotInstalled, err)
	}
	pm.logger.Debug("homebrew responded", "version", version)
	return nil
}

// Version returns the Homebrew version, e.g. "4.2.0"
func (pm *PackageManager) Version(ctx context.Context) (string, error) {
	out, err := pm.runner.Output(ctx, pm.config.Executable, "--version")
	if err != nil {
		return "", err
	}
	return parseVersion(out), nil
}

// Install runs `brew install <formula>`
func (pm *PackageManager) Install(ctx context.Context, formula string) error {
	if formula == "" {
		return fmt.Errorf("formula is required")
	}

	pm.logger.Debug("running brew install", "formula", formula)

	if err := pm.runner.Run(ctx, pm.config.Executable, "install", formula); err != nil {
		return fmt.Errorf("brew install %s: %w", formula, err)
	}
	return nil
}

// Info reports the installed version of a formula using
// `brew list --versions`, which exits 1 for formulae that are not installed.
func (pm *PackageManager) Info(ctx context.Context, formula string) (*core.Package, error) {
	if formula == "" {
		return nil, fmt.Errorf("formula is required")
	}

	pkg := &core.Package{
		Name:    formula,
		Backend: BackendName,
	}

	out, err := pm.runner.Output(ctx, pm.config.Executable, "list", "--versions", formula)
	if err != nil {
		var exerr *execx.ExternalCommandError
		if errors.As(err, &exerr) && exerr.ExitCode == 1 {
			return pkg, nil
		}
		return nil, fmt.Errorf("brew list %s: %w", formula, err)
	}

	version, ok := parseListVersions(out, formula)
	if !ok {
		return pkg, nil
	}
	pkg.Installed = true
	pkg.Version = version
	return pkg, nil
}

// parseVersion extracts "4.2.0" from "Homebrew 4.2.0\n...". Output it does not
// recognise is returned trimmed.
func parseVersion(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	fields := strings.Fields(line)
	if len(fields) >= 2 && fields[0] == "Homebrew" {
		return fields[1]
	}
	return strings.TrimSpace(line)
}

// parseListVersions parses "sdl2 2.30.1 2.28.5". When several versions are
// kept in the Cellar the last one listed is reported.
func parseListVersions(out, formula string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != formula {
			continue
		}
		return fields[len(fields)-1], true
	}
	return "", false
}
