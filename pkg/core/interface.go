// pkg/core/interface.go
package core

import "context"

// PackageManager is a system package manager driven through its CLI
type PackageManager interface {
	// Name returns the backend name (e.g., "brew")
	Name() string

	// Probe checks that the package manager is installed and responds.
	// Its informational output is ignored.
	Probe(ctx context.Context) error

	// Hint tells the user how to get the package manager when Probe fails
	Hint() string

	// Install installs a single package, blocking until the package manager exits
	Install(ctx context.Context, pkg string) error

	// Info reports whether a package is installed and at which version.
	// It never installs anything.
	Info(ctx context.Context, pkg string) (*Package, error)
}
