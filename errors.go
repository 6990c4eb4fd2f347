// errors.go
package fetchdeps

import (
	"errors"
	"fmt"
)

var (
	// ErrToolchainMissing indicates the package manager is not installed
	ErrToolchainMissing = errors.New("package manager not installed")

	// ErrInstallFailed indicates a package failed to install
	ErrInstallFailed = errors.New("install failed")

	// ErrPlatformNotSupported indicates the platform is not supported
	ErrPlatformNotSupported = errors.New("platform not supported")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode maps the result of an install run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
