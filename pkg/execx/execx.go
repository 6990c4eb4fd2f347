// pkg/execx/execx.go
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

var ErrNotFound = exec.ErrNotFound

// Runner executes external commands. Implementations block until the child
// process exits.
type Runner interface {
	// Run executes the command, sending its output to the runner's sinks.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

type ExternalCommandError struct {
	Command  string
	ExitCode int
	StdErr   string
}

func (e *ExternalCommandError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited unsuccessfully", e.Command)
}

// ExitCode returns the exit status carried by err, 0 when err is nil and -1
// when the command never produced one.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exerr *ExternalCommandError
	if errors.As(err, &exerr) {
		return exerr.ExitCode
	}
	return -1
}

// CommandRunner runs commands on the host. A nil Stdout or Stderr discards or
// captures that stream instead of forwarding it.
type CommandRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommandRunner returns a runner attached to the process's own stdout and
// stderr.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// NewQuietRunner returns a runner that keeps child output off the terminal.
// Standard error is still captured into ExternalCommandError.
func NewQuietRunner() *CommandRunner {
	return &CommandRunner{}
}

func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) error {
	stdout := r.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	return r.exec(ctx, stdout, name, args...)
}

func (r *CommandRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	var stdoutBuf bytes.Buffer
	if err := r.exec(ctx, &stdoutBuf, name, args...); err != nil {
		return "", err
	}
	return stdoutBuf.String(), nil
}

func (r *CommandRunner) exec(ctx context.Context, stdout io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, &stderrBuf)
	} else {
		cmd.Stderr = &stderrBuf
	}

	// forward the current environment
	cmd.Env = os.Environ()

	command := strings.Join(append([]string{name}, args...), " ")

	err := cmd.Run()
	if err != nil {
		var exerr *exec.ExitError
		if errors.As(err, &exerr) {
			return &ExternalCommandError{
				Command:  command,
				ExitCode: exerr.ExitCode(),
				StdErr:   stderrBuf.String(),
			}
		}

		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}

		return fmt.Errorf("running %s: %w", command, err)
	}

	return nil
}
