package fetchdeps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/fetchdeps/pkg/brew"
	"github.com/arc-language/fetchdeps/pkg/execx"
	fdlog "github.com/arc-language/fetchdeps/pkg/log"
	"github.com/arc-language/fetchdeps/pkg/platform"
	"github.com/arc-language/fetchdeps/pkg/registry"
)

// fakeRunner records every command and fails the ones listed in errs.
type fakeRunner struct {
	calls []string
	errs  map[string]error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	call := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, call)
	return f.errs[call]
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	call := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, call)
	if err := f.errs[call]; err != nil {
		return "", err
	}
	if call == "brew --version" {
		return "Homebrew 4.2.0\n", nil
	}
	return "", nil
}

func (f *fakeRunner) installs() []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, "brew install ") {
			out = append(out, strings.TrimPrefix(c, "brew install "))
		}
	}
	return out
}

type fakeProgress struct {
	descriptions []string
	steps        int
	clears       int
}

func (f *fakeProgress) Describe(description string) {
	f.descriptions = append(f.descriptions, description)
}

func (f *fakeProgress) Add(num int) error {
	f.steps += num
	return nil
}

func (f *fakeProgress) Clear() error {
	f.clears++
	return nil
}

func newInstaller(runner *fakeRunner, opts *Options) (*Installer, *bytes.Buffer) {
	var out bytes.Buffer
	logger := fdlog.New(&out)
	if opts == nil {
		opts = &Options{}
	}
	opts.Logger = logger
	pm := brew.NewPackageManager(runner, &brew.Config{Logger: logger})
	return NewInstaller(pm, opts), &out
}

var declared = []string{"assimp", "sdl2", "meson"}

func TestUnsupportedPlatform(t *testing.T) {
	runner := &fakeRunner{}
	in, out := newInstaller(runner, nil)

	err := in.Install(context.Background(), platform.Unsupported)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlatformNotSupported))
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, out.String(), "unsupported platform")
	assert.Empty(t, runner.calls)

	assert.Equal(t, ExitFailure, in.Run(context.Background(), platform.Parse("Windows")))
}

func TestDarwinProbeFails(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"brew --version": fmt.Errorf("brew: %w", execx.ErrNotFound),
	}}
	in, out := newInstaller(runner, nil)

	err := in.Install(context.Background(), platform.Darwin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolchainMissing))
	assert.True(t, errors.Is(err, execx.ErrNotFound))
	assert.Equal(t, ExitFailure, ExitCode(err))

	assert.Empty(t, runner.installs())
	assert.Contains(t, out.String(), "homebrew is not installed")
	assert.Contains(t, out.String(), "brew.sh")
}

func TestDarwinInstallsAllInOrder(t *testing.T) {
	runner := &fakeRunner{}
	in, out := newInstaller(runner, nil)

	require.Equal(t, ExitSuccess, in.Run(context.Background(), platform.Darwin))
	assert.Equal(t, []string{"brew --version", "brew install assimp", "brew install sdl2", "brew install meson"}, runner.calls)

	log := out.String()
	for _, pkg := range declared {
		assert.Contains(t, log, "installing "+pkg)
	}
	assert.Contains(t, log, "all packages installed")
}

func TestDarwinStopsAtFirstFailure(t *testing.T) {
	for k := range declared {
		t.Run(declared[k], func(t *testing.T) {
			failing := "brew install " + declared[k]
			runner := &fakeRunner{errs: map[string]error{
				failing: &execx.ExternalCommandError{Command: failing, ExitCode: 1},
			}}
			in, out := newInstaller(runner, nil)

			err := in.Install(context.Background(), platform.Darwin)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInstallFailed))
			assert.Equal(t, ExitFailure, ExitCode(err))

			var ferr *Error
			require.True(t, errors.As(err, &ferr))
			assert.Equal(t, declared[k], ferr.Package)

			assert.Equal(t, declared[:k+1], runner.installs())
			assert.Contains(t, out.String(), "cannot install "+declared[k])
			assert.NotContains(t, out.String(), "all packages installed")
		})
	}
}

func TestLinuxIsNoop(t *testing.T) {
	runner := &fakeRunner{}
	in, out := newInstaller(runner, nil)

	assert.Equal(t, ExitSuccess, in.Run(context.Background(), platform.Linux))
	assert.Empty(t, runner.calls)
	assert.Empty(t, out.String())
	assert.Empty(t, in.Packages(platform.Linux))
}

func TestLinuxWithoutManager(t *testing.T) {
	in := NewInstaller(nil, &Options{Logger: fdlog.New(&bytes.Buffer{})})
	assert.Equal(t, ExitSuccess, in.Run(context.Background(), platform.Linux))
}

func TestDarwinWithoutManager(t *testing.T) {
	in := NewInstaller(nil, &Options{Logger: fdlog.New(&bytes.Buffer{})})

	err := in.Install(context.Background(), platform.Darwin)
	assert.True(t, errors.Is(err, ErrToolchainMissing))
}

func TestProgressReplacesInfoLines(t *testing.T) {
	runner := &fakeRunner{}
	progress := &fakeProgress{}
	in, out := newInstaller(runner, &Options{Progress: progress})

	require.NoError(t, in.Install(context.Background(), platform.Darwin))
	assert.Equal(t, 3, progress.steps)
	assert.Equal(t, []string{"installing assimp", "installing sdl2", "installing meson"}, progress.descriptions)
	assert.NotContains(t, out.String(), "installing assimp")
	assert.Contains(t, out.String(), "all packages installed")
}

func TestProgressClearedBeforeFailure(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"brew install sdl2": &execx.ExternalCommandError{Command: "brew install sdl2", ExitCode: 1},
	}}
	progress := &fakeProgress{}
	in, out := newInstaller(runner, &Options{Progress: progress})

	require.Error(t, in.Install(context.Background(), platform.Darwin))
	assert.Equal(t, 1, progress.clears)
	assert.Equal(t, 1, progress.steps)
	assert.Contains(t, out.String(), "cannot install sdl2")
}

func TestProgressNotClearedOnSuccess(t *testing.T) {
	progress := &fakeProgress{}
	in, _ := newInstaller(&fakeRunner{}, &Options{Progress: progress})

	require.NoError(t, in.Install(context.Background(), platform.Darwin))
	assert.Zero(t, progress.clears)
}

func TestCancelledContextDoesNotSkipInstalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	in, _ := newInstaller(runner, nil)

	require.NoError(t, in.Install(ctx, platform.Darwin))
	assert.Equal(t, declared, runner.installs())
}

func TestShowCommandErrors(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"brew install sdl2": &execx.ExternalCommandError{
			Command:  "brew install sdl2",
			ExitCode: 1,
			StdErr:   "Error: No available formula with the name \"sdl2\".\n",
		},
	}}
	in, out := newInstaller(runner, &Options{ShowCommandErrors: true})

	require.Error(t, in.Install(context.Background(), platform.Darwin))
	assert.Contains(t, out.String(), "No available formula")
}

func TestCustomRegistry(t *testing.T) {
	reg, err := registry.Parse([]byte(`
[[package]]
name = "glfw"
[package.backends]
brew = "glfw3"
apt = "libglfw3-dev"

[[package]]
name = "mesa"
[package.backends]
apt = "libgl1-mesa-dev"
`))
	require.NoError(t, err)

	runner := &fakeRunner{}
	in, _ := newInstaller(runner, &Options{Registry: reg})

	require.NoError(t, in.Install(context.Background(), platform.Darwin))
	assert.Equal(t, []string{"glfw3"}, runner.installs())
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Op: "install", Package: "sdl2", Err: ErrInstallFailed}
	assert.Equal(t, "install sdl2: install failed", err.Error())

	err = &Error{Op: "install", Err: ErrPlatformNotSupported}
	assert.Equal(t, "install: platform not supported", err.Error())
}
