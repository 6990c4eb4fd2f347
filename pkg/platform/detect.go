// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is the closed set of operating systems the installer knows about.
// Anything that is not Darwin or Linux is Unsupported.
type Platform int

const (
	Unsupported Platform = iota
	Darwin
	Linux
)

// goos is a variable so tests can override it.
var goos = func() string { return runtime.GOOS }

// String returns the identifier the platform is known by ("Darwin", "Linux").
func (p Platform) String() string {
	switch p {
	case Darwin:
		return "Darwin"
	case Linux:
		return "Linux"
	default:
		return "unsupported"
	}
}

// Parse classifies a platform identifier such as "Darwin" or runtime.GOOS.
func Parse(name string) Platform {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "darwin":
		return Darwin
	case "linux":
		return Linux
	default:
		return Unsupported
	}
}

// Current returns the platform of the running process.
func Current() Platform {
	return Parse(goos())
}

// Backend returns the package manager the dependency manifest targets on p,
// or "" when p has none.
func Backend(p Platform) string {
	switch p {
	case Darwin:
		return "brew"
	case Linux, Unsupported:
		return ""
	default:
		return ""
	}
}

// Info describes the detected host
type Info struct {
	Platform  Platform
	OS        string   // darwin, linux, windows, ...
	Arch      string   // amd64, arm64, 386, arm
	Available []string // Package managers found in PATH
	Preferred string   // Manager the manifest targets, if available
}

// Detect detects the current platform and the package managers on PATH
func Detect() *Info {
	info := &Info{
		Platform:  Current(),
		OS:        goos(),
		Arch:      runtime.GOARCH,
		Available: []string{},
	}

	for _, name := range knownManagers {
		if commandExists(name) {
			info.Available = append(info.Available, name)
		}
	}

	if backend := Backend(info.Platform); backend != "" && contains(info.Available, backend) {
		info.Preferred = backend
	}

	return info
}

// String returns a string representation of the platform
func (i *Info) String() string {
	return fmt.Sprintf("%s (%s/%s, available: %v, preferred: %s)",
		i.Platform, i.OS, i.Arch, i.Available, i.Preferred)
}
