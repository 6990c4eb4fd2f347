// pkg/platform/utils.go
package platform

import (
	"os/exec"
)

// knownManagers are the executables Detect looks for, in reporting order.
var knownManagers = []string{"brew", "apt-get", "dnf", "pacman", "apk", "zypper", "nix"}

var lookPath = exec.LookPath

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := lookPath(cmd)
	return err == nil
}

// contains checks if a string slice contains a value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
