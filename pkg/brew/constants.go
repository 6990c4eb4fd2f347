// constants.go
package brew

const (
	// DefaultExecutable is the Homebrew CLI, looked up in PATH
	DefaultExecutable = "brew"

	// InstallURL is where users are sent when Homebrew is missing
	InstallURL = "brew.sh"

	// BackendName is the key used for Homebrew in the dependency manifest
	BackendName = "brew"
)
