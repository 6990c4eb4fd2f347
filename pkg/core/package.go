// pkg/core/package.go
package core

// Package is a package as seen by one backend
type Package struct {
	Name      string // Backend-specific package name
	Version   string // Installed version, empty if not installed
	Backend   string // Which backend manages this package
	Installed bool   // Whether the package is installed
}
