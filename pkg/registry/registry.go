// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed deps.toml
var defaultManifest []byte

// Entry represents a single [[package]] table of the manifest
type Entry struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	UsedBy      []string          `toml:"used_by"`
	Backends    map[string]string `toml:"backends"`
}

type manifest struct {
	Packages []Entry `toml:"package"`
}

// Registry is the ordered, read-only list of dependencies
type Registry struct {
	entries []Entry
	byName  map[string]int
}

// Default returns the registry built from the embedded deps.toml
func Default() *Registry {
	r, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("registry: embedded manifest: %v", err))
	}
	return r
}

// Parse decodes a TOML manifest. Package names must be present and unique.
func Parse(data []byte) (*Registry, error) {
	var m manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to parse manifest: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("registry: unknown manifest key '%s'", undecoded[0])
	}

	r := &Registry{
		entries: m.Packages,
		byName:  make(map[string]int, len(m.Packages)),
	}
	for i, entry := range m.Packages {
		if entry.Name == "" {
			return nil, fmt.Errorf("registry: package #%d has no name", i+1)
		}
		if _, dup := r.byName[entry.Name]; dup {
			return nil, fmt.Errorf("registry: package '%s' is declared twice", entry.Name)
		}
		r.byName[entry.Name] = i
	}

	return r, nil
}

// Load returns the entry for a canonical package name
func (r *Registry) Load(name string) (*Entry, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("registry: package '%s' not found", name)
	}
	entry := r.entries[i]
	return &entry, nil
}

// Resolve takes a canonical package name and a backend,
// returns the backend-specific package name.
func (r *Registry) Resolve(name string, backend string) (string, error) {
	entry, err := r.Load(name)
	if err != nil {
		return "", err
	}

	pkgName, ok := entry.Backends[backend]
	if !ok {
		return "", fmt.Errorf("registry: package '%s' has no entry for backend '%s'", name, backend)
	}

	return pkgName, nil
}

// Packages returns the entries installable with backend, in manifest order.
func (r *Registry) Packages(backend string) []Entry {
	var out []Entry
	for _, entry := range r.entries {
		if _, ok := entry.Backends[backend]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// All returns every entry in manifest order
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
