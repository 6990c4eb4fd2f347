// internal/cli/info.go
package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/fetchdeps/pkg/execx"
	"github.com/arc-language/fetchdeps/pkg/log"
	"github.com/arc-language/fetchdeps/pkg/platform"
	"github.com/arc-language/fetchdeps/pkg/registry"
)

var infoCmd = &cobra.Command{
	Use:   "info [package]",
	Short: "Show information about a dependency",
	Long:  `Display the manifest entry of a dependency and, where a package manager is available, its installed version.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()

	entry, err := registry.Default().Load(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Package: %s\n", entry.Name)
	if entry.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", entry.Description)
	}
	if len(entry.UsedBy) > 0 {
		fmt.Fprintf(w, "Used by: %s\n", strings.Join(entry.UsedBy, ", "))
	}

	backends := make([]string, 0, len(entry.Backends))
	for backend := range entry.Backends {
		backends = append(backends, backend)
	}
	sort.Strings(backends)
	for _, backend := range backends {
		fmt.Fprintf(w, "Backend %s: %s\n", backend, entry.Backends[backend])
	}

	plat := platform.Current()
	backend := platform.Backend(plat)
	name, ok := entry.Backends[backend]
	if !ok {
		return nil
	}

	pm := platform.ResolveManager(plat, config, execx.NewQuietRunner(), log.Logger)
	if err := pm.Probe(ctx); err != nil {
		log.Debug("probe failed", "err", err)
		fmt.Fprintf(w, "Installed: unknown (%s not available)\n", pm.Name())
		return nil
	}

	pkg, err := pm.Info(ctx, name)
	if err != nil {
		return fmt.Errorf("getting package info: %w", err)
	}
	if pkg.Installed {
		fmt.Fprintf(w, "Installed: %s\n", pkg.Version)
	} else {
		fmt.Fprintf(w, "Installed: no\n")
	}

	return nil
}
