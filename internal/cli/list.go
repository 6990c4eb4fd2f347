// internal/cli/list.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aquasecurity/table"
	"github.com/liamg/tml"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arc-language/fetchdeps/pkg/core"
	"github.com/arc-language/fetchdeps/pkg/execx"
	"github.com/arc-language/fetchdeps/pkg/log"
	"github.com/arc-language/fetchdeps/pkg/platform"
	"github.com/arc-language/fetchdeps/pkg/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the dependencies for this platform",
	Long: `List the packages fetchdeps installs on this platform, in install order,
together with their installed version. Nothing is installed.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// packageStatus is one row of the list output
type packageStatus struct {
	Entry   registry.Entry
	Name    string // backend package name
	Status  string // installed, missing or unknown
	Version string
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()

	info := platform.Detect()
	log.Debug("detected platform", "info", info.String())

	backend := platform.Backend(info.Platform)
	if backend == "" {
		fmt.Fprintf(w, "Platform: %s/%s\n\nNo dependencies are declared for this platform.\n", info.OS, info.Arch)
		return nil
	}

	pm := platform.ResolveManager(info.Platform, config, execx.NewQuietRunner(), log.Logger)
	rows := collectStatus(ctx, pm, registry.Default().Packages(backend))

	fmt.Fprintf(w, "Platform: %s/%s\nBackend:  %s\n\n", info.OS, info.Arch, backend)
	renderStatus(w, rows, isTerminalWriter(w))
	return nil
}

// collectStatus asks pm about every entry. When the package manager cannot be
// probed the status of every package is unknown.
func collectStatus(ctx context.Context, pm core.PackageManager, entries []registry.Entry) []packageStatus {
	probeErr := pm.Probe(ctx)
	if probeErr != nil {
		log.Warnf("%s is not available, package status unknown", pm.Name())
		log.Debug("probe failed", "err", probeErr)
	}

	rows := make([]packageStatus, 0, len(entries))
	for _, entry := range entries {
		row := packageStatus{
			Entry:  entry,
			Name:   entry.Backends[pm.Name()],
			Status: "unknown",
		}

		if probeErr == nil {
			pkg, err := pm.Info(ctx, row.Name)
			switch {
			case err != nil:
				log.Debug("querying package", "package", row.Name, "err", err)
			case pkg.Installed:
				row.Status = "installed"
				row.Version = pkg.Version
			default:
				row.Status = "missing"
			}
		}

		rows = append(rows, row)
	}
	return rows
}

func renderStatus(w io.Writer, rows []packageStatus, isTerminal bool) {
	t := table.New(w)
	if isTerminal {
		t.SetHeaderStyle(table.StyleBold)
		t.SetLineStyle(table.StyleDim)
		if w == os.Stdout {
			if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
				t.SetAvailableWidth(width)
			}
		}
	}

	t.SetHeaders("#", "Package", "Install name", "Used by", "Status", "Version")
	for i, row := range rows {
		status := row.Status
		if isTerminal {
			status = colorizeStatus(status)
		}
		t.AddRow(
			fmt.Sprintf("%d", i+1),
			row.Entry.Name,
			row.Name,
			strings.Join(row.Entry.UsedBy, ", "),
			status,
			row.Version,
		)
	}
	t.Render()
}

func colorizeStatus(status string) string {
	switch status {
	case "installed":
		return tml.Sprintf("<green>%s</green>", status)
	case "missing":
		return tml.Sprintf("<red>%s</red>", status)
	default:
		return tml.Sprintf("<yellow>%s</yellow>", status)
	}
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
