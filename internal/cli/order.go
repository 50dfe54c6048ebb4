package cli

import (
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order <package>",
	Short: "Show the build order of a package",
	Long: `Show the build order of a package.

Prerequisites are listed in the order they have to be built, followed by the
package itself. Installed prerequisites are included.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrder,
}

func runOrder(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Order(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	PrintSection("Build order for " + result.Package)
	rows := make([][]string, 0, len(result.Order))
	for _, pkg := range result.Order {
		rows = append(rows, []string{pkg.Name, pkg.AvailableVersion, status(pkg.Installed, pkg.Upgradable)})
	}
	PrintTable([]string{"PACKAGE", "VERSION", "STATUS"}, rows)
	return nil
}

// status describes the installed state of a package.
func status(installed, upgradable bool) string {
	switch {
	case upgradable:
		return "upgradable"
	case installed:
		return "installed"
	default:
		return "-"
	}
}
