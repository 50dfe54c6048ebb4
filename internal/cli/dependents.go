package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dependentsCmd = &cobra.Command{
	Use:   "dependents <package>",
	Short: "List the packages that require a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runDependents,
}

func runDependents(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Dependents(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	PrintSection("Packages requiring " + result.Package)
	if len(result.Dependents) == 0 {
		PrintEmptyState("No packages require " + result.Package)
		return nil
	}

	rows := make([][]string, 0, len(result.Dependents))
	for _, pkg := range result.Dependents {
		rows = append(rows, []string{pkg.Name, pkg.Category, status(pkg.Installed, pkg.Upgradable)})
	}
	PrintTable([]string{"PACKAGE", "CATEGORY", "STATUS"}, rows)
	fmt.Fprintln(stdout)
	PrintInfo(PrintCount(len(result.Dependents), "dependent", "dependents"))
	return nil
}
