package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/sbplan/internal/engine"
)

var (
	listInstalled  bool
	listUpgradable bool
	listCategory   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog packages",
	Long: `List catalog packages.

By default every package in the repository is listed. Use --installed or
--upgradable to narrow the listing.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "Only list installed packages")
	listCmd.Flags().BoolVar(&listUpgradable, "upgradable", false, "Only list packages with a newer version available")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only list packages in a category")
}

func runList(cmd *cobra.Command, args []string) error {
	if listInstalled && listUpgradable {
		return errors.New("--installed and --upgradable cannot be combined")
	}

	filter := engine.ListAll
	switch {
	case listInstalled:
		filter = engine.ListInstalled
	case listUpgradable:
		filter = engine.ListUpgradable
	}

	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.List(&engine.ListRequest{Filter: filter, Category: listCategory})
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	if len(result.Packages) == 0 {
		PrintEmptyState("No packages found")
		return nil
	}

	rows := make([][]string, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		rows = append(rows, []string{pkg.Name, pkg.Category, orDash(pkg.InstalledVersion), orDash(pkg.AvailableVersion), status(pkg.Installed, pkg.Upgradable)})
	}
	PrintTable([]string{"PACKAGE", "CATEGORY", "INSTALLED", "AVAILABLE", "STATUS"}, rows)
	fmt.Fprintln(stdout)
	PrintInfo(PrintCount(len(result.Packages), "package", "packages"))
	return nil
}
