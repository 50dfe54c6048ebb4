package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show details of a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	info, err := eng.Info(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(info)
	}

	pkg := info.Package
	PrintSection(pkg.Name)
	if pkg.Description != "" {
		PrintLabelValue("Description", pkg.Description)
	}
	if pkg.Category != "" {
		PrintLabelValue("Category", pkg.Category)
	}
	PrintLabelValue("Available", orDash(pkg.AvailableVersion))
	PrintLabelValue("Installed", orDash(pkg.InstalledVersion))
	PrintLabelValue("Status", status(pkg.Installed, pkg.Upgradable))
	PrintLabelValue("Requires", orDash(strings.Join(info.Requires, " ")))
	PrintLabelValue("Required by", orDash(strings.Join(info.Dependents, " ")))

	if info.ReadmeRequired {
		PrintWarning("The README lists manual steps for this package")
	}

	PrintSubsection("Build order:")
	switch {
	case info.ResolveError != "":
		PrintError(info.ResolveError)
	case len(info.BuildOrder) == 0:
		PrintEmptyState("No prerequisites")
	default:
		PrintNumberedList(info.BuildOrder, 2)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
