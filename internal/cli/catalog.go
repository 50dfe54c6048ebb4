package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/sbplan/internal/engine"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with catalog snapshots",
	Long: `Work with catalog snapshots.

A snapshot is a YAML or TOML file holding the merged repository and installed
package state. It can be loaded with --catalog instead of the repository.`,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the catalog to a YAML or TOML snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogExport,
}

func init() {
	catalogCmd.AddCommand(catalogExportCmd)
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Export(&engine.ExportRequest{Path: args[0]})
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}
	PrintSuccess(fmt.Sprintf("Exported %s to %s", PrintCount(result.Packages, "package", "packages"), result.Path))
	return nil
}
