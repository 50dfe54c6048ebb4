package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update the local SlackBuild repository",
	Long: `Update the local SlackBuild repository with the package manager's sync
command (sync_cmd in the config file).`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	eng, err := newBackendEngine(settings)
	if err != nil {
		return err
	}

	result, err := eng.Sync(cmd.Context())
	if jsonOutput && result != nil {
		if jerr := outputJSON(result); jerr != nil {
			return jerr
		}
	}
	if err != nil {
		return err
	}

	if !jsonOutput {
		PrintSuccess(fmt.Sprintf("Repository synced with %s", result.Backend))
	}
	return nil
}
