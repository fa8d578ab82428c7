package misc

import (
	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
	"mclauncher/internal/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after defaults, configuration file, MCL_* environment variables and command line flags are applied.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return utils.PrintYaml(root.Config())
	},
}

func init() {
	root.RootCmd.AddCommand(configCmd)

	configCmd.Example = `  mclauncher config
  MCL_DOWNLOAD_WORKERS=16 mclauncher config --dir /tmp/game`
}
