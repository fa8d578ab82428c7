package install

import (
	"fmt"

	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
)

var withAll bool

var installCmd = &cobra.Command{
	Use:   "install <version>",
	Short: "Install a version from the remote version manifest",
	Long:  "Download the descriptor and main archive of a version listed in the remote version manifest. With --all the libraries and assets are synchronized as well.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return installVersion(args[0])
	},
}

/**
 * Install a version and optionally everything it needs
 * @param {string} id - Version id in the remote manifest
 * @returns {error} Error when the version is unknown or the download is incomplete
 */
func installVersion(id string) error {
	ctx, cancel := root.Context()
	defer cancel()

	l := root.Launcher()
	v, result, err := l.InstallVersion(ctx, id, root.Progress())
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", id, result.Summary())
	if !result.Complete() {
		return fmt.Errorf("main archive of '%s' is incomplete", id)
	}
	if !withAll {
		return nil
	}
	result, err = l.SyncAll(ctx, v, root.Progress())
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", id, result.Summary())
	if !result.Complete() {
		return fmt.Errorf("synchronization of '%s' is incomplete", id)
	}
	return nil
}

func init() {
	installCmd.Flags().BoolVarP(&withAll, "all", "a", false, "synchronize libraries and assets too")
	root.RootCmd.AddCommand(installCmd)

	installCmd.Example = `  mclauncher install 1.20.1
  mclauncher install 1.20.1 --all -w 16`
}
