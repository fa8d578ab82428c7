package sync

import (
	"context"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
	"mclauncher/internal/models"
	"mclauncher/internal/progress"
	"mclauncher/internal/utils"
)

var force bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download missing or corrupt objects of a local version",
	Long:  `Download missing or corrupt objects (assets, libraries, main archive) of a local version`,
}

const syncExample = `  mclauncher sync all 1.20.1
  mclauncher sync assets 1.20.1 -w 16
  mclauncher sync libraries 1.20.1 --force`

type syncFunc func(ctx context.Context, v *models.VersionDescriptor, rep progress.Reporter) (*models.SyncResult, error)

func newSyncCmd(use, short string, fn syncFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <version>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(args[0], fn)
		},
	}
}

/**
 *	Fields displayed in list format
 */
type Failure_Columns struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Error string `json:"error"`
}

/**
 * Synchronize one part of a version and print the outcome
 * @param {string} id - Version id
 * @param {syncFunc} fn - Launcher operation to run
 * @returns {error} Error when the version is unknown or some objects failed
 * @description
 * - Interrupting the command cancels outstanding downloads; finished files stay valid
 */
func runSync(id string, fn syncFunc) error {
	v, err := root.LoadVersion(id)
	if err != nil {
		return err
	}
	ctx, cancel := root.Context()
	defer cancel()

	result, err := fn(ctx, v, root.Progress())
	if err != nil {
		return err
	}
	var dataList []*orderedmap.OrderedMap
	for _, it := range result.Failures() {
		recordMap, _ := utils.StructToOrderedMap(Failure_Columns{Name: it.Task.Name, State: string(it.State), Error: it.Error})
		dataList = append(dataList, recordMap)
	}
	utils.PrintFormat(dataList)
	fmt.Println(result.Summary())
	if !result.Complete() {
		return fmt.Errorf("synchronization of '%s' is incomplete", id)
	}
	return nil
}

func init() {
	syncCmd.AddCommand(newSyncCmd("assets", "Synchronize the asset index and asset objects",
		func(ctx context.Context, v *models.VersionDescriptor, rep progress.Reporter) (*models.SyncResult, error) {
			return root.Launcher().SyncAssets(ctx, v, rep)
		}))
	librariesCmd := newSyncCmd("libraries", "Synchronize the libraries required on the target platform",
		func(ctx context.Context, v *models.VersionDescriptor, rep progress.Reporter) (*models.SyncResult, error) {
			return root.Launcher().SyncLibraries(ctx, v, force, rep)
		})
	librariesCmd.Flags().BoolVarP(&force, "force", "f", false, "refetch libraries that carry no digest")
	syncCmd.AddCommand(librariesCmd)
	syncCmd.AddCommand(newSyncCmd("client", "Synchronize the main archive",
		func(ctx context.Context, v *models.VersionDescriptor, rep progress.Reporter) (*models.SyncResult, error) {
			return root.Launcher().SyncClient(ctx, v, rep)
		}))
	syncCmd.AddCommand(newSyncCmd("all", "Synchronize main archive, libraries and assets",
		func(ctx context.Context, v *models.VersionDescriptor, rep progress.Reporter) (*models.SyncResult, error) {
			return root.Launcher().SyncAll(ctx, v, rep)
		}))

	root.RootCmd.AddCommand(syncCmd)
	syncCmd.Example = syncExample
}
