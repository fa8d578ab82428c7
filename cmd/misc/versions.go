package misc

import (
	"context"
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
	"mclauncher/internal/utils"
)

var (
	remote   bool
	snapshot bool
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List installed versions",
	Long:  "List versions installed in the game directory. With --remote the remote version manifest is listed instead.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if remote {
			return listRemoteVersions(cmd.Context())
		}
		return listLocalVersions()
	},
}

/**
 *	Fields displayed in list format
 */
type Version_Columns struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ReleaseTime string `json:"release_time"`
	Path        string `json:"path"`
}

func listLocalVersions() error {
	versions, err := root.Launcher().LocalVersions()
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Println("No versions found")
		return nil
	}
	var dataList []*orderedmap.OrderedMap
	for _, v := range versions {
		recordMap, _ := utils.StructToOrderedMap(Version_Columns{
			ID:          v.ID,
			Type:        v.Type,
			ReleaseTime: v.ReleaseTime,
			Path:        v.Path,
		})
		dataList = append(dataList, recordMap)
	}
	utils.PrintFormat(dataList)
	return nil
}

func listRemoteVersions(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	manifest, err := root.Launcher().RemoteVersions(ctx)
	if err != nil {
		return err
	}
	var dataList []*orderedmap.OrderedMap
	for _, v := range manifest.Versions {
		if v.Type != "release" && !snapshot {
			continue
		}
		recordMap, _ := utils.StructToOrderedMap(Version_Columns{
			ID:          v.ID,
			Type:        v.Type,
			ReleaseTime: v.ReleaseTime,
			Path:        v.URL,
		})
		dataList = append(dataList, recordMap)
	}
	utils.PrintFormat(dataList)
	fmt.Printf("latest release: %s, latest snapshot: %s\n", manifest.Latest.Release, manifest.Latest.Snapshot)
	return nil
}

func init() {
	versionsCmd.Flags().SortFlags = false
	versionsCmd.Flags().BoolVarP(&remote, "remote", "r", false, "list the remote version manifest")
	versionsCmd.Flags().BoolVarP(&snapshot, "snapshot", "s", false, "include snapshots and old versions in the remote list")
	root.RootCmd.AddCommand(versionsCmd)

	versionsCmd.Example = `  mclauncher versions
  mclauncher versions --remote`
}
