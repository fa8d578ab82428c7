package library

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
	"mclauncher/internal/utils"
)

var listCmd = &cobra.Command{
	Use:   "list <version>",
	Short: "List library declarations of a version",
	Long:  "List every library declaration of a version with its rule decision on the target platform, the locator strategy, the local path and whether a valid copy is present.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listLibraries(args[0])
	},
}

/**
 *	Fields displayed in list format
 */
type Library_Columns struct {
	Name     string `json:"name"`
	Included string `json:"included"`
	Strategy string `json:"strategy"`
	Path     string `json:"path"`
	Present  string `json:"present"`
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func listLibraries(id string) error {
	v, err := root.LoadVersion(id)
	if err != nil {
		return err
	}
	libs := root.Launcher().Libraries(v)
	if len(libs) == 0 {
		fmt.Println("No libraries found")
		return nil
	}
	var dataList []*orderedmap.OrderedMap
	for _, lib := range libs {
		row := Library_Columns{
			Name:     lib.Name,
			Included: yesNo(lib.Included),
			Strategy: string(lib.Strategy),
			Path:     lib.Path,
			Present:  yesNo(lib.Present),
		}
		recordMap, _ := utils.StructToOrderedMap(row)
		dataList = append(dataList, recordMap)
	}

	utils.PrintFormat(dataList)
	return nil
}

func init() {
	libraryCmd.AddCommand(listCmd)
}
