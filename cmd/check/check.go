package check

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
	"mclauncher/internal/models"
	"mclauncher/internal/utils"
)

var checkCmd = &cobra.Command{
	Use:   "check <version>",
	Short: "Check integrity of a local version",
	Long:  "Check the main archive, every library required on the target platform and every asset object of a local version. Nothing is downloaded.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkVersion(args[0])
	},
}

/**
 *	Fields displayed in list format
 */
type Problem_Columns struct {
	Object string `json:"object"`
	State  string `json:"state"`
}

/**
 * Check a version and print its problems
 * @param {string} id - Version id
 * @returns {error} Error when the version is unknown or incomplete
 */
func checkVersion(id string) error {
	v, err := root.LoadVersion(id)
	if err != nil {
		return err
	}
	report := root.Launcher().Check(v)
	printReport(report)
	if !report.OK {
		return fmt.Errorf("version '%s' is incomplete", id)
	}
	return nil
}

func printReport(report *models.IntegrityReport) {
	var dataList []*orderedmap.OrderedMap
	for _, name := range report.Missing {
		recordMap, _ := utils.StructToOrderedMap(Problem_Columns{Object: name, State: "missing"})
		dataList = append(dataList, recordMap)
	}
	for _, name := range report.Corrupt {
		recordMap, _ := utils.StructToOrderedMap(Problem_Columns{Object: name, State: "corrupt"})
		dataList = append(dataList, recordMap)
	}
	utils.PrintFormat(dataList)
	fmt.Printf("%s: %s\n", report.VersionID, report.Summary)
}

func init() {
	root.RootCmd.AddCommand(checkCmd)

	checkCmd.Example = `  mclauncher check 1.20.1
  mclauncher check 1.20.1 --os windows --arch x64`
}
