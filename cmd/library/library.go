package library

import (
	"mclauncher/cmd/root"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Library operations (list)",
	Long:  `Library operations (list)`,
}

const libraryExample = `  # list libraries of a version
  mclauncher library list 1.20.1
  mclauncher library list 1.20.1 --os osx --arch arm64`

func init() {
	root.RootCmd.AddCommand(libraryCmd)

	libraryCmd.Example = libraryExample
}
