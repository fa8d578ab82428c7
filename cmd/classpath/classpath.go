package classpath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
	cp "mclauncher/internal/classpath"
	"mclauncher/internal/models"
)

var lines bool

var classpathCmd = &cobra.Command{
	Use:   "classpath <version>",
	Short: "Print the execution classpath of a version",
	Long:  "Print the execution classpath of a version: main archive first, then libraries in declaration order. Missing libraries are synchronized once before giving up.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printClasspath(args[0])
	},
}

func printClasspath(id string) error {
	v, err := root.LoadVersion(id)
	if err != nil {
		return err
	}
	ctx, cancel := root.Context()
	defer cancel()

	paths, err := root.Launcher().BuildClasspath(ctx, v, "")
	if err != nil {
		var ice *models.IncompleteClasspathError
		if errors.As(err, &ice) && len(ice.Missing) > 0 {
			return fmt.Errorf("%s\nmissing:\n  %s", ice.Reason, strings.Join(ice.Missing, "\n  "))
		}
		return err
	}
	if lines {
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	}
	fmt.Println(cp.Join(paths, root.Config().Classpath.Separator))
	return nil
}

func init() {
	classpathCmd.Flags().BoolVarP(&lines, "lines", "l", false, "print one entry per line")
	root.RootCmd.AddCommand(classpathCmd)

	classpathCmd.Example = `  mclauncher classpath 1.20.1
  mclauncher classpath 1.20.1 --lines`
}
