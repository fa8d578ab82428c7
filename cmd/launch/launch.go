package launch

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
)

var oneLine bool

var launchArgsCmd = &cobra.Command{
	Use:   "launch-args <version>",
	Short: "Print the java command line of a version",
	Long:  "Assemble the classpath and render the java command line of a version without starting it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLaunchArgs(args[0])
	},
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
	}
	return s
}

func printLaunchArgs(id string) error {
	v, err := root.LoadVersion(id)
	if err != nil {
		return err
	}
	ctx, cancel := root.Context()
	defer cancel()

	java, args, err := root.Launcher().LaunchArgs(ctx, v)
	if err != nil {
		return err
	}
	if oneLine {
		parts := []string{quote(java)}
		for _, a := range args {
			parts = append(parts, quote(a))
		}
		fmt.Println(strings.Join(parts, " "))
		return nil
	}
	fmt.Println(java)
	for _, a := range args {
		fmt.Println(a)
	}
	return nil
}

func init() {
	launchArgsCmd.Flags().BoolVar(&oneLine, "one-line", false, "print a single quoted shell line")
	root.RootCmd.AddCommand(launchArgsCmd)

	launchArgsCmd.Example = `  mclauncher launch-args 1.20.1
  mclauncher launch-args 1.20.1 --one-line`
}
