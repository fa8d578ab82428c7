package main

import (
	"os"

	_ "mclauncher/cmd"
	"mclauncher/cmd/root"
)

func main() {
	// server mode also tees logs to stdout
	root.ServerMode = len(os.Args) > 1 && os.Args[1] == "server"

	if err := root.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
