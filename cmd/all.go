package cmd

import (
	_ "mclauncher/cmd/check"
	_ "mclauncher/cmd/classpath"
	_ "mclauncher/cmd/install"
	_ "mclauncher/cmd/launch"
	_ "mclauncher/cmd/library"
	_ "mclauncher/cmd/misc"
	_ "mclauncher/cmd/root"
	_ "mclauncher/cmd/server"
	_ "mclauncher/cmd/sync"
)
