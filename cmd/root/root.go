package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mclauncher/internal/config"
	"mclauncher/internal/logger"
	"mclauncher/internal/models"
	"mclauncher/internal/progress"
	"mclauncher/services"
)

var (
	ServerMode bool
	Version    = "dev"

	configFile string
	gameDir    string
	targetOS   string
	targetArch string
	workers    int
	quiet      bool

	appConfig *config.AppConfig
	launcher  *services.Launcher
)

var RootCmd = &cobra.Command{
	Use:   "mclauncher",
	Short: "Game launcher sync engine",
	Long: `mclauncher checks and synchronizes the assets and libraries a game version needs,
verifies their digests and assembles a classpath ready for launch`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRuntime,
}

/**
 * Build configuration, logger and engine before any sub command runs
 * @description
 * - Command line flags override the configuration file and MCL_* variables
 * - The engine is built once here and shared by every command
 */
func setupRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if gameDir != "" {
		cfg.Game.Directory = gameDir
	}
	if targetOS != "" {
		cfg.Game.OS = targetOS
	}
	if targetArch != "" {
		cfg.Game.Arch = targetArch
	}
	if workers > 0 {
		cfg.Download.Workers = workers
	}
	logger.InitLogger(&cfg.Log, ServerMode)

	appConfig = cfg
	launcher = services.NewLauncher(cfg, nil)
	logger.Debugf("game directory: %s, platform: %s", cfg.Game.Directory, launcher.Platform())
	return nil
}

func Config() *config.AppConfig {
	return appConfig
}

func Launcher() *services.Launcher {
	return launcher
}

// LoadVersion reads the local descriptor of the version named on the command line.
func LoadVersion(id string) (*models.VersionDescriptor, error) {
	v, err := launcher.LoadVersion(id)
	if err != nil {
		return nil, fmt.Errorf("version '%s' is not installed: %w", id, err)
	}
	return v, nil
}

// Context is cancelled on the first interrupt.
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

/**
 * Progress reporter printing to stderr
 * @returns {progress.Reporter} Nop reporter when --quiet is set
 */
func Progress() progress.Reporter {
	if quiet {
		return progress.Nop
	}
	return progress.Func(func(msg string, pct int) {
		if pct == progress.Indeterminate {
			fmt.Fprintf(os.Stderr, "[ -- ] %s\n", msg)
			return
		}
		fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", pct, msg)
	})
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "configuration file (default: launcher.yaml in . or ~/.mclauncher)")
	flags.StringVarP(&gameDir, "dir", "d", "", "game directory")
	flags.StringVar(&targetOS, "os", "", "target os name (windows/osx/linux)")
	flags.StringVar(&targetArch, "arch", "", "target architecture (x86/x64/arm64)")
	flags.IntVarP(&workers, "workers", "w", 0, "maximum concurrent downloads")
	flags.BoolVarP(&quiet, "quiet", "q", false, "do not print progress")
}
