package env

import (
	"os"
	"path/filepath"
	"runtime"

	"mclauncher/internal/models"
)

var ListenPort int = 0

// (default: %APPDATA%/.minecraft on Windows, ~/Library/Application Support/minecraft on macOS, $HOME/.minecraft elsewhere)
var GameDir string = GetGameDir()

/**
 * Get default game directory path
 * @returns {string} Returns the platform's conventional game directory
 */
func GetGameDir() string {
	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".minecraft")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", ".minecraft")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(homeDir, ".minecraft")
	}
}

// GetConfigDir is where launcher.yaml is looked up after the working directory.
func GetConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".mclauncher")
}

/**
 * Detect the platform the process runs on
 * @returns {models.Platform} Normalized os name and architecture
 * @description
 * - Only callers (CLI, HTTP server) use this; the engine takes the
 *   platform as an explicit argument
 * - OS version is left empty, so version predicates in rules never match
 *   unless configured
 */
func DetectPlatform() models.Platform {
	p := models.Platform{OSName: runtime.GOOS, Arch: runtime.GOARCH}
	return p.Normalize()
}
