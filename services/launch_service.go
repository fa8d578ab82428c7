package services

import (
	"context"
	"path/filepath"

	"mclauncher/internal/classpath"
	"mclauncher/internal/models"
	"mclauncher/internal/utils"
)

const defaultMainClass = "net.minecraft.client.main.Main"

/**
 * Build the execution classpath of a version
 * @param {string} root - Content store root; empty uses the configured game directory
 * @returns {[]string} Absolute paths, main archive first, then declaration order
 * @returns {error} *models.IncompleteClasspathError after one failed recovery
 */
func (l *Launcher) BuildClasspath(ctx context.Context, v *models.VersionDescriptor, root string) ([]string, error) {
	if root == "" {
		root = l.store.Root()
	}
	return l.assembler.Assemble(ctx, v, root)
}

// LaunchData is the template data for launch arguments.
type LaunchData struct {
	Version     string
	VersionType string
	MainClass   string
	MemoryMB    int
	Classpath   string
	GameDir     string
	AssetsDir   string
	AssetIndex  string
	NativesDir  string
	Username    string
}

var launchArgTemplates = []string{
	"-Xmx{{.MemoryMB}}M",
	"-Xms{{.MemoryMB}}M",
	"-Djava.library.path={{.NativesDir}}",
	"-cp", "{{.Classpath}}",
	"{{.MainClass}}",
	"--version", "{{.Version}}",
	"--gameDir", "{{.GameDir}}",
	"--assetsDir", "{{.AssetsDir}}",
	"--assetIndex", "{{.AssetIndex}}",
	"--uuid", "00000000-0000-0000-0000-000000000000",
	"--accessToken", "0",
	"--userType", "mojang",
	"--versionType", "{{.VersionType}}",
	"--username", "{{.Username}}",
}

/**
 * Render the java command line of a version without running it
 * @returns {string} Java executable
 * @returns {[]string} Arguments; options whose value is empty are dropped
 * @returns {error} Classpath errors, or template errors from launch.extra_args
 */
func (l *Launcher) LaunchArgs(ctx context.Context, v *models.VersionDescriptor) (string, []string, error) {
	paths, err := l.BuildClasspath(ctx, v, "")
	if err != nil {
		return "", nil, err
	}
	launch := l.cfg.Launch
	data := LaunchData{
		Version:     v.ID,
		VersionType: v.Type,
		MainClass:   v.MainClass,
		MemoryMB:    launch.MemoryMB,
		Classpath:   classpath.Join(paths, l.cfg.Classpath.Separator),
		GameDir:     l.store.Root(),
		AssetsDir:   l.store.AssetsDir(),
		AssetIndex:  v.AssetIndexID(),
		NativesDir:  filepath.Join(l.store.VersionDir(v.ID), "natives"),
		Username:    launch.Username,
	}
	if launch.MainClass != "" {
		data.MainClass = launch.MainClass
	}
	if data.MainClass == "" {
		data.MainClass = defaultMainClass
	}
	if data.VersionType == "" {
		data.VersionType = "release"
	}
	if data.MemoryMB <= 0 {
		data.MemoryMB = 2048
	}
	java := launch.Java
	if java == "" {
		java = "java"
	}

	templates := append(append([]string{}, launchArgTemplates...), launch.ExtraArgs...)
	cmd, args, err := utils.GetCommandLine(java, templates, data)
	if err != nil {
		return "", nil, err
	}
	return cmd, utils.DropEmptyOptions(args), nil
}
