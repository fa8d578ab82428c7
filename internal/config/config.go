package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"mclauncher/internal/env"
	"mclauncher/internal/models"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. ":8080")
 * @property {string} mode - Application mode (debug/release/test)
 * @property {time.Duration} monitorInterval - Period of the background version check, 0 disables it
 */
type ServerConfig struct {
	Address         string        `mapstructure:"address" yaml:"address"`
	Mode            string        `mapstructure:"mode" yaml:"mode"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval" yaml:"monitor_interval"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (trace/debug/info/warn/error)
 * @property {string} path - Log file path, "console" or empty for stderr
 */
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Path  string `mapstructure:"path" yaml:"path"`
}

/**
 * Game directory and target platform
 * @property {string} directory - Root of the content store
 * @property {string} os - Target os; empty means the running os
 * @property {string} arch - Target architecture; empty means the running one
 */
type GameConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	OS        string `mapstructure:"os" yaml:"os"`
	Arch      string `mapstructure:"arch" yaml:"arch"`
	OSVersion string `mapstructure:"os_version" yaml:"os_version"`
}

type DownloadConfig struct {
	Workers            int           `mapstructure:"workers" yaml:"workers"`
	ProgressEvery      int           `mapstructure:"progress_every" yaml:"progress_every"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	AssetBaseUrl       string        `mapstructure:"asset_base_url" yaml:"asset_base_url"`
	LibraryBaseUrl     string        `mapstructure:"library_base_url" yaml:"library_base_url"`
	ManifestUrl        string        `mapstructure:"manifest_url" yaml:"manifest_url"`
	UserAgent          string        `mapstructure:"user_agent" yaml:"user_agent"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// ClasspathConfig: marker is the path fragment that must appear in an assembled classpath.
type ClasspathConfig struct {
	Marker    string `mapstructure:"marker" yaml:"marker"`
	Separator string `mapstructure:"separator" yaml:"separator"`
}

type LaunchConfig struct {
	Java      string   `mapstructure:"java" yaml:"java"`
	MemoryMB  int      `mapstructure:"memory_mb" yaml:"memory_mb"`
	MainClass string   `mapstructure:"main_class" yaml:"main_class"`
	Username  string   `mapstructure:"username" yaml:"username"`
	ExtraArgs []string `mapstructure:"extra_args" yaml:"extra_args"`
}

type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Game      GameConfig      `mapstructure:"game" yaml:"game"`
	Download  DownloadConfig  `mapstructure:"download" yaml:"download"`
	Classpath ClasspathConfig `mapstructure:"classpath" yaml:"classpath"`
	Launch    LaunchConfig    `mapstructure:"launch" yaml:"launch"`
}

const (
	DefaultWorkers        = 8
	DefaultProgressEvery  = 5
	DefaultAssetBaseUrl   = "https://resources.download.minecraft.net"
	DefaultLibraryBaseUrl = "https://libraries.minecraft.net"
	DefaultManifestUrl    = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	DefaultMarker         = "com/mojang"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1:8765")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.monitor_interval", 10*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "console")
	v.SetDefault("game.directory", env.GameDir)
	v.SetDefault("game.os", "")
	v.SetDefault("game.arch", "")
	v.SetDefault("game.os_version", "")
	v.SetDefault("download.workers", DefaultWorkers)
	v.SetDefault("download.progress_every", DefaultProgressEvery)
	v.SetDefault("download.timeout", 30*time.Second)
	v.SetDefault("download.asset_base_url", DefaultAssetBaseUrl)
	v.SetDefault("download.library_base_url", DefaultLibraryBaseUrl)
	v.SetDefault("download.manifest_url", DefaultManifestUrl)
	v.SetDefault("download.user_agent", "mclauncher")
	v.SetDefault("download.insecure_skip_verify", false)
	v.SetDefault("classpath.marker", DefaultMarker)
	v.SetDefault("classpath.separator", "")
	v.SetDefault("launch.java", "java")
	v.SetDefault("launch.memory_mb", 2048)
	v.SetDefault("launch.main_class", "")
	v.SetDefault("launch.username", "Player")
	v.SetDefault("launch.extra_args", []string{})
}

/**
 * Load application configuration
 * @param {string} path - Explicit YAML file; empty searches launcher.yaml in "." and ~/.mclauncher
 * @returns {*AppConfig} Configuration with defaults applied
 * @description
 * - A missing file is not an error, a malformed one is
 * - MCL_* environment variables override file values (MCL_DOWNLOAD_WORKERS=4)
 * - Uses a private viper instance, nothing is registered globally
 */
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("MCL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("launcher")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(env.GetConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config error: %v", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %v", err)
	}
	return collectConfig(&cfg), nil
}

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Download.Workers <= 0 {
		cfg.Download.Workers = DefaultWorkers
	}
	if cfg.Download.ProgressEvery <= 0 {
		cfg.Download.ProgressEvery = DefaultProgressEvery
	}
	if cfg.Classpath.Marker == "" {
		cfg.Classpath.Marker = DefaultMarker
	}
	if cfg.Game.Directory == "" {
		cfg.Game.Directory = env.GameDir
	}
	return cfg
}

/**
 * Resolve the target platform
 * @returns {models.Platform} Configured os/arch, falling back to the running platform per field
 */
func (c *AppConfig) Platform() models.Platform {
	p := env.DetectPlatform()
	if c.Game.OS != "" {
		p.OSName = c.Game.OS
	}
	if c.Game.Arch != "" {
		p.Arch = c.Game.Arch
	}
	p.OSVersion = c.Game.OSVersion
	return p.Normalize()
}
