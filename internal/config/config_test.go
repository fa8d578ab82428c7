package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launcher.yaml")
	content := `
game:
  directory: /games/mc
  os: darwin
  arch: aarch64
download:
  workers: 3
  timeout: 5s
classpath:
  marker: net/minecraft
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Game.Directory != "/games/mc" {
		t.Errorf("directory = %s", cfg.Game.Directory)
	}
	if cfg.Download.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Download.Workers)
	}
	if cfg.Download.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Download.Timeout)
	}
	if cfg.Download.ProgressEvery != DefaultProgressEvery {
		t.Errorf("progress_every = %d, want default", cfg.Download.ProgressEvery)
	}
	if cfg.Download.AssetBaseUrl != DefaultAssetBaseUrl {
		t.Errorf("asset_base_url = %s", cfg.Download.AssetBaseUrl)
	}
	if cfg.Classpath.Marker != "net/minecraft" {
		t.Errorf("marker = %s", cfg.Classpath.Marker)
	}
	p := cfg.Platform()
	if p.OSName != "osx" || p.Arch != "arm64" {
		t.Errorf("platform = %s, want osx/arm64", p)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MCL_DOWNLOAD_WORKERS", "12")
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	if err := os.WriteFile(path, []byte("download:\n  workers: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Download.Workers != 12 {
		t.Errorf("workers = %d, want env override 12", cfg.Download.Workers)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	if err := os.WriteFile(path, []byte("game: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed config should fail")
	}
}
