package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mfeldt/renderbox/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
listen = ":9090"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
redis_db = 2

[defaults]
width = 640.0
formats = ["png", "json"]

[resources.colors]
accent = "#336699"

[resources.fonts.code]
char_width = 8.0
line_height = 18.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Server.Listen)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Defaults.Width != 640 {
		t.Errorf("Width = %v", cfg.Defaults.Width)
	}
	if len(cfg.Defaults.Formats) != 2 {
		t.Errorf("Formats = %v", cfg.Defaults.Formats)
	}
	if cfg.Resources.Colors["accent"] != "#336699" {
		t.Errorf("Colors = %v", cfg.Resources.Colors)
	}
	if f := cfg.Resources.Fonts["code"]; f.CharWidth != 8 || f.LineHeight != 18 {
		t.Errorf("Fonts = %v", cfg.Resources.Fonts)
	}
}

func TestLoadKeepsDefaultsForOmittedSections(t *testing.T) {
	path := writeConfig(t, `[server]
listen = ":7000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Backend = %q, want the default", cfg.Cache.Backend)
	}
	if len(cfg.Defaults.Formats) != 1 || cfg.Defaults.Formats[0] != "png" {
		t.Errorf("Formats = %v, want the default", cfg.Defaults.Formats)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `[server]
listne = ":9090"
`)
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT for misspelled key", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Listen == "" || cfg.Cache.Backend != "file" {
		t.Errorf("Default() = %+v", cfg)
	}
	if cfg.CacheDir() == "" {
		t.Error("CacheDir() should never be empty")
	}
}
