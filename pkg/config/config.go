// Package config loads renderbox configuration from TOML files.
//
// Configuration is optional everywhere: the zero value of every section
// is a working default, and CLI flags override whatever the file says.
// The default search path is $XDG_CONFIG_HOME/renderbox/config.toml with
// a fallback to ~/.config/renderbox/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mfeldt/renderbox/pkg/errors"
)

// Config is the root configuration document.
type Config struct {
	Server    Server    `toml:"server"`
	Cache     Cache     `toml:"cache"`
	Defaults  Defaults  `toml:"defaults"`
	Resources Resources `toml:"resources"`
}

// Server configures the HTTP API.
type Server struct {
	// Listen is the address the serve command binds to.
	Listen string `toml:"listen"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	// Backend is "file", "redis", or "null". Empty means "file".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty picks a per-user default.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port of the Redis backend.
	RedisAddr string `toml:"redis_addr"`

	// RedisDB selects the Redis database number.
	RedisDB int `toml:"redis_db"`
}

// Defaults are applied to render requests that do not specify them.
type Defaults struct {
	// Width and Height bound the root constraint; 0 leaves the axis
	// unconstrained.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// Formats lists the artifacts to produce, e.g. ["png", "json"].
	Formats []string `toml:"formats"`
}

// Resources declares named colors and fonts merged into every parsed
// document's resource tables. Document-local definitions win.
type Resources struct {
	// Colors maps a resource name to a hex color like "#336699".
	Colors map[string]string `toml:"colors"`

	// Fonts maps a resource name to fixed font metrics.
	Fonts map[string]Font `toml:"fonts"`
}

// Font is a fixed monospace metric pair.
type Font struct {
	CharWidth  float64 `toml:"char_width"`
	LineHeight float64 `toml:"line_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{Listen: ":8080"},
		Cache:  Cache{Backend: "file"},
		Defaults: Defaults{
			Formats: []string{"png"},
		},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file at the default path is not an error; a missing file at
// an explicitly given path is.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config key: %s", undec[0].String())
	}
	return cfg, nil
}

// LoadDefault loads the config from the standard location, falling back
// to the built-in defaults when no file exists.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "renderbox", "config.toml"), nil
}

// CacheDir returns the configured file cache directory, or the per-user
// default when unset.
func (c *Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".renderbox-cache"
	}
	return filepath.Join(dir, "renderbox")
}
