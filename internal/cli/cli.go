// Package cli implements the renderbox command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mfeldt/renderbox/pkg/buildinfo"
	"github.com/mfeldt/renderbox/pkg/cache"
	"github.com/mfeldt/renderbox/pkg/config"
	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
	"github.com/mfeldt/renderbox/pkg/markup"
	"github.com/mfeldt/renderbox/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "renderbox"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value; empty means the default
	// location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Renderbox renders XML view markup to PNG images",
		Long:         `Renderbox is a headless view renderer: it parses XML view markup, computes a frame for every view under a root constraint, and rasterizes the result to deterministic PNG images.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <user config dir>/renderbox/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.daemonCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration from --config or the default path.
// A missing default config is not an error.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache builds the cache backend named by the configuration.
func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "null":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
	case "", "file":
		return cache.NewFileCache(cfg.CacheDir())
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Cache.Backend)
}

// resourcesFromConfig builds the shared resource table from configured
// colors and fonts, layered over the builtins.
func resourcesFromConfig(cfg *config.Config) (*markup.Resources, error) {
	res := markup.NewResources()
	for name, hex := range cfg.Resources.Colors {
		color, err := markup.ParseHexColor(hex)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "config color %q", name)
		}
		if err := res.DefineColor(name, color); err != nil {
			return nil, err
		}
	}
	for name, f := range cfg.Resources.Fonts {
		metrics := layout.FontMetrics{CharWidth: f.CharWidth, LineHeight: f.LineHeight}
		if err := res.DefineFont(name, metrics); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// applyDefaults fills unset request options from the configured
// defaults. Explicit request values always win; a zero width or height
// stays unconstrained only if the config leaves it unset too.
func applyDefaults(opts *pipeline.Options, d config.Defaults) {
	if opts.Width == 0 {
		opts.Width = d.Width
	}
	if opts.Height == 0 {
		opts.Height = d.Height
	}
	if len(opts.Formats) == 0 {
		opts.Formats = append([]string(nil), d.Formats...)
	}
}

// parseFormats parses a comma-separated format string into a slice.
// Empty input means no explicit choice, so configured defaults apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
