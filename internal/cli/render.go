package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (or base path for multiple formats)
	formats []string
	width   float64 // root constraint width in pixels, 0 for unbounded
	height  float64 // root constraint height in pixels, 0 for unbounded
	noCache bool
	refresh bool // bypass the parse cache
}

// renderCommand creates the render command for turning markup files into
// image artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [markup file]",
		Short: "Render a view markup file to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), b64, json (comma-separated)")
	cmd.Flags().Float64VarP(&opts.width, "width", "W", 0, "constraint width in pixels (0 = size to content)")
	cmd.Flags().Float64VarP(&opts.height, "height", "H", 0, "constraint height in pixels (0 = size to content)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-parse even when a cached tree exists")

	return cmd
}

// runRender executes the full pipeline for a markup file and writes the
// requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	res, err := resourcesFromConfig(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Markup:    string(data),
		Width:     opts.width,
		Height:    opts.height,
		Formats:   opts.formats,
		Refresh:   opts.refresh,
		Resources: res,
		Logger:    c.Logger,
	}
	applyDefaults(&popts, cfg.Defaults)
	if len(popts.Formats) == 0 {
		popts.Formats = append([]string(nil), pipeline.DefaultFormats...)
	}
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", input))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %s", errors.UserMessage(err)))
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s (%.0fx%.0f)", input, result.Layout.Frame.Width, result.Layout.Frame.Height)
	printStats(result.Stats.NodeCount, result.CacheInfo.RenderHit)

	for _, format := range popts.Formats {
		path := outputPath(opts.output, input, format, len(popts.Formats) > 1)
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		printFile(path)
	}

	return nil
}

// outputPath derives the artifact path for one format. With a single
// format the explicit output path wins unmodified; with several, each
// artifact gets the format as extension on the shared base.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
