package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeldt/renderbox/pkg/config"
	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/markup"
	"github.com/mfeldt/renderbox/pkg/pipeline"
	"github.com/mfeldt/renderbox/pkg/wire"
)

// daemonCommand creates the daemon command: a framed request/response
// loop over stdin/stdout for embedding renderbox in another process.
func (c *CLI) daemonCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Serve render requests over stdin/stdout",
		Long: `Daemon mode reads length-prefixed JSON render requests from stdin and
writes length-prefixed JSON responses to stdout. The stream stays open
until stdin is closed, so a parent process can issue many requests
without paying process startup per render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			res, err := resourcesFromConfig(cfg)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			handler := daemonHandler(runner, res, cfg.Defaults)
			return wire.Serve(cmd.Context(), os.Stdin, os.Stdout, handler, c.Logger)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the pipeline cache")

	return cmd
}

// daemonHandler turns one framed request into one framed response. The
// request body is pipeline options; the response mirrors the HTTP API.
func daemonHandler(runner *pipeline.Runner, res *markup.Resources, defaults config.Defaults) wire.Handler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var opts pipeline.Options
		if err := json.Unmarshal(payload, &opts); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
		applyDefaults(&opts, defaults)
		opts.Resources = res

		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return nil, err
		}

		resp := renderResponse{
			TreeHash:  result.TreeHash,
			Width:     result.Layout.Frame.Width,
			Height:    result.Layout.Frame.Height,
			NodeCount: result.Stats.NodeCount,
			Cached:    result.CacheInfo.RenderHit,
			Artifacts: encodeArtifacts(result.Artifacts),
		}
		return json.Marshal(resp)
	}
}
