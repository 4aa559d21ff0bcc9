package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
	"github.com/mfeldt/renderbox/pkg/pipeline"
)

// inspectCommand creates the inspect command: parse and lay out a markup
// file, then browse the resolved frames interactively.
func (c *CLI) inspectCommand() *cobra.Command {
	var width, height float64
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [markup file]",
		Short: "Browse the resolved layout of a markup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			res, err := resourcesFromConfig(cfg)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", args[0])
			}

			runner, err := c.newRunner(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Markup:    string(data),
				Width:     width,
				Height:    height,
				Resources: res,
				Logger:    c.Logger,
			}
			tree, err := runner.Parse(cmd.Context(), opts)
			if err != nil {
				return err
			}
			rendered, err := runner.ComputeLayout(cmd.Context(), tree, opts)
			if err != nil {
				return err
			}

			if plain {
				printTree(rendered)
				return nil
			}

			_, err = tea.NewProgram(NewTreeModel(rendered), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "W", 0, "constraint width in pixels (0 = size to content)")
	cmd.Flags().Float64VarP(&height, "height", "H", 0, "constraint height in pixels (0 = size to content)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the tree instead of browsing interactively")

	return cmd
}

// printTree writes the layout as an indented listing, for scripts and
// non-interactive terminals.
func printTree(root *layout.RenderedNode) {
	for _, row := range flattenTree(root) {
		fmt.Println(rowLabel(row))
	}
}
