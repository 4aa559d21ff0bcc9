package pipeline

import (
	"github.com/mfeldt/renderbox/pkg/layout"
)

// ComputeLayout resolves frames for a view tree under the root constraint
// taken from the options.
func ComputeLayout(tree *layout.Node, opts Options) (*layout.RenderedNode, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	return layout.Render(tree, opts.Constraint()), nil
}
