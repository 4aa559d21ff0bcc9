package pipeline

import (
	"github.com/mfeldt/renderbox/pkg/layout"
	"github.com/mfeldt/renderbox/pkg/markup"
)

// Parse turns view markup into a view tree.
func Parse(opts Options) (*layout.Node, error) {
	return markup.Parse([]byte(opts.Markup), opts.Resources)
}
