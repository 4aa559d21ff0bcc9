package pipeline

import (
	"encoding/json"

	"github.com/mfeldt/renderbox/pkg/cache"
	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
	"github.com/mfeldt/renderbox/pkg/markup"
)

// MarshalTree serializes a parsed view tree for caching.
func MarshalTree(tree *layout.Node) ([]byte, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize tree")
	}
	return data, nil
}

// UnmarshalTree restores a cached view tree.
func UnmarshalTree(data []byte) (*layout.Node, error) {
	var tree layout.Node
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "deserialize tree")
	}
	return &tree, nil
}

// MarshalLayout serializes a resolved layout. The same encoding backs
// layout caching and the json output format, so a cached layout and a
// freshly computed one produce identical artifacts.
func MarshalLayout(rendered *layout.RenderedNode) ([]byte, error) {
	data, err := json.Marshal(rendered)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
	}
	return data, nil
}

// UnmarshalLayout restores a cached layout.
func UnmarshalLayout(data []byte) (*layout.RenderedNode, error) {
	var rendered layout.RenderedNode
	if err := json.Unmarshal(data, &rendered); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "deserialize layout")
	}
	return &rendered, nil
}

// resourceHash fingerprints a resource table for cache keys. A nil table
// hashes to the empty string, which the keyer treats as "builtins only".
func resourceHash(res *markup.Resources) string {
	if res == nil {
		return ""
	}
	data, err := json.Marshal(res)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
