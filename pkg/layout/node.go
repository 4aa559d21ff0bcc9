package layout

// ViewType identifies the kind of view a node represents. The set is
// closed; names outside it are treated as ViewGeneric.
type ViewType string

// Supported view types.
const (
	ViewGeneric          ViewType = "generic"
	ViewText             ViewType = "text"
	ViewLinearLayout     ViewType = "linear_layout"
	ViewFrameLayout      ViewType = "frame_layout"
	ViewRelativeLayout   ViewType = "relative_layout"
	ViewConstraintLayout ViewType = "constraint_layout"
)

// ViewTypes lists every supported view type.
func ViewTypes() []ViewType {
	return []ViewType{
		ViewGeneric,
		ViewText,
		ViewLinearLayout,
		ViewFrameLayout,
		ViewRelativeLayout,
		ViewConstraintLayout,
	}
}

// Behavior is the layout strategy a view type resolves to.
type Behavior int

const (
	// GenericContainer free-positions children at the padding origin plus
	// their own margin and sizes itself to their bounding box.
	GenericContainer Behavior = iota
	// LinearContainer stacks children along its orientation.
	LinearContainer
	// TextLeaf has no children and is sized by text measurement.
	TextLeaf
)

// behaviors is the closed classification table. Every ViewType must have
// an entry; completeness is checked in tests against ViewTypes.
var behaviors = map[ViewType]Behavior{
	ViewGeneric:          GenericContainer,
	ViewText:             TextLeaf,
	ViewLinearLayout:     LinearContainer,
	ViewFrameLayout:      GenericContainer,
	ViewRelativeLayout:   GenericContainer,
	ViewConstraintLayout: GenericContainer,
}

// BehaviorOf maps a view type to its layout behavior. Unknown view types
// behave as generic containers.
func BehaviorOf(t ViewType) Behavior {
	if b, ok := behaviors[t]; ok {
		return b
	}
	return GenericContainer
}

// Orientation selects the stacking axis of a linear container.
type Orientation string

// Stacking axes for linear containers.
const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Node is one view in the input tree. A node owns its children
// exclusively; the tree is acyclic and immutable during a layout pass.
type Node struct {
	Type    ViewType   `json:"type"`
	Width   SizeSpec   `json:"width"`
	Height  SizeSpec   `json:"height"`
	Margin  EdgeInsets `json:"margin"`
	Padding EdgeInsets `json:"padding"`

	// Text is the content of a text leaf. Non-text nodes ignore it.
	Text string `json:"text,omitempty"`

	// Orientation is meaningful only for linear containers. Empty
	// defaults to Vertical.
	Orientation Orientation `json:"orientation,omitempty"`

	// Optional resolved styling. Nil means "pick at render time".
	Background *Color       `json:"background,omitempty"`
	TextColor  *Color       `json:"text_color,omitempty"`
	Font       *FontMetrics `json:"font,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// RenderedNode mirrors the input tree shape with a resolved frame per
// node. It is produced fresh by each layout pass and never mutated
// afterwards, except to pin the root frame's origin to (0,0).
type RenderedNode struct {
	Type    ViewType   `json:"type"`
	Frame   Frame      `json:"frame"`
	Margin  EdgeInsets `json:"margin"`
	Padding EdgeInsets `json:"padding"`

	// Text is present for text leaves.
	Text string `json:"text,omitempty"`

	// Orientation is present only for linear containers.
	Orientation Orientation `json:"orientation,omitempty"`

	Background *Color       `json:"background,omitempty"`
	TextColor  *Color       `json:"text_color,omitempty"`
	Font       *FontMetrics `json:"font,omitempty"`

	Children []*RenderedNode `json:"children,omitempty"`
}

// Count returns the number of nodes in the rendered tree, including the
// receiver.
func (n *RenderedNode) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
