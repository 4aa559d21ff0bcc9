package layout

// Render lays out the view tree under the given constraint and returns
// the resolved frame tree. The root frame's origin is pinned to (0,0);
// every other frame is positioned relative to its parent.
func Render(root *Node, c Constraint) *RenderedNode {
	out := layoutNode(root, c)
	out.Frame.X = 0
	out.Frame.Y = 0
	return out
}

// layoutNode measures and arranges a single node. The returned frame's
// origin is left for the parent to assign; only width and height are
// resolved here.
func layoutNode(n *Node, c Constraint) *RenderedNode {
	availW := SubtractInsets(c.Width, n.Margin.Horizontal())
	availH := SubtractInsets(c.Height, n.Margin.Vertical())
	limit := Constraint{
		Width:  SubtractInsets(availW, n.Padding.Horizontal()),
		Height: SubtractInsets(availH, n.Padding.Vertical()),
	}

	out := &RenderedNode{
		Type:       n.Type,
		Margin:     n.Margin,
		Padding:    n.Padding,
		Background: n.Background,
		TextColor:  n.TextColor,
	}

	var contentW, contentH float64
	switch BehaviorOf(n.Type) {
	case TextLeaf:
		font := DefaultFont()
		if n.Font != nil {
			font = *n.Font
		}
		contentW, contentH = MeasureText(n.Text, limit.Width, font)
		out.Text = n.Text
		f := font
		out.Font = &f
	case LinearContainer:
		out.Orientation = n.orientation()
		contentW, contentH = layoutLinear(n, out, limit)
	default:
		contentW, contentH = layoutFreeform(n, out, limit)
	}

	w := ResolveDimension(n.Width, contentW+n.Padding.Horizontal(), availW)
	h := ResolveDimension(n.Height, contentH+n.Padding.Vertical(), availH)
	out.Frame = Frame{Width: sanitize(w), Height: sanitize(h)}
	return out
}

// layoutFreeform lays out the children of a generic container. Every
// child is anchored independently at the container's padding origin plus
// its own margin; nothing stacks. The returned content size is the
// smallest box covering each child's span including trailing margins,
// computed per axis as a running maximum. Padding is added by the caller.
func layoutFreeform(n *Node, out *RenderedNode, limit Constraint) (w, h float64) {
	for _, child := range n.Children {
		cn := layoutNode(child, limit)
		cn.Frame.X = n.Padding.Left + child.Margin.Left
		cn.Frame.Y = n.Padding.Top + child.Margin.Top
		out.Children = append(out.Children, cn)

		span := child.Margin.Left + cn.Frame.Width + child.Margin.Right
		if span > w {
			w = span
		}
		span = child.Margin.Top + cn.Frame.Height + child.Margin.Bottom
		if span > h {
			h = span
		}
	}
	return w, h
}

// layoutLinear stacks the children of a linear container along its
// orientation. Each child is laid out against the container's full
// content limits: the budget along the stacking axis is deliberately not
// decremented per child, so only the cross-axis limit truly constrains
// wrapping. The returned content size excludes the container's padding.
func layoutLinear(n *Node, out *RenderedNode, limit Constraint) (w, h float64) {
	if n.orientation() == Horizontal {
		cursor := n.Padding.Left
		for _, child := range n.Children {
			cn := layoutNode(child, limit)
			cn.Frame.X = cursor + child.Margin.Left
			cn.Frame.Y = n.Padding.Top + child.Margin.Top
			out.Children = append(out.Children, cn)

			cursor = cn.Frame.X + cn.Frame.Width + child.Margin.Right
			if span := child.Margin.Top + cn.Frame.Height + child.Margin.Bottom; span > h {
				h = span
			}
		}
		return cursor - n.Padding.Left, h
	}

	cursor := n.Padding.Top
	for _, child := range n.Children {
		cn := layoutNode(child, limit)
		cn.Frame.X = n.Padding.Left + child.Margin.Left
		cn.Frame.Y = cursor + child.Margin.Top
		out.Children = append(out.Children, cn)

		cursor = cn.Frame.Y + cn.Frame.Height + child.Margin.Bottom
		if span := child.Margin.Left + cn.Frame.Width + child.Margin.Right; span > w {
			w = span
		}
	}
	return w, cursor - n.Padding.Top
}

// orientation returns the node's stacking axis, defaulting to vertical.
func (n *Node) orientation() Orientation {
	if n.Orientation == Horizontal {
		return Horizontal
	}
	return Vertical
}
