// Package layout computes deterministic geometric layouts for a tree of
// abstract view nodes.
//
// # Overview
//
// A [Node] tree describes containers and text leaves the way a UI markup
// document would: each node carries size specs, margin and padding insets,
// and for text leaves a run of text measured against a fixed monospace
// font model. [Render] walks the tree once, measuring and arranging every
// node, and produces a parallel [RenderedNode] tree of resolved frames.
//
// Layout is a pure function of (tree, constraint): there is no shared
// state between passes, no I/O, and no suspension points. Independent
// render calls are safe to run concurrently.
//
// # View types and behaviors
//
// Every [ViewType] maps to exactly one of three layout behaviors:
//
//   - generic containers position each child independently at the
//     container's padding origin plus the child's own margin, and size
//     themselves to the children's bounding box
//   - linear containers stack children along their orientation
//   - text leaves have no children and size themselves by text measurement
//
// Unknown view type names fall back to the generic behavior.
//
// # Geometry policy
//
// All degenerate geometry (insets larger than the available space,
// negative results, unconstrained axes) is handled by clamping rather
// than errors: an axis never resolves below zero, and an unbounded axis
// stays unbounded through inset subtraction. See [ResolveDimension] and
// [SubtractInsets].
package layout
