package layout

import "math"

// Unbounded marks an axis with no size limit. Inset subtraction keeps an
// unbounded axis unbounded, and dimension resolution treats it as the
// absence of a budget.
var Unbounded = math.Inf(1)

// Bounded reports whether v is a finite size limit.
func Bounded(v float64) bool {
	return !math.IsInf(v, 1)
}

// SizeMode selects how a node's dimension is resolved against the
// measured content size and the available space.
type SizeMode int

const (
	// WrapContent sizes the node to its measured content.
	WrapContent SizeMode = iota
	// MatchParent sizes the node to the available space.
	MatchParent
	// Exact sizes the node to a fixed pixel value.
	Exact
)

// SizeSpec is a tagged size specification for one axis.
// The zero value is WrapContent.
type SizeSpec struct {
	Mode  SizeMode `json:"mode"`
	Value float64  `json:"value,omitempty"` // meaningful only for Exact
}

// Wrap returns a wrap_content size spec.
func Wrap() SizeSpec { return SizeSpec{Mode: WrapContent} }

// Match returns a match_parent size spec.
func Match() SizeSpec { return SizeSpec{Mode: MatchParent} }

// Fixed returns an exact size spec of v pixels.
func Fixed(v float64) SizeSpec { return SizeSpec{Mode: Exact, Value: v} }

// EdgeInsets describes spacing on the four sides of a rectangle.
// All values are non-negative.
type EdgeInsets struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Uniform returns insets with the same value on all four sides.
func Uniform(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// Symmetric returns insets with v on top/bottom and h on left/right.
func Symmetric(v, h float64) EdgeInsets {
	return EdgeInsets{Left: h, Top: v, Right: h, Bottom: v}
}

// Horizontal returns the combined left and right insets.
func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns the combined top and bottom insets.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }

// Constraint bounds the space offered to a node during layout.
// Either axis may be Unbounded.
type Constraint struct {
	Width  float64
	Height float64
}

// Unconstrained returns a constraint with no limit on either axis.
func Unconstrained() Constraint {
	return Constraint{Width: Unbounded, Height: Unbounded}
}

// WidthLimit returns a constraint bounded in width only.
func WidthLimit(w float64) Constraint {
	return Constraint{Width: w, Height: Unbounded}
}

// Frame is a resolved rectangle. X and Y are relative to the parent's
// origin; only the root frame is pinned to (0,0). Width and Height are
// finite and non-negative.
type Frame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color is an 8-bit RGBA color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB returns a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// FontMetrics is the fixed monospace text model: every character advances
// CharWidth pixels and every line occupies LineHeight pixels.
type FontMetrics struct {
	CharWidth  float64 `json:"char_width"`
	LineHeight float64 `json:"line_height"`
}

// DefaultFont is the monospace approximation used when a text node does
// not carry explicit metrics.
func DefaultFont() FontMetrics {
	return FontMetrics{CharWidth: 7.0, LineHeight: 16.0}
}
