package layout

// MeasureText computes the wrapped width and height of text under the
// fixed-advance font model. limit bounds the line width; pass Unbounded
// for no wrapping beyond explicit newlines.
//
// An explicit newline always breaks the line. When a limit is supplied,
// a character that would overflow the limit wraps to the next line, but
// only if the current line already holds at least one character: a line
// always makes progress, so pathologically narrow limits cannot loop.
//
// The returned width is the widest line seen, clamped to the limit. The
// returned height is the line count times the font's line height. Empty
// text measures as zero in both axes.
func MeasureText(text string, limit float64, font FontMetrics) (w, h float64) {
	if text == "" {
		return 0, 0
	}

	var maxWidth, lineWidth float64
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
			lineWidth = 0
			continue
		}
		next := lineWidth + font.CharWidth
		if Bounded(limit) && next > limit && lineWidth > 0 {
			lines++
			next = font.CharWidth
		}
		lineWidth = next
		if lineWidth > maxWidth {
			maxWidth = lineWidth
		}
	}

	if Bounded(limit) && maxWidth > limit {
		maxWidth = limit
	}
	return maxWidth, float64(lines) * font.LineHeight
}
