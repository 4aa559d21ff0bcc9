package layout

// ResolveDimension converts a size spec into a final dimension given the
// measured content size and the available space on that axis.
//
// WrapContent clamps the measured size to the available budget, if there
// is one. MatchParent fills the available space when it is bounded and
// otherwise degrades to wrap behavior, since there is no parent budget to
// fill. Exact values are likewise clamped to the available space.
//
// The result is always finite and non-negative.
func ResolveDimension(spec SizeSpec, measured, available float64) float64 {
	switch spec.Mode {
	case MatchParent:
		if Bounded(available) {
			return sanitize(available)
		}
		return sanitize(measured)
	case Exact:
		v := spec.Value
		if Bounded(available) && v > available {
			v = available
		}
		return sanitize(v)
	default: // WrapContent
		v := measured
		if Bounded(available) && v > available {
			v = available
		}
		return sanitize(v)
	}
}

// SubtractInsets removes amount from an axis budget. An unbounded axis
// stays unbounded; a bounded axis never goes below zero, so insets larger
// than the available space cannot propagate negative sizes downstream.
func SubtractInsets(value, amount float64) float64 {
	if !Bounded(value) {
		return value
	}
	return sanitize(value - amount)
}

// sanitize floors negative values to zero.
func sanitize(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
