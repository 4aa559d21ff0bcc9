package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
)

// Resources holds the named colors and fonts a document can reference
// with @color/name and @font/name attributes.
type Resources struct {
	Colors map[string]layout.Color
	Fonts  map[string]layout.FontMetrics
}

// NewResources returns a resource table preloaded with the basic named
// colors every document can rely on.
func NewResources() *Resources {
	return &Resources{
		Colors: map[string]layout.Color{
			"white":       layout.RGB(0xff, 0xff, 0xff),
			"black":       layout.RGB(0x00, 0x00, 0x00),
			"red":         layout.RGB(0xe5, 0x39, 0x35),
			"green":       layout.RGB(0x43, 0xa0, 0x47),
			"blue":        layout.RGB(0x1e, 0x88, 0xe5),
			"gray":        layout.RGB(0x9e, 0x9e, 0x9e),
			"transparent": {R: 0, G: 0, B: 0, A: 0},
		},
		Fonts: map[string]layout.FontMetrics{
			"default": layout.DefaultFont(),
		},
	}
}

// DefineColor registers a named color, replacing any existing entry.
func (r *Resources) DefineColor(name string, c layout.Color) error {
	if err := errors.ValidateResourceName(name); err != nil {
		return err
	}
	r.Colors[name] = c
	return nil
}

// DefineFont registers named font metrics, replacing any existing entry.
func (r *Resources) DefineFont(name string, f layout.FontMetrics) error {
	if err := errors.ValidateResourceName(name); err != nil {
		return err
	}
	if f.CharWidth <= 0 || f.LineHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidResource, "font %q needs positive metrics", name)
	}
	r.Fonts[name] = f
	return nil
}

// Clone returns a deep copy, so a document's local definitions cannot
// leak into the shared table.
func (r *Resources) Clone() *Resources {
	out := &Resources{
		Colors: make(map[string]layout.Color, len(r.Colors)),
		Fonts:  make(map[string]layout.FontMetrics, len(r.Fonts)),
	}
	for k, v := range r.Colors {
		out.Colors[k] = v
	}
	for k, v := range r.Fonts {
		out.Fonts[k] = v
	}
	return out
}

// ResolveColor resolves a color attribute value: a #hex literal, a
// @color/name reference, or a bare resource name.
func (r *Resources) ResolveColor(value string) (layout.Color, error) {
	if strings.HasPrefix(value, "#") {
		return ParseHexColor(value)
	}
	name := strings.TrimPrefix(value, "@color/")
	if c, ok := r.Colors[name]; ok {
		return c, nil
	}
	return layout.Color{}, errors.New(errors.ErrCodeUnknownResource, "unknown color %q", value)
}

// ResolveFont resolves a font attribute value: a @font/name reference, a
// bare resource name, or inline "WxH" metrics like "7x16".
func (r *Resources) ResolveFont(value string) (layout.FontMetrics, error) {
	name := strings.TrimPrefix(value, "@font/")
	if f, ok := r.Fonts[name]; ok {
		return f, nil
	}
	if cw, lh, ok := parseInlineFont(value); ok {
		return layout.FontMetrics{CharWidth: cw, LineHeight: lh}, nil
	}
	return layout.FontMetrics{}, errors.New(errors.ErrCodeUnknownResource, "unknown font %q", value)
}

// parseInlineFont parses "7x16" style metrics.
func parseInlineFont(value string) (cw, lh float64, ok bool) {
	parts := strings.SplitN(value, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	cw, err1 := strconv.ParseFloat(parts[0], 64)
	lh, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || cw <= 0 || lh <= 0 {
		return 0, 0, false
	}
	return cw, lh, true
}

// ParseHexColor parses #RGB, #RRGGBB, and #RRGGBBAA literals.
func ParseHexColor(s string) (layout.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	parse := func(sub string) (uint8, error) {
		v, err := strconv.ParseUint(sub, 16, 8)
		return uint8(v), err
	}

	var c layout.Color
	c.A = 0xff
	var err error
	switch len(hex) {
	case 3:
		// #RGB doubles each nibble.
		if c.R, err = parse(strings.Repeat(hex[0:1], 2)); err == nil {
			if c.G, err = parse(strings.Repeat(hex[1:2], 2)); err == nil {
				c.B, err = parse(strings.Repeat(hex[2:3], 2))
			}
		}
	case 6, 8:
		if c.R, err = parse(hex[0:2]); err == nil {
			if c.G, err = parse(hex[2:4]); err == nil {
				c.B, err = parse(hex[4:6])
			}
		}
		if err == nil && len(hex) == 8 {
			c.A, err = parse(hex[6:8])
		}
	default:
		return layout.Color{}, errors.New(errors.ErrCodeInvalidAttribute, "malformed color literal %q", s)
	}
	if err != nil {
		return layout.Color{}, errors.Wrap(errors.ErrCodeInvalidAttribute, err, "malformed color literal %q", s)
	}
	return c, nil
}

// FormatColor renders a color as a #RRGGBB or #RRGGBBAA literal.
func FormatColor(c layout.Color) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
