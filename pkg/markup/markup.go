// Package markup parses XML view documents into layout node trees.
//
// A document is either a single view element or a <layout> root wrapping
// an optional <resources> block and exactly one view element:
//
//	<layout>
//	  <resources>
//	    <color name="panel">#2d3748</color>
//	    <font name="mono" charWidth="7" lineHeight="16"/>
//	  </resources>
//	  <LinearLayout width="match_parent" orientation="vertical">
//	    <TextView text="hello" textColor="@color/panel"/>
//	  </LinearLayout>
//	</layout>
//
// Element names map to view types (TextView, LinearLayout, FrameLayout,
// RelativeLayout, ConstraintLayout, View); unrecognized element names
// produce generic views, matching the layout engine's classification of
// unknown types. Attribute names are strict: a misspelled attribute is an
// error rather than a silent no-op.
package markup

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
)

// elementTypes maps lowercased element names to view types. Names not
// listed here fall through to the generic view type.
var elementTypes = map[string]layout.ViewType{
	"view":             layout.ViewGeneric,
	"textview":         layout.ViewText,
	"linearlayout":     layout.ViewLinearLayout,
	"framelayout":      layout.ViewFrameLayout,
	"relativelayout":   layout.ViewRelativeLayout,
	"constraintlayout": layout.ViewConstraintLayout,
}

// Parse parses a view document against the given resource table. The
// table is cloned first, so <resources> definitions stay local to the
// document. A nil table means the builtin resources only.
func Parse(data []byte, res *Resources) (*layout.Node, error) {
	if res == nil {
		res = NewResources()
	} else {
		res = res.Clone()
	}

	var doc element
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidMarkup, "empty document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "malformed document")
	}

	root := &doc
	if strings.EqualFold(doc.XMLName.Local, "layout") {
		var err error
		if root, err = unwrapLayout(&doc, res); err != nil {
			return nil, err
		}
	}
	return buildNode(root, res)
}

// ParseFile is a convenience wrapper over Parse for on-disk documents.
func ParseFile(path string, res *Resources) (*layout.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read markup %s", path)
	}
	return Parse(data, res)
}

// element is the generic decode target for any document subtree.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}

// unwrapLayout processes a <layout> root: loads the optional <resources>
// block into res and returns the single view element.
func unwrapLayout(doc *element, res *Resources) (*element, error) {
	var view *element
	for i := range doc.Children {
		child := &doc.Children[i]
		if strings.EqualFold(child.XMLName.Local, "resources") {
			if err := loadResources(child, res); err != nil {
				return nil, err
			}
			continue
		}
		if view != nil {
			return nil, errors.New(errors.ErrCodeInvalidMarkup,
				"<layout> holds more than one view element (extra <%s>)", child.XMLName.Local)
		}
		view = child
	}
	if view == nil {
		return nil, errors.New(errors.ErrCodeInvalidMarkup, "<layout> holds no view element")
	}
	return view, nil
}

// loadResources merges a <resources> block into the table.
func loadResources(block *element, res *Resources) error {
	for i := range block.Children {
		entry := &block.Children[i]
		name, ok := entry.attr("name")
		if !ok {
			return errors.New(errors.ErrCodeInvalidResource,
				"<%s> entry without a name attribute", entry.XMLName.Local)
		}
		switch strings.ToLower(entry.XMLName.Local) {
		case "color":
			c, err := ParseHexColor(strings.TrimSpace(entry.Text))
			if err != nil {
				return err
			}
			if err := res.DefineColor(name, c); err != nil {
				return err
			}
		case "font":
			f, err := fontEntry(entry)
			if err != nil {
				return err
			}
			if err := res.DefineFont(name, f); err != nil {
				return err
			}
		default:
			return errors.New(errors.ErrCodeInvalidResource,
				"unsupported resource kind <%s>", entry.XMLName.Local)
		}
	}
	return nil
}

func fontEntry(entry *element) (layout.FontMetrics, error) {
	f := layout.DefaultFont()
	if v, ok := entry.attr("charWidth"); ok {
		cw, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.Wrap(errors.ErrCodeInvalidResource, err, "charWidth %q", v)
		}
		f.CharWidth = cw
	}
	if v, ok := entry.attr("lineHeight"); ok {
		lh, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.Wrap(errors.ErrCodeInvalidResource, err, "lineHeight %q", v)
		}
		f.LineHeight = lh
	}
	return f, nil
}

// buildNode converts one element subtree into a node subtree.
func buildNode(e *element, res *Resources) (*layout.Node, error) {
	n := &layout.Node{
		Type:   elementType(e.XMLName.Local),
		Width:  layout.Wrap(),
		Height: layout.Wrap(),
	}

	sawText := false
	for _, a := range e.Attrs {
		if err := applyAttr(n, a, res, &sawText); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "element <%s>", e.XMLName.Local)
		}
	}

	if n.Type == layout.ViewText {
		if !sawText {
			// Element body text is an accepted alternative to the attribute.
			if body := strings.TrimSpace(e.Text); body != "" {
				n.Text = body
				sawText = true
			}
		}
		if !sawText {
			return nil, errors.New(errors.ErrCodeInvalidMarkup,
				"<%s> needs a text attribute", e.XMLName.Local)
		}
		if len(e.Children) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidMarkup,
				"<%s> cannot hold child elements", e.XMLName.Local)
		}
		return n, nil
	}

	for i := range e.Children {
		child, err := buildNode(&e.Children[i], res)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func elementType(name string) layout.ViewType {
	if t, ok := elementTypes[strings.ToLower(name)]; ok {
		return t
	}
	return layout.ViewType(strings.ToLower(name))
}

// applyAttr interprets one attribute onto a node.
func applyAttr(n *layout.Node, a xml.Attr, res *Resources, sawText *bool) error {
	// Namespace declarations pass through untouched.
	if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
		return nil
	}
	switch strings.ToLower(a.Name.Local) {
	case "width":
		spec, err := parseSizeSpec(a.Value)
		if err != nil {
			return err
		}
		n.Width = spec
	case "height":
		spec, err := parseSizeSpec(a.Value)
		if err != nil {
			return err
		}
		n.Height = spec
	case "margin":
		in, err := parseInsets(a.Value)
		if err != nil {
			return err
		}
		n.Margin = in
	case "padding":
		in, err := parseInsets(a.Value)
		if err != nil {
			return err
		}
		n.Padding = in
	case "text":
		n.Text = a.Value
		*sawText = true
	case "orientation":
		o, err := parseOrientation(a.Value)
		if err != nil {
			return err
		}
		n.Orientation = o
	case "background":
		c, err := res.ResolveColor(a.Value)
		if err != nil {
			return err
		}
		n.Background = &c
	case "textcolor":
		c, err := res.ResolveColor(a.Value)
		if err != nil {
			return err
		}
		n.TextColor = &c
	case "font":
		f, err := res.ResolveFont(a.Value)
		if err != nil {
			return err
		}
		n.Font = &f
	default:
		return errors.New(errors.ErrCodeInvalidAttribute, "unknown attribute %q", a.Name.Local)
	}
	return nil
}

func parseSizeSpec(value string) (layout.SizeSpec, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "wrap_content":
		return layout.Wrap(), nil
	case "match_parent":
		return layout.Match(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return layout.SizeSpec{}, errors.Wrap(errors.ErrCodeInvalidAttribute, err, "size %q", value)
	}
	return layout.Fixed(v), nil
}

// parseInsets accepts "all", "vertical,horizontal", or
// "left,top,right,bottom" forms.
func parseInsets(value string) (layout.EdgeInsets, error) {
	parts := strings.Split(value, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return layout.EdgeInsets{}, errors.Wrap(errors.ErrCodeInvalidAttribute, err, "insets %q", value)
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 1:
		return layout.Uniform(vals[0]), nil
	case 2:
		return layout.Symmetric(vals[0], vals[1]), nil
	case 4:
		return layout.EdgeInsets{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
	}
	return layout.EdgeInsets{}, errors.New(errors.ErrCodeInvalidAttribute,
		"insets %q need 1, 2, or 4 components", value)
}

func parseOrientation(value string) (layout.Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "vertical":
		return layout.Vertical, nil
	case "horizontal":
		return layout.Horizontal, nil
	}
	return "", errors.New(errors.ErrCodeInvalidAttribute, "unknown orientation %q", value)
}
