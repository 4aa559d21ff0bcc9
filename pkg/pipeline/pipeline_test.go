package pipeline

import (
	"testing"

	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"b64", false},
		{"json", false},
		{"invalid", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"png", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForParse(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Missing markup should fail with INVALID_INPUT, got %v", err)
	}

	opts = Options{Markup: "<View/>"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{Markup: "<View/>", Width: -1}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Negative width should fail with INVALID_INPUT, got %v", err)
	}

	opts = Options{Markup: "<View/>", Width: 200, Height: 100}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("Valid constraint should pass: %v", err)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{Markup: "<View/>"}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("Formats should default to [png], got %v", opts.Formats)
	}

	opts = Options{Markup: "<View/>", Formats: []string{"gif"}}
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Unknown format should fail with INVALID_FORMAT, got %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Markup: "<View/>"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsConstraint(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantWidth  float64
		wantHeight float64
	}{
		{"both zero", Options{}, layout.Unbounded, layout.Unbounded},
		{"width only", Options{Width: 200}, 200, layout.Unbounded},
		{"height only", Options{Height: 100}, layout.Unbounded, 100},
		{"both set", Options{Width: 200, Height: 100}, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.opts.Constraint()
			if c.Width != tt.wantWidth || c.Height != tt.wantHeight {
				t.Errorf("Constraint() = %+v, want %gx%g", c, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestLayoutKeyOptsDistinguishConstraints(t *testing.T) {
	a := Options{Width: 200}
	b := Options{Width: 300}
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("different constraints should produce different key options")
	}
}

func TestMarshalLayoutRoundTrip(t *testing.T) {
	rendered := &layout.RenderedNode{
		Type:  layout.ViewLinearLayout,
		Frame: layout.Frame{Width: 200, Height: 48},
		Children: []*layout.RenderedNode{
			{Type: layout.ViewText, Frame: layout.Frame{X: 8, Y: 8, Width: 35, Height: 16}, Text: "Hello"},
		},
	}

	data, err := MarshalLayout(rendered)
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}
	if back.Frame != rendered.Frame {
		t.Errorf("root frame = %+v, want %+v", back.Frame, rendered.Frame)
	}
	if len(back.Children) != 1 || back.Children[0].Text != "Hello" {
		t.Errorf("children not preserved: %+v", back.Children)
	}
	if back.Children[0].Frame != rendered.Children[0].Frame {
		t.Errorf("child frame = %+v, want %+v", back.Children[0].Frame, rendered.Children[0].Frame)
	}
}
