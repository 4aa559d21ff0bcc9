package cli

import (
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty means no explicit choice", "", nil},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "png,b64,json", []string{"png", "b64", "json"}},
		{"json only", "json", []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		multi  bool
		want   string
	}{
		{"derive from input", "", "view.xml", "png", false, "view.png"},
		{"explicit single output", "out.png", "view.xml", "png", false, "out.png"},
		{"explicit odd extension kept", "custom.out", "view.xml", "png", false, "custom.out"},
		{"multi derives from input", "", "view.xml", "b64", true, "view.b64"},
		{"multi strips format extension", "out.png", "view.xml", "json", true, "out.json"},
		{"multi keeps foreign extension as base", "dir/result", "view.xml", "png", true, "dir/result.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.input, tt.format, tt.multi)
			if got != tt.want {
				t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
					tt.output, tt.input, tt.format, tt.multi, got, tt.want)
			}
		})
	}
}
