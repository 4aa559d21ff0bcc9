package layout

import "testing"

func TestMeasureText(t *testing.T) {
	font := DefaultFont()

	tests := []struct {
		name   string
		text   string
		limit  float64
		wantW  float64
		wantH  float64
	}{
		{
			name:  "empty text is zero size",
			text:  "",
			limit: Unbounded,
			wantW: 0,
			wantH: 0,
		},
		{
			name:  "single line unbounded",
			text:  "Hello",
			limit: Unbounded,
			wantW: 35,
			wantH: 16,
		},
		{
			name:  "explicit newline breaks",
			text:  "ab\ncdef",
			limit: Unbounded,
			wantW: 28,
			wantH: 32,
		},
		{
			name:  "trailing newline adds a line",
			text:  "ab\n",
			limit: Unbounded,
			wantW: 14,
			wantH: 32,
		},
		{
			name:  "wraps at limit",
			text:  "HelloWorld",
			limit: 26, // three 7px chars per line
			wantW: 21,
			wantH: 64,
		},
		{
			name:  "limit narrower than one char still progresses",
			text:  "abc",
			limit: 3,
			wantW: 3, // max line width clamped to the limit
			wantH: 48,
		},
		{
			name:  "limit exactly fits",
			text:  "abcd",
			limit: 28,
			wantW: 28,
			wantH: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := MeasureText(tt.text, tt.limit, font)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("MeasureText(%q, %v) = (%v, %v), want (%v, %v)",
					tt.text, tt.limit, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

// A smaller limit never yields fewer lines than a larger one.
func TestMeasureTextMonotonicLines(t *testing.T) {
	font := DefaultFont()
	text := "The quick brown fox\njumps over the lazy dog"

	prevLines := 0.0
	for _, limit := range []float64{300, 150, 100, 70, 40, 20, 7, 3} {
		_, h := MeasureText(text, limit, font)
		lines := h / font.LineHeight
		if prevLines != 0 && lines < prevLines {
			t.Errorf("limit %v produced %v lines, fewer than %v at the wider limit", limit, lines, prevLines)
		}
		prevLines = lines
	}
}

func TestMeasureTextCustomFont(t *testing.T) {
	font := FontMetrics{CharWidth: 10, LineHeight: 20}
	w, h := MeasureText("abcde", Unbounded, font)
	if w != 50 || h != 20 {
		t.Errorf("MeasureText = (%v, %v), want (50, 20)", w, h)
	}
}
