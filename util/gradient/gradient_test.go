package gradient

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/mapfilter/config"
)

var blueRamp = config.Gradient{Start: [3]int{0, 0, 0}, End: [3]int{100, 200, 250}}

func TestBlend(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want [3]int
	}{
		{"start", 0, [3]int{0, 0, 0}},
		{"end", 1, [3]int{100, 200, 250}},
		{"midpoint rounds", 0.5, [3]int{50, 100, 125}},
		{"below range clamps", -0.3, [3]int{0, 0, 0}},
		{"above range clamps", 1.7, [3]int{100, 200, 250}},
		{"rounds to nearest", 0.333, [3]int{33, 67, 83}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(blueRamp, tt.t); got != tt.want {
				t.Errorf("Blend(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestBlendDescending(t *testing.T) {
	g := config.Gradient{Start: [3]int{200, 100, 50}, End: [3]int{0, 0, 0}}
	if got := Blend(g, 0.5); got != [3]int{100, 50, 25} {
		t.Errorf("Blend = %v", got)
	}
}

func TestAt(t *testing.T) {
	got := At(blueRamp, 1)
	if got != tcell.NewRGBColor(100, 200, 250) {
		r, g, b := got.RGB()
		t.Errorf("At(1) = %d,%d,%d", r, g, b)
	}
}

func TestLighten(t *testing.T) {
	tests := []struct {
		name  string
		rgb   [3]int
		ratio float64
		want  [3]int
	}{
		{"zero ratio keeps color", [3]int{10, 20, 30}, 0, [3]int{10, 20, 30}},
		{"full ratio is white", [3]int{10, 20, 30}, 1, [3]int{255, 255, 255}},
		{"half way", [3]int{55, 155, 255}, 0.5, [3]int{155, 205, 255}},
		{"out of range channels clamp", [3]int{-20, 300, 0}, 0, [3]int{0, 255, 0}},
		{"ratio clamps", [3]int{0, 0, 0}, 2, [3]int{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lighten(tt.rgb, tt.ratio); got != tt.want {
				t.Errorf("Lighten(%v, %v) = %v, want %v", tt.rgb, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	fallback := config.Gradient{Start: [3]int{1, 2, 3}, End: [3]int{4, 5, 6}}

	tests := []struct {
		name  string
		color tcell.Color
		want  config.Gradient
	}{
		{"default color falls back", tcell.ColorDefault, fallback},
		{"black falls back", tcell.NewRGBColor(0, 0, 0), fallback},
		{"rgb color lightens", tcell.NewRGBColor(100, 0, 200), config.Gradient{
			Start: [3]int{100, 0, 200},
			End:   [3]int{131, 51, 211},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.color, 0.2, fallback); got != tt.want {
				t.Errorf("FromColor = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTag(t *testing.T) {
	if got := Tag([3]int{255, 16, 0}); got != "[#ff1000]" {
		t.Errorf("Tag = %q", got)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		name         string
		width        int
		index, count int
		filled       int
	}{
		{"first step is empty", 10, 0, 5, 0},
		{"last step is full", 10, 4, 5, 10},
		{"half way", 10, 2, 5, 5},
		{"single step is full", 6, 0, 1, 6},
		{"index past end clamps", 4, 9, 5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := Bar(blueRamp, "[gray]", tt.width, tt.index, tt.count)
			if got := strings.Count(bar, string(barFilled)); got != tt.filled {
				t.Errorf("filled cells = %d, want %d (%q)", got, tt.filled, bar)
			}
			if got := strings.Count(bar, string(barEmpty)); got != tt.width-tt.filled {
				t.Errorf("empty cells = %d, want %d", got, tt.width-tt.filled)
			}
		})
	}

	if Bar(blueRamp, "", 0, 1, 2) != "" || Bar(blueRamp, "", 5, 0, 0) != "" {
		t.Error("degenerate bars should be empty")
	}
}
