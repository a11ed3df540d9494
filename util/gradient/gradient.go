// Package gradient blends RGB colors for captions and progress bars.
package gradient

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/mapfilter/config"
)

// Blend returns the RGB value at position t of g, t clamped to [0, 1]
func Blend(g config.Gradient, t float64) [3]int {
	t = math.Max(0, math.Min(1, t))
	var out [3]int
	for i := range out {
		out[i] = int(math.Round(float64(g.Start[i]) + t*float64(g.End[i]-g.Start[i])))
	}
	return out
}

// At returns the color at position t of g
func At(g config.Gradient, t float64) tcell.Color {
	rgb := Blend(g, t)
	//nolint:gosec // G115: channels are 0-255
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}

// Tag renders an RGB value as a tview color tag
func Tag(rgb [3]int) string {
	return fmt.Sprintf("[#%02x%02x%02x]", rgb[0], rgb[1], rgb[2])
}

// Lighten moves each channel toward white by ratio
func Lighten(rgb [3]int, ratio float64) [3]int {
	ratio = math.Max(0, math.Min(1, ratio))
	var out [3]int
	for i, c := range rgb {
		c = min(max(c, 0), 255)
		out[i] = c + int(math.Round(float64(255-c)*ratio))
	}
	return out
}

// FromColor derives a gradient from a layer color, running from the color to
// a lightened copy. Colors without an RGB value (default, black) give fallback.
func FromColor(c tcell.Color, ratio float64, fallback config.Gradient) config.Gradient {
	r, g, b := c.RGB()
	if c == tcell.ColorDefault || r < 0 || (r == 0 && g == 0 && b == 0) {
		return fallback
	}
	base := [3]int{int(r), int(g), int(b)}
	return config.Gradient{Start: base, End: Lighten(base, ratio)}
}

const (
	barFilled = '█'
	barEmpty  = '░'
)

// Bar renders a width-cell progress bar for step index of count steps. The
// filled cells are colored along g; emptyTag colors the rest.
func Bar(g config.Gradient, emptyTag string, width, index, count int) string {
	if width <= 0 || count <= 0 {
		return ""
	}
	filled := width
	if count > 1 {
		filled = int(math.Round(float64(index) / float64(count-1) * float64(width)))
	}
	filled = min(max(filled, 0), width)

	var sb strings.Builder
	for i := 0; i < filled; i++ {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		sb.WriteString(Tag(Blend(g, t)))
		sb.WriteRune(barFilled)
	}
	if filled < width {
		sb.WriteString(emptyTag)
		sb.WriteString(strings.Repeat(string(barEmpty), width-filled))
	}
	return sb.String()
}
