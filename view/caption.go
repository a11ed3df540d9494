package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/util/gradient"
)

// captionLighten is how far the caption gradient lightens toward the edges
const captionLighten = 0.35

// GradientCaptionRow renders one or more captions over a single gradient that
// is darkest in the middle of the row and lightest at its edges.
type GradientCaptionRow struct {
	*tview.Box
	captions  []string
	gradient  config.Gradient
	textColor tcell.Color
}

// NewGradientCaptionRow creates a caption row
func NewGradientCaptionRow(captions []string, g config.Gradient, textColor tcell.Color) *GradientCaptionRow {
	return &GradientCaptionRow{
		Box:       tview.NewBox(),
		captions:  captions,
		gradient:  g,
		textColor: textColor,
	}
}

// SetCaptions replaces the caption texts
func (gcr *GradientCaptionRow) SetCaptions(captions ...string) {
	gcr.captions = captions
}

// Captions returns the caption texts
func (gcr *GradientCaptionRow) Captions() []string {
	return gcr.captions
}

// Draw renders the captions, each centered in an equal share of the width
func (gcr *GradientCaptionRow) Draw(screen tcell.Screen) {
	gcr.DrawForSubclass(screen, gcr)

	x, y, width, height := gcr.GetInnerRect()
	if width <= 0 || height <= 0 || len(gcr.captions) == 0 {
		return
	}

	n := len(gcr.captions)
	cellWidth := width / n
	if cellWidth == 0 {
		cellWidth = 1
	}
	runes := make([][]rune, n)
	for i, c := range gcr.captions {
		runes[i] = []rune(c)
	}

	center := float64(width) / 2.0
	for col := 0; col < width; col++ {
		distance := 0.0
		if width > 1 {
			distance = (float64(col) - center) / center
			if distance < 0 {
				distance = -distance
			}
		}
		bg := gradient.At(gcr.gradient, distance)

		idx := col / cellWidth
		if idx >= n {
			idx = n - 1
		}
		start := idx * cellWidth
		end := start + cellWidth
		if idx == n-1 {
			end = width // last caption takes the remainder
		}

		text := runes[idx]
		offset := 0
		if len(text) < end-start {
			offset = (end - start - len(text)) / 2
		}
		ch := ' '
		if i := col - start - offset; i >= 0 && i < len(text) {
			ch = text[i]
		}

		style := tcell.StyleDefault.Foreground(gcr.textColor).Background(bg)
		for row := 0; row < height; row++ {
			screen.SetContent(x+col, y+row, ch, nil, style)
		}
	}
}

// layerCaptionGradient derives a caption gradient from a layer color
func layerCaptionGradient(layerColor tcell.Color) config.Gradient {
	return gradient.FromColor(layerColor, captionLighten, config.GetColors().CaptionGradient)
}
