package component

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
)

// WordList displays words as space-separated chips, wrapping at word
// boundaries. Highlighted words use a separate foreground color.
type WordList struct {
	*tview.Box
	words       []string
	highlighted map[string]bool
	fgColor     tcell.Color
	bgColor     tcell.Color
	hlColor     tcell.Color
}

// NewWordList creates a new WordList component.
func NewWordList(words []string) *WordList {
	box := tview.NewBox()
	box.SetBorder(false)
	colors := config.GetColors()
	return &WordList{
		Box:         box,
		words:       words,
		highlighted: make(map[string]bool),
		fgColor:     colors.PropertyKeyForeground,
		bgColor:     colors.PropertyKeyBackground,
		hlColor:     colors.PropertyKeyUsed,
	}
}

// SetWords updates the list of words to display.
func (w *WordList) SetWords(words []string) *WordList {
	w.words = words
	return w
}

// GetWords returns the current list of words.
func (w *WordList) GetWords() []string {
	return w.words
}

// SetHighlighted marks the words drawn in the highlight color; others are cleared.
func (w *WordList) SetHighlighted(words []string) *WordList {
	w.highlighted = make(map[string]bool, len(words))
	for _, word := range words {
		w.highlighted[word] = true
	}
	return w
}

// IsHighlighted reports whether word is highlighted
func (w *WordList) IsHighlighted(word string) bool {
	return w.highlighted[word]
}

// SetColors sets the foreground, background and highlight colors.
func (w *WordList) SetColors(fg, bg, hl tcell.Color) *WordList {
	w.fgColor = fg
	w.bgColor = bg
	w.hlColor = hl
	return w
}

// Draw renders the WordList component.
func (w *WordList) Draw(screen tcell.Screen) {
	w.DrawForSubclass(screen, w)
	x, y, width, height := w.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	spaceStyle := tcell.StyleDefault.Background(config.GetContentBackgroundColor())
	row := 0
	for _, line := range w.WrapWords(width) {
		if row >= height {
			break
		}
		currentX := x
		for i, word := range strings.Split(line, " ") {
			if i > 0 {
				screen.SetContent(currentX, y+row, ' ', nil, spaceStyle)
				currentX++
			}
			fg := w.fgColor
			if w.highlighted[word] {
				fg = w.hlColor
			}
			style := tcell.StyleDefault.Foreground(fg).Background(w.bgColor)
			for _, ch := range word {
				if currentX >= x+width {
					break
				}
				screen.SetContent(currentX, y+row, ch, nil, style)
				currentX++
			}
		}
		row++
	}
}

// WrapWords returns the lines the words occupy at the given width. A word
// longer than the width is cut.
func (w *WordList) WrapWords(width int) []string {
	if width <= 0 {
		return []string{}
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range w.words {
		if len(word) > width {
			word = word[:width]
		}
		currentLen := currentLine.Len()
		if currentLen > 0 && currentLen+1+len(word) > width {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
		}
		if currentLine.Len() > 0 {
			currentLine.WriteRune(' ')
		}
		currentLine.WriteString(word)
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return lines
}
