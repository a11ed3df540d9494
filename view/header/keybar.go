package header

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/controller"
)

// action categories, colored differently in the key bar
const (
	colorTypeGlobal = iota
	colorTypeLayer
	colorTypeView
)

// KeyBarWidget lists keyboard shortcuts in columns: global, layer switches, view actions
type KeyBarWidget struct {
	*tview.TextView
	width int
}

// NewKeyBarWidget creates an empty key bar
func NewKeyBarWidget() *KeyBarWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)
	return &KeyBarWidget{TextView: tv}
}

// GetWidth returns the visible width of the rendered content
func (kb *KeyBarWidget) GetWidth() int {
	return kb.width
}

type keyCell struct {
	key       string
	label     string
	colorType int
}

// SetActions renders the global actions followed by the view's own header actions.
// Layer activation actions found in the view registry get their own color.
func (kb *KeyBarWidget) SetActions(viewRegistry *controller.ActionRegistry) int {
	var cells []keyCell
	seen := make(map[controller.ActionID]bool)

	for _, a := range controller.DefaultGlobalActions().GetHeaderActions() {
		seen[a.ID] = true
		cells = append(cells, keyCell{key: a.KeyLabel(), label: a.Label, colorType: colorTypeGlobal})
	}

	if viewRegistry != nil {
		for _, a := range viewRegistry.GetHeaderActions() {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			colorType := colorTypeView
			if controller.GetLayerNameFromAction(a.ID) != "" {
				colorType = colorTypeLayer
			}
			cells = append(cells, keyCell{key: a.KeyLabel(), label: a.Label, colorType: colorType})
		}
	}

	lines := layoutColumns(cells, HeaderHeight)
	kb.SetText(strings.Join(lines, "\n"))
	kb.width = 0
	for _, l := range lines {
		if w := tview.TaggedStringWidth(l); w > kb.width {
			kb.width = w
		}
	}
	return kb.width
}

// layoutColumns fills cells top to bottom, numRows per column, padding each column
func layoutColumns(cells []keyCell, numRows int) []string {
	if len(cells) == 0 || numRows <= 0 {
		return nil
	}
	colors := config.GetColors()
	lines := make([]string, numRows)

	for start := 0; start < len(cells); start += numRows {
		end := start + numRows
		if end > len(cells) {
			end = len(cells)
		}
		column := cells[start:end]

		keyWidth, labelWidth := 0, 0
		for _, c := range column {
			keyWidth = max(keyWidth, len([]rune(c.key)))
			labelWidth = max(labelWidth, len([]rune(c.label)))
		}

		for row := 0; row < numRows; row++ {
			if row >= len(column) {
				lines[row] += strings.Repeat(" ", keyWidth+labelWidth+4)
				continue
			}
			c := column[row]
			keyColor := colors.KeyBarViewKey
			switch c.colorType {
			case colorTypeGlobal:
				keyColor = colors.KeyBarGlobalKey
			case colorTypeLayer:
				keyColor = colors.KeyBarLayerKey
			}
			lines[row] += fmt.Sprintf("%s<%s>%s %s%s ",
				keyColor, tview.Escape(c.key), colors.KeyBarLabel,
				padRight(c.label, labelWidth),
				strings.Repeat(" ", keyWidth-len([]rune(c.key))))
		}
	}
	return lines
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
