package view

import (
	_ "embed"
	"log/slog"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/view/renderer"
)

//go:embed help/help.md
var helpMd string

// HelpView shows the filter and time syntax help
type HelpView struct {
	root     *tview.Flex
	content  *tview.TextView
	registry *controller.ActionRegistry
}

// NewHelpView renders the help text with mdRenderer
func NewHelpView(mdRenderer renderer.MarkdownRenderer) *HelpView {
	hv := &HelpView{registry: controller.NewActionRegistry()}

	text, err := mdRenderer.Render(helpMd)
	if err != nil {
		slog.Warn("failed to render help, showing plain text", "error", err)
		text, _ = renderer.FallbackRenderer{}.Render(helpMd)
	}

	hv.content = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	hv.content.SetBackgroundColor(config.GetContentBackgroundColor())
	hv.content.SetText(text)

	title := NewGradientCaptionRow([]string{"Help"}, config.GetColors().CaptionGradient, config.GetColors().CaptionText)
	hv.root = tview.NewFlex().SetDirection(tview.FlexRow)
	hv.root.AddItem(title, 1, 0, false)
	hv.root.AddItem(hv.content, 0, 1, true)
	return hv
}

// GetPrimitive returns the root tview primitive
func (hv *HelpView) GetPrimitive() tview.Primitive {
	return hv.root
}

// GetActionRegistry returns the view's action registry
func (hv *HelpView) GetActionRegistry() *controller.ActionRegistry {
	return hv.registry
}

// GetViewID returns the view identifier
func (hv *HelpView) GetViewID() model.ViewID {
	return model.HelpViewID
}

// OnFocus scrolls back to the top
func (hv *HelpView) OnFocus() {
	hv.content.ScrollToBeginning()
}

// OnBlur is called when the view becomes inactive
func (hv *HelpView) OnBlur() {}

// Text returns the rendered help text
func (hv *HelpView) Text() string {
	return hv.content.GetText(true)
}
