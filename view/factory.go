package view

import (
	"log/slog"

	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/view/renderer"
)

// helpWordWrap is the column the help text wraps at
const helpWordWrap = 80

// ViewFactory creates views on demand
type ViewFactory struct {
	layerControllers map[string]*controller.LayerController
	renderer         renderer.MarkdownRenderer
	maxRows          int
}

// NewViewFactory creates a view factory. Help is rendered with glamour,
// falling back to plain text if glamour cannot be set up.
func NewViewFactory(layerControllers map[string]*controller.LayerController, maxRows int) *ViewFactory {
	return &ViewFactory{
		layerControllers: layerControllers,
		renderer:         renderer.New(helpWordWrap),
		maxRows:          maxRows,
	}
}

// CreateView instantiates a view by ID. Returns nil for unknown IDs.
func (f *ViewFactory) CreateView(viewID model.ViewID) controller.View {
	if viewID == model.HelpViewID {
		return NewHelpView(f.renderer)
	}

	if !model.IsLayerViewID(viewID) {
		slog.Error("unknown view ID", "viewID", viewID)
		return nil
	}
	name := model.GetLayerName(viewID)
	lc, ok := f.layerControllers[name]
	if !ok {
		slog.Error("layer controller not found", "layer", name)
		return nil
	}
	return NewLayerView(lc, f.maxRows)
}
