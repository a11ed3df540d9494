package controller

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/mapfilter/model"
)

// InputRouter dispatches input events to appropriate controllers.
// It doesn't know what to do with actions, only where to send them.
type InputRouter struct {
	navController    *NavigationController
	layerControllers map[string]*LayerController // keyed by layer name
	globalActions    *ActionRegistry
}

// NewInputRouter creates an input router
func NewInputRouter(
	navController *NavigationController,
	layerControllers map[string]*LayerController,
) *InputRouter {
	return &InputRouter{
		navController:    navController,
		layerControllers: layerControllers,
		globalActions:    DefaultGlobalActions(),
	}
}

// HandleInput processes a key event for the current view.
// Order: filter input (when focused), global actions, view-specific actions.
// Returns true if the event was handled, false otherwise.
func (ir *InputRouter) HandleInput(event *tcell.EventKey, currentView *ViewEntry) bool {
	slog.Debug("input received", "name", event.Name(), "key", int(event.Key()), "rune", string(event.Rune()), "modifiers", int(event.Modifiers()))

	if currentView == nil {
		return false
	}

	activeView := ir.navController.GetActiveView()
	if filterable, ok := activeView.(FilterableView); ok && filterable.IsFilterFocused() {
		// filter input handles its own keys through tview
		return false
	}

	if action := ir.globalActions.Match(event); action != nil {
		return ir.handleGlobalAction(action.ID, currentView.ViewID)
	}

	if model.IsLayerViewID(currentView.ViewID) {
		return ir.handleLayerInput(event, currentView.ViewID)
	}
	return false
}

// handleLayerInput routes input to the layer controller of the current view
func (ir *InputRouter) handleLayerInput(event *tcell.EventKey, viewID model.ViewID) bool {
	layerName := model.GetLayerName(viewID)
	controller, ok := ir.layerControllers[layerName]
	if !ok {
		slog.Warn("layer controller not found", "layer", layerName)
		return false
	}

	action := controller.GetActionRegistry().Match(event)
	if action == nil {
		return false
	}

	if targetLayer := GetLayerNameFromAction(action.ID); targetLayer != "" {
		targetViewID := model.MakeLayerViewID(targetLayer)
		if viewID != targetViewID {
			ir.navController.ReplaceView(targetViewID)
		}
		return true // already on this layer, consume the event
	}

	switch action.ID {
	case ActionFocusFilter:
		return ir.handleFocusFilter()
	case ActionNavUp:
		return ir.moveSelection(-1)
	case ActionNavDown:
		return ir.moveSelection(1)
	default:
		return controller.HandleAction(action.ID)
	}
}

// handleGlobalAction processes actions available in all views
func (ir *InputRouter) handleGlobalAction(actionID ActionID, viewID model.ViewID) bool {
	switch actionID {
	case ActionBack:
		return ir.navController.HandleBack()
	case ActionQuit:
		ir.navController.HandleQuit()
		return true
	case ActionHelp:
		if viewID == model.HelpViewID {
			return ir.navController.HandleBack()
		}
		ir.navController.PushView(model.HelpViewID)
		return true
	case ActionRefresh:
		if !model.IsLayerViewID(viewID) {
			return false
		}
		controller, ok := ir.layerControllers[model.GetLayerName(viewID)]
		if !ok {
			return false
		}
		if err := controller.Reload(context.Background()); err != nil {
			slog.Error("failed to reload layer", "layer", controller.GetLayerName(), "error", err)
		}
		return true
	default:
		return false
	}
}

func (ir *InputRouter) handleFocusFilter() bool {
	filterable, ok := ir.navController.GetActiveView().(FilterableView)
	if !ok {
		return false
	}
	input := filterable.FocusFilter()
	if input != nil {
		if app := ir.navController.GetApp(); app != nil {
			app.SetFocus(input)
		}
	}
	return true
}

func (ir *InputRouter) moveSelection(delta int) bool {
	selectable, ok := ir.navController.GetActiveView().(SelectableView)
	if !ok {
		return false
	}
	return selectable.MoveSelection(delta)
}
