package controller

import (
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/store"
)

// View and FilterableView decouple controllers from view implementations.

// View represents a renderable view with its action registry
type View interface {
	// GetPrimitive returns the tview primitive for this view
	GetPrimitive() tview.Primitive

	// GetActionRegistry returns the actions available in this view
	GetActionRegistry() *ActionRegistry

	// GetViewID returns the identifier for this view
	GetViewID() model.ViewID

	// OnFocus is called when the view becomes active
	OnFocus()

	// OnBlur is called when the view becomes inactive
	OnBlur()
}

// FilterableView is a view with a filter input field
type FilterableView interface {
	View

	// FocusFilter returns the filter input to focus
	FocusFilter() tview.Primitive

	// IsFilterFocused returns whether the filter input currently has focus
	IsFilterFocused() bool
}

// SelectableView is a view with a row selection
type SelectableView interface {
	View

	// MoveSelection moves the selected row by delta, returns false when it did not move
	MoveSelection(delta int) bool
}

// StatsProvider is a view that contributes stats to the header
type StatsProvider interface {
	GetStats() []store.Stat
}

// FocusSettable is a view that moves focus between its own primitives
type FocusSettable interface {
	SetFocusSetter(setter func(p tview.Primitive))
}
