package view

import (
	"log/slog"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/view/header"
)

// RootLayout is the header above a page per view. Views are created on first
// display and kept; switching views flips the visible page.
type RootLayout struct {
	root    *tview.Flex
	header  *header.HeaderWidget
	pages   *tview.Pages
	factory *ViewFactory
	app     *tview.Application

	views           map[model.ViewID]controller.View
	contentView     controller.View
	onViewActivated func(controller.View)
}

// NewRootLayout creates the root layout. app may be nil in tests.
func NewRootLayout(hdr *header.HeaderWidget, factory *ViewFactory, app *tview.Application) *RootLayout {
	rl := &RootLayout{
		root:    tview.NewFlex().SetDirection(tview.FlexRow),
		header:  hdr,
		pages:   tview.NewPages(),
		factory: factory,
		app:     app,
		views:   make(map[model.ViewID]controller.View),
	}
	rl.root.AddItem(rl.header, header.HeaderHeight, 0, false)
	rl.root.AddItem(tview.NewBox(), 1, 0, false) // spacer
	rl.root.AddItem(rl.pages, 0, 1, true)
	return rl
}

// SetOnViewActivated registers a callback that runs when any view becomes active.
// This is used to wire up focus setters and other view-specific setup.
func (rl *RootLayout) SetOnViewActivated(callback func(controller.View)) {
	rl.onViewActivated = callback
}

// ShowView displays viewID, creating it on first use
func (rl *RootLayout) ShowView(viewID model.ViewID) {
	v, ok := rl.views[viewID]
	if !ok {
		v = rl.factory.CreateView(viewID)
		if v == nil {
			slog.Error("failed to create view", "viewID", viewID)
			return
		}
		rl.views[viewID] = v
		rl.pages.AddPage(string(viewID), v.GetPrimitive(), true, false)
		if lv, isLayer := v.(*LayerView); isLayer {
			lv.SetStatsChangedHandler(func() { rl.updateViewStats(lv) })
		}
	}

	// showing the active view again re-subscribes it
	if rl.contentView != nil {
		rl.contentView.OnBlur()
	}
	rl.contentView = v
	rl.pages.SwitchToPage(string(viewID))

	rl.header.SetActions(v.GetActionRegistry())

	if rl.onViewActivated != nil {
		rl.onViewActivated(v)
	}
	v.OnFocus()
	rl.updateViewStats(v)

	if rl.app != nil {
		rl.app.SetFocus(v.GetPrimitive())
	}
}

// updateViewStats shows the active view's stats in the header
func (rl *RootLayout) updateViewStats(v controller.View) {
	if v != rl.contentView {
		return
	}
	if sp, ok := v.(controller.StatsProvider); ok {
		rl.header.SetStats(sp.GetStats())
	} else {
		rl.header.SetStats(nil)
	}
}

// GetPrimitive returns the root tview primitive for app.SetRoot()
func (rl *RootLayout) GetPrimitive() tview.Primitive {
	return rl.root
}

// GetContentView returns the active view
func (rl *RootLayout) GetContentView() controller.View {
	return rl.contentView
}

// Cleanup blurs the active view, dropping its listeners
func (rl *RootLayout) Cleanup() {
	if rl.contentView != nil {
		rl.contentView.OnBlur()
	}
}
