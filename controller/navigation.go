package controller

import (
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/model"
)

// ViewEntry is one entry of the navigation stack
type ViewEntry struct {
	ViewID model.ViewID
}

// viewStack is the navigation history. The bottom entry is the active layer.
type viewStack struct {
	entries []ViewEntry
}

func newViewStack() *viewStack {
	return &viewStack{}
}

func (s *viewStack) push(id model.ViewID) {
	s.entries = append(s.entries, ViewEntry{ViewID: id})
}

func (s *viewStack) pop() *ViewEntry {
	if len(s.entries) == 0 {
		return nil
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &top
}

func (s *viewStack) replaceTopView(id model.ViewID) bool {
	if len(s.entries) == 0 {
		return false
	}
	s.entries[len(s.entries)-1] = ViewEntry{ViewID: id}
	return true
}

func (s *viewStack) currentView() *ViewEntry {
	if len(s.entries) == 0 {
		return nil
	}
	e := s.entries[len(s.entries)-1]
	return &e
}

func (s *viewStack) currentViewID() model.ViewID {
	if e := s.currentView(); e != nil {
		return e.ViewID
	}
	return ""
}

func (s *viewStack) canGoBack() bool {
	return len(s.entries) > 1
}

func (s *viewStack) depth() int {
	return len(s.entries)
}

// NavigationController manages the navigation stack and delegates view display to RootLayout
type NavigationController struct {
	app              *tview.Application
	navState         *viewStack
	activeViewGetter func() View               // returns the currently displayed view from RootLayout
	onViewChanged    func(viewID model.ViewID) // callback when view changes
}

// NewNavigationController creates a navigation controller
func NewNavigationController(app *tview.Application) *NavigationController {
	return &NavigationController{
		app:      app,
		navState: newViewStack(),
	}
}

// SetActiveViewGetter sets the function to retrieve the currently displayed view
func (nc *NavigationController) SetActiveViewGetter(getter func() View) {
	nc.activeViewGetter = getter
}

// SetOnViewChanged registers a callback that runs when the view changes
func (nc *NavigationController) SetOnViewChanged(callback func(viewID model.ViewID)) {
	nc.onViewChanged = callback
}

// PushView navigates to a new view, adding it to the stack
func (nc *NavigationController) PushView(viewID model.ViewID) {
	nc.navState.push(viewID)
	nc.notify(viewID)
}

// ReplaceView replaces the current view with a new one (maintains stack depth).
// On an empty stack the view is pushed.
func (nc *NavigationController) ReplaceView(viewID model.ViewID) {
	if !nc.navState.replaceTopView(viewID) {
		nc.navState.push(viewID)
	}
	nc.notify(viewID)
}

// PopView returns to the previous view
func (nc *NavigationController) PopView() bool {
	if !nc.navState.canGoBack() {
		return false
	}
	nc.navState.pop()

	prevEntry := nc.navState.currentView()
	if prevEntry == nil {
		return false
	}
	nc.notify(prevEntry.ViewID)
	return true
}

func (nc *NavigationController) notify(viewID model.ViewID) {
	if nc.onViewChanged != nil {
		nc.onViewChanged(viewID)
	}
}

// GetActiveView returns the currently displayed view (from RootLayout)
func (nc *NavigationController) GetActiveView() View {
	if nc.activeViewGetter != nil {
		return nc.activeViewGetter()
	}
	return nil
}

// CurrentView returns the current view entry from the navigation stack
func (nc *NavigationController) CurrentView() *ViewEntry {
	return nc.navState.currentView()
}

// CurrentViewID returns the view ID of the current view
func (nc *NavigationController) CurrentViewID() model.ViewID {
	return nc.navState.currentViewID()
}

// Depth returns the current stack depth
func (nc *NavigationController) Depth() int {
	return nc.navState.depth()
}

// GetApp returns the tview application
func (nc *NavigationController) GetApp() *tview.Application {
	return nc.app
}

// HandleBack processes the back/escape action
func (nc *NavigationController) HandleBack() bool {
	return nc.PopView()
}

// HandleQuit stops the application
func (nc *NavigationController) HandleQuit() {
	if nc.app != nil {
		nc.app.Stop()
	}
}
