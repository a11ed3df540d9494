package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/controller"
)

// InstallGlobalInputCapture routes every key event through the input router.
// Handled events are consumed; the rest reach the focused primitive.
func InstallGlobalInputCapture(
	app *tview.Application,
	inputRouter *controller.InputRouter,
	navController *controller.NavigationController,
) {
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if inputRouter.HandleInput(event, navController.CurrentView()) {
			return nil
		}
		return event
	})
}
