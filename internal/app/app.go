// Package app owns the tview application: its root, global key capture and
// shutdown on signals.
package app

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/view"
)

// NewApp creates the explorer application. Every action has a key binding,
// so mouse input stays off.
func NewApp() *tview.Application {
	return tview.NewApplication().EnableMouse(false)
}

// Run shows root full screen and blocks until the explorer quits.
func Run(application *tview.Application, root *view.RootLayout) error {
	if err := application.SetRoot(root.GetPrimitive(), true).Run(); err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	return nil
}
