package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivo/tview"
)

// SetupSignalHandler stops the application on SIGINT or SIGTERM so the
// terminal is restored.
func SetupSignalHandler(app *tview.Application) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		slog.Info("received signal, stopping", "signal", sig.String())
		app.Stop()
	}()
}
