// Package background runs long-lived jobs next to the UI loop.
package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/controller"
)

// StartPlayback starts a player for every layer with a time dimension.
// Steps run on the UI goroutine through app.QueueUpdateDraw; with a nil app
// they run on the player goroutine. Players stop when ctx is cancelled.
func StartPlayback(
	ctx context.Context,
	layerControllers map[string]*controller.LayerController,
	app *tview.Application,
	interval time.Duration,
) []*controller.Player {
	var players []*controller.Player
	for name, lc := range layerControllers {
		td := lc.GetTimeDimension()
		if td == nil {
			continue
		}

		player := controller.NewPlayer(td, interval)
		if app != nil {
			player.SetDispatcher(func(f func()) {
				app.QueueUpdateDraw(f)
			})
		}
		player.Start(ctx)
		players = append(players, player)

		slog.Debug("started time playback", "layer", name, "steps", td.Len(), "interval", player.Interval())
	}
	return players
}
