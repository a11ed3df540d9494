// Package header renders the top bar: feature stats on the left, key bar on the right.
package header

import (
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/store"
)

// HeaderHeight is the number of rows the header occupies
const HeaderHeight = 4

const statsWidth = 28

// HeaderWidget combines the stats and key bar widgets
type HeaderWidget struct {
	*tview.Flex
	stats  *StatsWidget
	keyBar *KeyBarWidget
}

// NewHeaderWidget creates the header
func NewHeaderWidget() *HeaderWidget {
	h := &HeaderWidget{
		Flex:   tview.NewFlex().SetDirection(tview.FlexColumn),
		stats:  NewStatsWidget(),
		keyBar: NewKeyBarWidget(),
	}
	h.AddItem(h.stats, statsWidth, 0, false)
	h.AddItem(tview.NewBox(), 2, 0, false)
	h.AddItem(h.keyBar, 0, 1, false)
	return h
}

// SetStats shows the given stats
func (h *HeaderWidget) SetStats(stats []store.Stat) {
	h.stats.SetStats(stats)
}

// SetActions shows the shortcuts of the active view
func (h *HeaderWidget) SetActions(registry *controller.ActionRegistry) {
	h.keyBar.SetActions(registry)
}

// Stats returns the stats widget
func (h *HeaderWidget) Stats() *StatsWidget {
	return h.stats
}
