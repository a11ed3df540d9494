package view

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/util/gradient"
)

const timeBarProgressWidth = 20

// TimeBar shows the current step of a time dimension
type TimeBar struct {
	*tview.TextView
	timeDim *model.TimeDimension
}

// NewTimeBar creates a time bar for td
func NewTimeBar(td *model.TimeDimension) *TimeBar {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetWrap(false)
	tb := &TimeBar{TextView: tv, timeDim: td}
	tb.Refresh()
	return tb
}

// Refresh redraws the bar text from the time dimension
func (tb *TimeBar) Refresh() {
	tb.SetText(renderTimeBar(tb.timeDim))
}

func renderTimeBar(td *model.TimeDimension) string {
	colors := config.GetColors()
	cur, ok := td.Current()
	if !ok {
		return fmt.Sprintf(" %sTime:%s no steps", colors.TimeBarLabel, colors.TimeBarValue)
	}

	state := "paused"
	stateColor := colors.TimeBarValue
	if td.Playing() {
		state = "playing"
		stateColor = colors.TimeBarPlaying
	}

	bar := gradient.Bar(colors.TimeBarTrack, colors.TimeBarEmpty, timeBarProgressWidth, td.Index(), td.Len())

	return fmt.Sprintf(" %sTime:%s %s  %sStep:%s %d/%d %s  %s%s  %sSpace%s play/pause",
		colors.TimeBarLabel, colors.TimeBarValue, formatStepTime(cur),
		colors.TimeBarLabel, colors.TimeBarValue, td.Index()+1, td.Len(), bar,
		stateColor, state,
		colors.TimeBarKey, colors.TimeBarValue)
}

// formatStepTime renders epoch milliseconds as RFC3339 in UTC
func formatStepTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
