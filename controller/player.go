package controller

import (
	"context"
	"time"

	"github.com/boolean-maybe/mapfilter/model"
)

// Player advances a time dimension on a fixed interval while it is playing.
type Player struct {
	timeDim  *model.TimeDimension
	interval time.Duration
	dispatch func(func()) // runs a step; the UI passes app.QueueUpdateDraw
}

// NewPlayer creates a player. A non-positive interval falls back to one second.
func NewPlayer(timeDim *model.TimeDimension, interval time.Duration) *Player {
	if interval <= 0 {
		interval = time.Second
	}
	return &Player{
		timeDim:  timeDim,
		interval: interval,
		dispatch: func(f func()) { f() },
	}
}

// SetDispatcher sets how steps are run, e.g. on the UI goroutine
func (p *Player) SetDispatcher(dispatch func(func())) {
	if dispatch != nil {
		p.dispatch = dispatch
	}
}

// Interval returns the tick interval
func (p *Player) Interval() time.Duration {
	return p.interval
}

// Start runs the player in a goroutine until ctx is cancelled
func (p *Player) Start(ctx context.Context) {
	go p.Run(ctx)
}

// Run ticks until ctx is cancelled
func (p *Player) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.timeDim.Playing() {
				p.dispatch(p.Step)
			}
		}
	}
}

// Step advances one step if playing. Playback stops at the last step.
func (p *Player) Step() {
	if !p.timeDim.Playing() {
		return
	}
	if !p.timeDim.Next() {
		p.timeDim.SetPlaying(false)
	}
}
