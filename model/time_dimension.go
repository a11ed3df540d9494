package model

import (
	"sync"

	"github.com/boolean-maybe/mapfilter/timespec"
)

// TimeDimensionListener is called when the current step or play state changes
type TimeDimensionListener func()

// TimeDimension steps through the instants of a time spec.
type TimeDimension struct {
	mu             sync.RWMutex
	spec           timespec.Spec
	instants       []int64
	index          int
	playing        bool
	listeners      map[int]TimeDimensionListener
	nextListenerID int
}

// NewTimeDimension expands spec into at most maxSteps instants (maxSteps <= 0 means all)
func NewTimeDimension(spec timespec.Spec, maxSteps int) *TimeDimension {
	return &TimeDimension{
		spec:           spec,
		instants:       spec.Instants(maxSteps),
		listeners:      make(map[int]TimeDimensionListener),
		nextListenerID: 1,
	}
}

// Spec returns the underlying time spec
func (td *TimeDimension) Spec() timespec.Spec {
	return td.spec
}

// Len returns the number of steps
func (td *TimeDimension) Len() int {
	return len(td.instants)
}

// Index returns the current step index
func (td *TimeDimension) Index() int {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return td.index
}

// Current returns the current instant in epoch milliseconds.
// ok is false when the dimension has no steps.
func (td *TimeDimension) Current() (ms int64, ok bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	if len(td.instants) == 0 {
		return 0, false
	}
	return td.instants[td.index], true
}

// Window returns the half-open interval [start, end) covered by the current step.
// The last step of a range spans one duration; the last step of a list spans one millisecond.
func (td *TimeDimension) Window() (start, end int64, ok bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	if len(td.instants) == 0 {
		return 0, 0, false
	}

	start = td.instants[td.index]
	if td.index+1 < len(td.instants) {
		end = td.instants[td.index+1]
		if end > start {
			return start, end, true
		}
		// repeated list instant
		return start, start + 1, true
	}

	if r, isRange := td.spec.(timespec.Range); isRange {
		return start, start + r.Duration, true
	}
	return start, start + 1, true
}

// Next advances one step; returns false at the last step.
func (td *TimeDimension) Next() bool {
	td.mu.Lock()
	if td.index+1 >= len(td.instants) {
		td.mu.Unlock()
		return false
	}
	td.index++
	td.mu.Unlock()
	td.notifyListeners()
	return true
}

// Prev moves back one step; returns false at the first step.
func (td *TimeDimension) Prev() bool {
	td.mu.Lock()
	if td.index == 0 {
		td.mu.Unlock()
		return false
	}
	td.index--
	td.mu.Unlock()
	td.notifyListeners()
	return true
}

// First rewinds to the first step
func (td *TimeDimension) First() {
	td.SetIndex(0)
}

// Last jumps to the last step
func (td *TimeDimension) Last() {
	td.SetIndex(len(td.instants) - 1)
}

// SetIndex moves to step idx, clamped to the valid range
func (td *TimeDimension) SetIndex(idx int) {
	td.mu.Lock()
	if idx >= len(td.instants) {
		idx = len(td.instants) - 1
	}
	if idx < 0 {
		idx = 0
	}
	changed := td.index != idx
	td.index = idx
	td.mu.Unlock()
	if changed {
		td.notifyListeners()
	}
}

// AtEnd reports whether the current step is the last one
func (td *TimeDimension) AtEnd() bool {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return td.index+1 >= len(td.instants)
}

// Playing reports whether playback is on
func (td *TimeDimension) Playing() bool {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return td.playing
}

// SetPlaying turns playback on or off
func (td *TimeDimension) SetPlaying(playing bool) {
	td.mu.Lock()
	changed := td.playing != playing
	td.playing = playing
	td.mu.Unlock()
	if changed {
		td.notifyListeners()
	}
}

// TogglePlaying flips playback and returns the new state
func (td *TimeDimension) TogglePlaying() bool {
	td.mu.Lock()
	td.playing = !td.playing
	playing := td.playing
	td.mu.Unlock()
	td.notifyListeners()
	return playing
}

// AddListener registers a callback for step and play state changes
func (td *TimeDimension) AddListener(listener TimeDimensionListener) int {
	td.mu.Lock()
	defer td.mu.Unlock()
	id := td.nextListenerID
	td.nextListenerID++
	td.listeners[id] = listener
	return id
}

// RemoveListener removes a listener by ID
func (td *TimeDimension) RemoveListener(id int) {
	td.mu.Lock()
	defer td.mu.Unlock()
	delete(td.listeners, id)
}

func (td *TimeDimension) notifyListeners() {
	td.mu.RLock()
	listeners := make([]TimeDimensionListener, 0, len(td.listeners))
	for _, l := range td.listeners {
		listeners = append(listeners, l)
	}
	td.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
