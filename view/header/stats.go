package header

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/store"
)

// maxStats is the number of stat lines the header has room for
const maxStats = HeaderHeight

// StatsWidget shows the active store's stats as aligned "name: value" lines
type StatsWidget struct {
	*tview.TextView

	mu    sync.RWMutex
	shown []store.Stat
}

func NewStatsWidget() *StatsWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)
	return &StatsWidget{TextView: tv}
}

// SetStats replaces the shown stats. Stats are ordered by Order then Name;
// those past the header height are dropped. A repeated name keeps its last value.
func (sw *StatsWidget) SetStats(stats []store.Stat) {
	byName := make(map[string]store.Stat, len(stats))
	for _, s := range stats {
		byName[s.Name] = s
	}
	shown := make([]store.Stat, 0, len(byName))
	for _, s := range byName {
		shown = append(shown, s)
	}
	slices.SortFunc(shown, func(a, b store.Stat) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(shown) > maxStats {
		shown = shown[:maxStats]
	}

	sw.mu.Lock()
	sw.shown = shown
	sw.mu.Unlock()
	sw.SetText(renderStats(shown))
}

// GetKeys returns the shown stat names in display order
func (sw *StatsWidget) GetKeys() []string {
	sw.mu.RLock()
	defer sw.mu.RUnlock()
	keys := make([]string, len(sw.shown))
	for i, s := range sw.shown {
		keys[i] = s.Name
	}
	return keys
}

func renderStats(stats []store.Stat) string {
	width := 0
	for _, s := range stats {
		width = max(width, len(s.Name))
	}
	colors := config.GetColors()
	lines := make([]string, len(stats))
	for i, s := range stats {
		lines[i] = fmt.Sprintf("%s%s:%s%s %s", colors.StatusLabel, s.Name, colors.StatusValue,
			strings.Repeat(" ", width-len(s.Name)), tview.Escape(s.Value))
	}
	return strings.Join(lines, "\n")
}
