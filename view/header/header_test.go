package header

import (
	"slices"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/store"
)

func TestStatsWidget_SetStats(t *testing.T) {
	tests := []struct {
		name  string
		stats []store.Stat
		want  []string
	}{
		{"empty", nil, []string{}},
		{"ordered by order then name", []store.Stat{
			{Name: "Visible", Value: "3", Order: 2},
			{Name: "Source", Value: "sample.geojson", Order: 0},
			{Name: "Features", Value: "6", Order: 1},
			{Name: "Alpha", Value: "x", Order: 1},
		}, []string{"Source", "Alpha", "Features", "Visible"}},
		{"truncated to header height", []store.Stat{
			{Name: "a", Order: 0}, {Name: "b", Order: 1}, {Name: "c", Order: 2},
			{Name: "d", Order: 3}, {Name: "e", Order: 4}, {Name: "f", Order: 5},
		}, []string{"a", "b", "c", "d", "e", "f"}[:maxStats]},
		{"duplicate name keeps last", []store.Stat{
			{Name: "Visible", Value: "3", Order: 0},
			{Name: "Visible", Value: "4", Order: 0},
		}, []string{"Visible"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw := NewStatsWidget()
			sw.SetStats([]store.Stat{{Name: "Old", Value: "1"}})
			sw.SetStats(tt.stats)
			if got := sw.GetKeys(); !slices.Equal(got, tt.want) {
				t.Errorf("GetKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatsWidget_AlignsValues(t *testing.T) {
	sw := NewStatsWidget()
	sw.SetStats([]store.Stat{
		{Name: "Features", Value: "6", Order: 0},
		{Name: "Visible", Value: "4", Order: 1},
	})
	text := sw.GetText(true)
	if !strings.Contains(text, "Visible:  4") {
		t.Errorf("value not aligned: %q", text)
	}
}

func TestKeyBar_SetActions(t *testing.T) {
	registry := controller.NewActionRegistry()
	registry.Register(controller.Action{ID: controller.ActionFocusFilter, Key: tcell.KeyRune, Rune: '/', Label: "Filter", ShowInHeader: true})
	registry.Register(controller.Action{ID: controller.ActionNavUp, Key: tcell.KeyUp, Label: "up"})
	registry.Register(controller.Action{ID: "layer:Events", Key: tcell.KeyRune, Rune: 'E', Label: "Events", ShowInHeader: true})
	registry.Register(controller.Action{ID: controller.ActionQuit, Key: tcell.KeyRune, Rune: 'q', Label: "Quit", ShowInHeader: true})

	kb := NewKeyBarWidget()
	width := kb.SetActions(registry)
	if width <= 0 || width != kb.GetWidth() {
		t.Fatalf("SetActions() width = %d, GetWidth() = %d", width, kb.GetWidth())
	}

	text := kb.GetText(true)
	for _, want := range []string{"Filter", "Events", "Quit", "Help"} {
		if !strings.Contains(text, want) {
			t.Errorf("key bar missing %q: %q", want, text)
		}
	}
	if strings.Contains(text, "up") {
		t.Errorf("key bar shows a hidden action: %q", text)
	}
	if strings.Count(text, "Quit") != 1 {
		t.Errorf("global action duplicated: %q", text)
	}
}

func TestLayoutColumns(t *testing.T) {
	if lines := layoutColumns(nil, 4); lines != nil {
		t.Errorf("expected no lines, got %v", lines)
	}

	cells := make([]keyCell, 5)
	for i := range cells {
		cells[i] = keyCell{key: "k", label: "label"}
	}
	lines := layoutColumns(cells, 4)
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if strings.Count(lines[0], "label") != 2 || strings.Count(lines[3], "label") != 1 {
		t.Errorf("unexpected column fill: %q", lines)
	}
}
