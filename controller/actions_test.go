package controller

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func TestActionRegistry_Merge(t *testing.T) {
	tests := []struct {
		name           string
		registry1      func() *ActionRegistry
		registry2      func() *ActionRegistry
		wantActionIDs  []ActionID
		wantRuneLookup map[rune]ActionID
	}{
		{
			name: "merge two non-overlapping registries",
			registry1: func() *ActionRegistry {
				r := NewActionRegistry()
				r.Register(Action{ID: ActionQuit, Key: tcell.KeyRune, Rune: 'q', Label: "Quit"})
				return r
			},
			registry2: func() *ActionRegistry {
				r := NewActionRegistry()
				r.Register(Action{ID: ActionRefresh, Key: tcell.KeyRune, Rune: 'r', Label: "Reload"})
				r.Register(Action{ID: ActionBack, Key: tcell.KeyEscape, Label: "Back"})
				return r
			},
			wantActionIDs:  []ActionID{ActionQuit, ActionRefresh, ActionBack},
			wantRuneLookup: map[rune]ActionID{'q': ActionQuit, 'r': ActionRefresh},
		},
		{
			name: "merge with overlapping key - second registry wins",
			registry1: func() *ActionRegistry {
				r := NewActionRegistry()
				r.Register(Action{ID: ActionQuit, Key: tcell.KeyRune, Rune: 'q', Label: "Quit"})
				return r
			},
			registry2: func() *ActionRegistry {
				r := NewActionRegistry()
				r.Register(Action{ID: ActionFocusFilter, Key: tcell.KeyRune, Rune: 'q', Label: "Quick filter"})
				return r
			},
			wantActionIDs:  []ActionID{ActionQuit, ActionFocusFilter},
			wantRuneLookup: map[rune]ActionID{'q': ActionFocusFilter},
		},
		{
			name:      "merge into empty registry",
			registry1: NewActionRegistry,
			registry2: func() *ActionRegistry {
				r := NewActionRegistry()
				r.Register(Action{ID: ActionRefresh, Key: tcell.KeyRune, Rune: 'r', Label: "Reload"})
				return r
			},
			wantActionIDs:  []ActionID{ActionRefresh},
			wantRuneLookup: map[rune]ActionID{'r': ActionRefresh},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r1 := tt.registry1()
			r1.Merge(tt.registry2())

			actions := r1.GetActions()
			if len(actions) != len(tt.wantActionIDs) {
				t.Fatalf("expected %d actions, got %d", len(tt.wantActionIDs), len(actions))
			}
			for i, wantID := range tt.wantActionIDs {
				if actions[i].ID != wantID {
					t.Errorf("action at index %d: want ID %v, got %v", i, wantID, actions[i].ID)
				}
			}
			for r, wantID := range tt.wantRuneLookup {
				if action, exists := r1.byRune[r]; !exists || action.ID != wantID {
					t.Errorf("byRune[%q]: want ID %v, got %v", r, wantID, action.ID)
				}
			}
		})
	}
}

func TestActionRegistry_Match(t *testing.T) {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionNextStep, Key: tcell.KeyRight, Label: "Next"})
	r.Register(Action{ID: ActionLastStep, Key: tcell.KeyRight, Modifier: tcell.ModShift, Label: "Last"})
	r.Register(Action{ID: ActionTogglePlay, Key: tcell.KeyRune, Rune: ' ', Label: "Play"})

	tests := []struct {
		name  string
		event *tcell.EventKey
		want  ActionID
	}{
		{"plain arrow", specialKey(tcell.KeyRight, tcell.ModNone), ActionNextStep},
		{"shifted arrow", specialKey(tcell.KeyRight, tcell.ModShift), ActionLastStep},
		{"rune", keyEvent(' '), ActionTogglePlay},
		{"unbound rune", keyEvent('z'), ""},
		{"unbound key", specialKey(tcell.KeyLeft, tcell.ModNone), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Match(tt.event)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("Match() = %v, want nil", got.ID)
			case tt.want != "" && (got == nil || got.ID != tt.want):
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayerActions(t *testing.T) {
	t.Cleanup(func() { layerActionRegistry = nil })

	InitLayerActions([]LayerInfo{
		{Name: "Events", Key: tcell.KeyRune, Rune: 'E'},
		{Name: "Hidden"},
		{Name: "Fn", Key: tcell.KeyF2},
	})

	if got := len(GetLayerActions().GetActions()); got != 2 {
		t.Fatalf("expected 2 layer actions, got %d", got)
	}

	registry := LayerViewActions(true)
	action := registry.Match(keyEvent('E'))
	if action == nil || GetLayerNameFromAction(action.ID) != "Events" {
		t.Errorf("expected layer activation for Events, got %v", action)
	}
	action = registry.Match(specialKey(tcell.KeyF2, tcell.ModNone))
	if action == nil || GetLayerNameFromAction(action.ID) != "Fn" {
		t.Errorf("expected layer activation for Fn, got %v", action)
	}
	if GetLayerNameFromAction(ActionQuit) != "" {
		t.Error("quit is not a layer action")
	}
	if GetLayerNameFromAction("layer:") != "" {
		t.Error("bare prefix is not a layer action")
	}
}

func TestActionKeyLabel(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{Action{Key: tcell.KeyRune, Rune: '/'}, "/"},
		{Action{Key: tcell.KeyRune, Rune: ' '}, "Space"},
		{Action{Key: tcell.KeyHome}, "Home"},
		{Action{Key: tcell.KeyRight, Modifier: tcell.ModShift}, "Shift-Right"},
	}
	for _, tt := range tests {
		if got := tt.action.KeyLabel(); got != tt.want {
			t.Errorf("KeyLabel() = %q, want %q", got, tt.want)
		}
	}
}

func TestGetHeaderActions(t *testing.T) {
	registry := LayerViewActions(false)
	for _, a := range registry.GetHeaderActions() {
		if a.ID == ActionNavUp || a.ID == ActionNavDown {
			t.Errorf("navigation action %v should not be in header", a.ID)
		}
	}
	if len(registry.GetHeaderActions()) != 2 {
		t.Errorf("expected filter actions only, got %v", registry.GetHeaderActions())
	}
}
