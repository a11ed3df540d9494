package controller

import (
	"github.com/gdamore/tcell/v2"
)

// ActionRegistry maps keyboard shortcuts to actions and matches key events.

// ActionID identifies a specific action
type ActionID string

// ActionID values for global actions (available in all views).
const (
	ActionBack    ActionID = "back"
	ActionQuit    ActionID = "quit"
	ActionRefresh ActionID = "refresh"
	ActionHelp    ActionID = "help"
)

// ActionID values for layer views.
const (
	ActionFocusFilter ActionID = "focus_filter"
	ActionClearFilter ActionID = "clear_filter"
	ActionNextStep    ActionID = "next_step"
	ActionPrevStep    ActionID = "prev_step"
	ActionFirstStep   ActionID = "first_step"
	ActionLastStep    ActionID = "last_step"
	ActionTogglePlay  ActionID = "toggle_play"
	ActionNavUp       ActionID = "nav_up"
	ActionNavDown     ActionID = "nav_down"
)

const layerActionPrefix = "layer:"

// LayerInfo provides the minimal info needed to register layer activation actions.
// Avoids import cycle between controller and view packages.
type LayerInfo struct {
	Name     string
	Key      tcell.Key
	Rune     rune
	Modifier tcell.ModMask
}

// layerActionRegistry holds layer activation actions (populated at init time)
var layerActionRegistry *ActionRegistry

// InitLayerActions creates the layer action registry from loaded layers.
// Called once during app initialization after layers are loaded.
func InitLayerActions(layers []LayerInfo) {
	layerActionRegistry = NewActionRegistry()
	for _, l := range layers {
		if l.Key == 0 && l.Rune == 0 {
			continue // skip layers without key binding
		}
		layerActionRegistry.Register(Action{
			ID:           ActionID(layerActionPrefix + l.Name),
			Key:          l.Key,
			Rune:         l.Rune,
			Modifier:     l.Modifier,
			Label:        l.Name,
			ShowInHeader: true,
		})
	}
}

// GetLayerActions returns the layer action registry
func GetLayerActions() *ActionRegistry {
	if layerActionRegistry == nil {
		return NewActionRegistry() // empty if not initialized
	}
	return layerActionRegistry
}

// GetLayerNameFromAction extracts the layer name from a layer action ID.
// Returns empty string if the action is not a layer action.
func GetLayerNameFromAction(id ActionID) string {
	s := string(id)
	if len(s) > len(layerActionPrefix) && s[:len(layerActionPrefix)] == layerActionPrefix {
		return s[len(layerActionPrefix):]
	}
	return ""
}

// Action represents a keyboard shortcut binding
type Action struct {
	ID           ActionID
	Key          tcell.Key
	Rune         rune // for letter keys (when Key == tcell.KeyRune)
	Label        string
	Modifier     tcell.ModMask
	ShowInHeader bool // whether to display in the key bar
}

// KeyLabel renders the shortcut for help text and the key bar
func (a Action) KeyLabel() string {
	var s string
	switch a.Key {
	case tcell.KeyRune:
		if a.Rune == ' ' {
			s = "Space"
		} else {
			s = string(a.Rune)
		}
	default:
		s = tcell.KeyNames[a.Key]
	}
	if a.Modifier&tcell.ModShift != 0 {
		s = "Shift-" + s
	}
	return s
}

// ActionRegistry holds the available actions for a view.
// actions keeps registration order for display; byKey and byRune index the latest binding.
type ActionRegistry struct {
	actions []Action
	byKey   map[tcell.Key]Action
	byRune  map[rune]Action
}

// NewActionRegistry creates a new action registry
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make([]Action, 0),
		byKey:   make(map[tcell.Key]Action),
		byRune:  make(map[rune]Action),
	}
}

// Register adds an action to the registry
func (r *ActionRegistry) Register(action Action) {
	r.actions = append(r.actions, action)
	if action.Key == tcell.KeyRune {
		r.byRune[action.Rune] = action
	} else {
		r.byKey[action.Key] = action
	}
}

// Merge adds all actions from another registry into this one.
// If there are key conflicts, the other registry's actions take precedence.
func (r *ActionRegistry) Merge(other *ActionRegistry) {
	for _, action := range other.actions {
		r.Register(action)
	}
}

// MergeLayerActions adds all layer activation actions to this registry.
func (r *ActionRegistry) MergeLayerActions() {
	if layerActionRegistry != nil {
		r.Merge(layerActionRegistry)
	}
}

// GetActions returns all registered actions
func (r *ActionRegistry) GetActions() []Action {
	return r.actions
}

// Match finds an action matching the given key event
func (r *ActionRegistry) Match(event *tcell.EventKey) *Action {
	// normalize modifier (ignore caps lock, num lock, etc.)
	mod := event.Modifiers() & (tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta)

	for i := range r.actions {
		action := &r.actions[i]

		if event.Key() == tcell.KeyRune {
			if action.Key == tcell.KeyRune && action.Rune == event.Rune() {
				// if action has explicit modifiers, require exact match
				if action.Modifier != 0 && action.Modifier != mod {
					continue
				}
				return action
			}
		} else if action.Key == event.Key() && action.Modifier == mod {
			return action
		}
	}
	return nil
}

// GetHeaderActions returns only actions marked for key bar display
func (r *ActionRegistry) GetHeaderActions() []Action {
	var result []Action
	for _, a := range r.actions {
		if a.ShowInHeader {
			result = append(result, a)
		}
	}
	return result
}

// DefaultGlobalActions returns common actions available in all views
func DefaultGlobalActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionBack, Key: tcell.KeyEscape, Label: "Back", ShowInHeader: true})
	r.Register(Action{ID: ActionQuit, Key: tcell.KeyRune, Rune: 'q', Label: "Quit", ShowInHeader: true})
	r.Register(Action{ID: ActionRefresh, Key: tcell.KeyRune, Rune: 'r', Label: "Reload", ShowInHeader: true})
	r.Register(Action{ID: ActionHelp, Key: tcell.KeyRune, Rune: '?', Label: "Help", ShowInHeader: true})
	return r
}

// LayerViewActions returns the action registry for a layer view.
// Step actions are registered only when the layer has a time dimension.
func LayerViewActions(hasTime bool) *ActionRegistry {
	r := NewActionRegistry()

	// table navigation (not shown in key bar)
	r.Register(Action{ID: ActionNavUp, Key: tcell.KeyUp, Label: "↑"})
	r.Register(Action{ID: ActionNavDown, Key: tcell.KeyDown, Label: "↓"})
	r.Register(Action{ID: ActionNavUp, Key: tcell.KeyRune, Rune: 'k', Label: "↑"})
	r.Register(Action{ID: ActionNavDown, Key: tcell.KeyRune, Rune: 'j', Label: "↓"})

	r.Register(Action{ID: ActionFocusFilter, Key: tcell.KeyRune, Rune: '/', Label: "Filter", ShowInHeader: true})
	r.Register(Action{ID: ActionClearFilter, Key: tcell.KeyRune, Rune: 'c', Label: "Clear filter", ShowInHeader: true})

	if hasTime {
		r.Register(Action{ID: ActionPrevStep, Key: tcell.KeyLeft, Label: "← Prev", ShowInHeader: true})
		r.Register(Action{ID: ActionNextStep, Key: tcell.KeyRight, Label: "Next →", ShowInHeader: true})
		r.Register(Action{ID: ActionPrevStep, Key: tcell.KeyRune, Rune: 'h', Label: "← Prev"})
		r.Register(Action{ID: ActionNextStep, Key: tcell.KeyRune, Rune: 'l', Label: "Next →"})
		r.Register(Action{ID: ActionFirstStep, Key: tcell.KeyHome, Label: "First", ShowInHeader: true})
		r.Register(Action{ID: ActionLastStep, Key: tcell.KeyEnd, Label: "Last", ShowInHeader: true})
		r.Register(Action{ID: ActionTogglePlay, Key: tcell.KeyRune, Rune: ' ', Label: "Play/Pause", ShowInHeader: true})
	}

	// layer activation keys are merged dynamically after layers load
	r.MergeLayerActions()

	return r
}
