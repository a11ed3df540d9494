package controller

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/filter"
	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/store"
	"github.com/boolean-maybe/mapfilter/timespec"
)

// LayerController handles layer view actions: filtering, time steps, playback, reload.
type LayerController struct {
	featureStore store.Store
	source       feature.Source
	layerDef     *layer.Layer
	filterState  *model.FilterState
	timeDim      *model.TimeDimension // nil when the layer has no time dimension
	registry     *ActionRegistry
}

// NewLayerController creates a layer controller. timeDim may be nil.
func NewLayerController(
	featureStore store.Store,
	source feature.Source,
	layerDef *layer.Layer,
	filterState *model.FilterState,
	timeDim *model.TimeDimension,
) *LayerController {
	return &LayerController{
		featureStore: featureStore,
		source:       source,
		layerDef:     layerDef,
		filterState:  filterState,
		timeDim:      timeDim,
		registry:     LayerViewActions(timeDim != nil),
	}
}

// GetActionRegistry returns the actions for the layer view
func (lc *LayerController) GetActionRegistry() *ActionRegistry {
	return lc.registry
}

// GetLayerName returns the layer name
func (lc *LayerController) GetLayerName() string {
	return lc.layerDef.Name
}

// GetLayer returns the layer definition
func (lc *LayerController) GetLayer() *layer.Layer {
	return lc.layerDef
}

// GetFilterState returns the filter state edited by the view
func (lc *LayerController) GetFilterState() *model.FilterState {
	return lc.filterState
}

// GetTimeDimension returns the time dimension, nil when the layer has none
func (lc *LayerController) GetTimeDimension() *model.TimeDimension {
	return lc.timeDim
}

// GetStore returns the layer's feature store
func (lc *LayerController) GetStore() store.Store {
	return lc.featureStore
}

// HandleAction processes a layer action
func (lc *LayerController) HandleAction(actionID ActionID) bool {
	switch actionID {
	case ActionClearFilter:
		if lc.filterState.Text() == "" {
			return false
		}
		_ = lc.filterState.SetExpression("")
		return true
	case ActionNextStep:
		return lc.timeDim != nil && lc.timeDim.Next()
	case ActionPrevStep:
		return lc.timeDim != nil && lc.timeDim.Prev()
	case ActionFirstStep:
		if lc.timeDim == nil {
			return false
		}
		lc.timeDim.First()
		return true
	case ActionLastStep:
		if lc.timeDim == nil {
			return false
		}
		lc.timeDim.Last()
		return true
	case ActionTogglePlay:
		return lc.handleTogglePlay()
	default:
		return false
	}
}

func (lc *LayerController) handleTogglePlay() bool {
	if lc.timeDim == nil {
		return false
	}
	// starting from the last step replays from the beginning
	if !lc.timeDim.Playing() && lc.timeDim.AtEnd() {
		lc.timeDim.First()
	}
	lc.timeDim.TogglePlaying()
	return true
}

// HandleFilter applies a filter expression typed by the user
func (lc *LayerController) HandleFilter(text string) {
	if err := lc.filterState.SetExpression(text); err != nil {
		slog.Debug("invalid filter expression", "layer", lc.layerDef.Name, "error", err)
	}
}

// Reload re-reads the layer's source into its store
func (lc *LayerController) Reload(ctx context.Context) error {
	if lc.source == nil {
		return nil
	}
	return store.Load(ctx, lc.source, lc.featureStore)
}

// VisibleFeatures returns the features passing the filter and, when the layer
// has a time dimension, whose time property falls in the current step window.
func (lc *LayerController) VisibleFeatures() []*feature.Feature {
	return lc.featureStore.Search(lc.visiblePredicate())
}

func (lc *LayerController) visiblePredicate() filter.Predicate {
	pred := lc.filterState.Predicate()
	if lc.timeDim == nil || lc.layerDef.Time == nil {
		return pred
	}

	start, end, ok := lc.timeDim.Window()
	if !ok {
		return pred
	}
	property := lc.layerDef.Time.Property
	return func(props filter.Getter) bool {
		if !pred(props) {
			return false
		}
		v, present := props.Get(property)
		if !present {
			return false
		}
		ms, ok := instantOf(v)
		return ok && ms >= start && ms < end
	}
}

// instantOf reads a time property value as epoch milliseconds.
// Strings are ISO-8601 instants, numbers are epoch milliseconds.
func instantOf(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		ms, err := timespec.ParseInstant(s)
		if err != nil {
			return 0, false
		}
		return ms, true
	default:
		return 0, false
	}
}
