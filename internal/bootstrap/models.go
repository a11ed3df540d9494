package bootstrap

import (
	"log/slog"

	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/model"
)

// LayerModels holds the UI state of one layer.
type LayerModels struct {
	Filter *model.FilterState
	Time   *model.TimeDimension // nil when the layer has no time dimension
}

// InitLayerModels creates filter and time state for every layer, seeded
// with the layer's configured filter and time spec.
func InitLayerModels(layers []*layer.Layer, maxSteps int) map[string]*LayerModels {
	models := make(map[string]*LayerModels, len(layers))
	for _, l := range layers {
		fs := model.NewFilterState()
		if err := fs.SetExpression(l.FilterText); err != nil {
			slog.Warn("invalid layer filter", "layer", l.Name, "filter", l.FilterText, "error", err)
		}

		var td *model.TimeDimension
		if l.Time != nil {
			td = model.NewTimeDimension(l.Time.Spec, maxSteps)
		}
		models[l.Name] = &LayerModels{Filter: fs, Time: td}
	}
	return models
}
