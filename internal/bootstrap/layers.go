package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/layer"
)

// LoadLayers loads embedded and configured layer definitions.
func LoadLayers() ([]*layer.Layer, error) {
	layers, err := layer.LoadLayers()
	if err != nil {
		return nil, fmt.Errorf("load layers: %w", err)
	}
	for _, l := range layers {
		slog.Debug("loaded layer", "name", l.Name, "key", l.KeyName(), "source", l.Source.Type, "file", l.FilePath)
	}
	return layers, nil
}

// InitLayerActionRegistry registers the layer switching keys.
func InitLayerActionRegistry(layers []*layer.Layer) {
	infos := make([]controller.LayerInfo, 0, len(layers))
	for _, l := range layers {
		key, r := l.GetActivationKey()
		infos = append(infos, controller.LayerInfo{
			Name: l.Name,
			Key:  key,
			Rune: r,
		})
	}
	controller.InitLayerActions(infos)
}
