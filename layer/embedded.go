package layer

import (
	_ "embed"
	"log/slog"
)

//go:embed embed/features.yaml
var featuresYAML string

// loadEmbeddedLayer parses a single embedded layer and sets its ConfigIndex to -1
func loadEmbeddedLayer(yamlContent string, sourceName string) *Layer {
	l, err := parseLayerYAML([]byte(yamlContent), sourceName)
	if err != nil {
		slog.Error("failed to parse embedded layer", "source", sourceName, "error", err)
		return nil
	}
	l.ConfigIndex = -1
	return l
}

// loadEmbeddedLayers loads the built-in default layers
func loadEmbeddedLayers() []*Layer {
	embeddedLayers := []struct {
		yaml   string
		source string
	}{
		{featuresYAML, "embedded:features"},
	}

	var layers []*Layer
	for _, el := range embeddedLayers {
		if l := loadEmbeddedLayer(el.yaml, el.source); l != nil {
			layers = append(layers, l)
		}
	}
	return layers
}
