package layer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/mapfilter/config"
)

// loadLayersFile loads the layers defined in one layers.yaml. Invalid entries
// are logged and skipped.
func loadLayersFile(path string) []*Layer {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read layers.yaml", "path", path, "error", err)
		return nil
	}
	return parseLayersFile(data, path)
}

func parseLayersFile(data []byte, path string) []*Layer {
	var lf LayersFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		slog.Warn("failed to parse layers.yaml", "path", path, "error", err)
		return nil
	}

	baseDir := filepath.Dir(path)
	var layers []*Layer
	for i, cfg := range lf.Layers {
		if cfg.Name == "" {
			slog.Warn("skipping layer with no name in layers.yaml", "path", path, "index", i)
			continue
		}

		source := fmt.Sprintf("%s:%s", path, cfg.Name)
		l, err := parseLayerConfig(cfg, source)
		if err != nil {
			slog.Warn("failed to load layer from layers.yaml", "name", cfg.Name, "error", err)
			continue
		}
		l.ConfigIndex = i
		l.baseDir = baseDir

		layers = append(layers, l)
		slog.Info("loaded layer", "name", l.Name, "key", l.KeyName(), "file", path)
	}
	return layers
}

// LoadLayers loads all layers: embedded defaults plus every layers.yaml found
// (user config, then project, then cwd). A layer with the name of an earlier
// one is merged over it (non-empty fields win) and keeps the earlier position.
func LoadLayers() ([]*Layer, error) {
	var files [][]*Layer
	for _, path := range config.FindLayersFiles() {
		files = append(files, loadLayersFile(path))
	}
	layers := combineLayers(loadEmbeddedLayers(), files...)
	if len(layers) == 0 {
		return nil, fmt.Errorf("no layers defined")
	}

	for _, l := range layers {
		resolveSourcePath(l)
	}
	return layers, nil
}

// combineLayers merges each configured set over the accumulated list
func combineLayers(base []*Layer, configured ...[]*Layer) []*Layer {
	result := append([]*Layer(nil), base...)
	index := make(map[string]int, len(result))
	for i, l := range result {
		index[l.Name] = i
	}

	for _, set := range configured {
		for _, l := range set {
			i, ok := index[l.Name]
			if !ok {
				index[l.Name] = len(result)
				result = append(result, l)
				continue
			}

			merged, err := mergeLayers(result[i], l)
			if err != nil {
				slog.Warn("failed to merge layer override", "name", l.Name, "error", err)
				continue
			}
			slog.Info("layer override (merged)", "name", l.Name,
				"from", result[i].FilePath, "to", l.FilePath)
			result[i] = merged
		}
	}
	return result
}

// DefaultLayer returns the last layer marked default, else the first layer.
// Configured layers come after embedded ones, so their default wins.
func DefaultLayer(layers []*Layer) *Layer {
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].Default {
			return layers[i]
		}
	}
	if len(layers) > 0 {
		return layers[0]
	}
	return nil
}

// FindLayer returns the layer with the given name or nil
func FindLayer(layers []*Layer, name string) *Layer {
	for _, l := range layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}
