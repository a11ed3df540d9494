package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/store"
)

// LayerData is a layer's source and the store it loads into.
type LayerData struct {
	Source feature.Source
	Store  store.Store
}

// InitStores creates a source and an in-memory store per layer and loads it.
// A layer whose source fails to load keeps an empty store so the explorer
// still opens; the failure is logged and can be retried with reload.
// An invalid source definition is an error.
func InitStores(ctx context.Context, layers []*layer.Layer) (map[string]*LayerData, error) {
	data := make(map[string]*LayerData, len(layers))
	for _, l := range layers {
		src, err := feature.NewSource(l.Source)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}

		s := store.NewInMemoryStore(src.Name())
		if err := store.Load(ctx, src, s); err != nil {
			slog.Warn("failed to load layer features", "layer", l.Name, "error", err)
		}
		data[l.Name] = &LayerData{Source: src, Store: s}
	}
	return data, nil
}
