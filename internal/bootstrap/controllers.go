package bootstrap

import (
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/layer"
)

// Controllers holds all application controllers.
type Controllers struct {
	Nav    *controller.NavigationController
	Layers map[string]*controller.LayerController
}

// BuildControllers constructs the navigation controller and one controller per layer.
func BuildControllers(
	app *tview.Application,
	layers []*layer.Layer,
	data map[string]*LayerData,
	models map[string]*LayerModels,
) *Controllers {
	navController := controller.NewNavigationController(app)

	layerControllers := make(map[string]*controller.LayerController, len(layers))
	for _, l := range layers {
		d := data[l.Name]
		m := models[l.Name]
		layerControllers[l.Name] = controller.NewLayerController(d.Store, d.Source, l, m.Filter, m.Time)
	}

	return &Controllers{
		Nav:    navController,
		Layers: layerControllers,
	}
}
