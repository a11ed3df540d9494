package bootstrap

import (
	"context"
	"log/slog"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/internal/app"
	"github.com/boolean-maybe/mapfilter/internal/background"
	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/util/sysinfo"
	"github.com/boolean-maybe/mapfilter/view"
	"github.com/boolean-maybe/mapfilter/view/header"
)

// BootstrapResult contains all initialized application components.
type BootstrapResult struct {
	Cfg      *config.Config
	LogLevel slog.Level
	// SystemInfo is collected before the screen starts, so it has no terminal size.
	SystemInfo   *sysinfo.SystemInfo
	Layers       []*layer.Layer
	LayerData    map[string]*LayerData
	LayerModels  map[string]*LayerModels
	App          *tview.Application
	Controllers  *Controllers
	InputRouter  *controller.InputRouter
	Players      []*controller.Player
	ViewFactory  *view.ViewFactory
	HeaderWidget *header.HeaderWidget
	RootLayout   *view.RootLayout
	Context      context.Context
	CancelFunc   context.CancelFunc
}

// Bootstrap orchestrates the complete application initialization sequence.
// Returns (nil, nil) when the user declines project initialization.
func Bootstrap() (*BootstrapResult, error) {
	// Phase 1: Configuration and logging
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logLevel := InitLogging(cfg)

	systemInfo := sysinfo.NewSystemInfo()
	slog.Debug("collected system information",
		"os", systemInfo.OS,
		"arch", systemInfo.Architecture,
		"term", systemInfo.TermType,
		"theme", systemInfo.DetectedTheme,
		"color_support", systemInfo.ColorSupport,
		"color_count", systemInfo.ColorCount)

	// Phase 2: Project initialization
	proceed, err := EnsureProjectInitialized()
	if err != nil {
		return nil, err
	}
	if !proceed {
		return nil, nil
	}

	// Phase 3: Layers
	layers, err := LoadLayers()
	if err != nil {
		return nil, err
	}
	InitLayerActionRegistry(layers)

	// Phase 4: Stores
	ctx, cancel := context.WithCancel(context.Background())
	data, err := InitStores(ctx, layers)
	if err != nil {
		cancel()
		return nil, err
	}

	// Phase 5: Models
	models := InitLayerModels(layers, cfg.Time.MaxSteps)

	// Phase 6: Application and controllers
	application := app.NewApp()
	app.SetupSignalHandler(application)

	controllers := BuildControllers(application, layers, data, models)
	inputRouter := controller.NewInputRouter(controllers.Nav, controllers.Layers)

	// Phase 7: Views
	viewFactory := view.NewViewFactory(controllers.Layers, cfg.Table.MaxRows)
	headerWidget := header.NewHeaderWidget()
	rootLayout := view.NewRootLayout(headerWidget, viewFactory, application)
	wireOnViewActivated(rootLayout, application)

	// Phase 8: Background playback
	players := background.StartPlayback(ctx, controllers.Layers, application, cfg.Time.PlayInterval)

	// Phase 9: Navigation and input wiring
	wireNavigation(controllers.Nav, rootLayout)
	app.InstallGlobalInputCapture(application, inputRouter, controllers.Nav)

	// Phase 10: Initial view
	if def := layer.DefaultLayer(layers); def != nil {
		controllers.Nav.ReplaceView(model.MakeLayerViewID(def.Name))
	}

	return &BootstrapResult{
		Cfg:          cfg,
		LogLevel:     logLevel,
		SystemInfo:   systemInfo,
		Layers:       layers,
		LayerData:    data,
		LayerModels:  models,
		App:          application,
		Controllers:  controllers,
		InputRouter:  inputRouter,
		Players:      players,
		ViewFactory:  viewFactory,
		HeaderWidget: headerWidget,
		RootLayout:   rootLayout,
		Context:      ctx,
		CancelFunc:   cancel,
	}, nil
}

// wireOnViewActivated wires focus setters into views as they become active.
func wireOnViewActivated(rootLayout *view.RootLayout, app *tview.Application) {
	rootLayout.SetOnViewActivated(func(v controller.View) {
		if focusSettable, ok := v.(controller.FocusSettable); ok {
			focusSettable.SetFocusSetter(func(p tview.Primitive) {
				app.SetFocus(p)
			})
		}
	})
}

// wireNavigation keeps the root layout in sync with the navigation stack.
func wireNavigation(navController *controller.NavigationController, rootLayout *view.RootLayout) {
	navController.SetOnViewChanged(rootLayout.ShowView)
	navController.SetActiveViewGetter(rootLayout.GetContentView)
}
