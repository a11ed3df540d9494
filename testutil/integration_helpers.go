package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/controller"
	"github.com/boolean-maybe/mapfilter/feature"
	"github.com/boolean-maybe/mapfilter/internal/bootstrap"
	"github.com/boolean-maybe/mapfilter/layer"
	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/timespec"
	"github.com/boolean-maybe/mapfilter/view"
	"github.com/boolean-maybe/mapfilter/view/header"
)

// EventsTimeSpec steps through the sample features hour by hour
const EventsTimeSpec = "2013-07-14T00:00:00Z/2013-07-14T02:00:00Z/PT1H"

// TestApp wraps the full MVC stack for integration testing with SimulationScreen
type TestApp struct {
	App              *tview.Application
	Screen           tcell.SimulationScreen
	RootLayout       *view.RootLayout
	NavController    *controller.NavigationController
	InputRouter      *controller.InputRouter
	LayerControllers map[string]*controller.LayerController
	Layers           []*layer.Layer
	DataDir          string
	DataFile         string
	t                *testing.T
}

// DefaultLayers returns the layers NewTestApp uses when none are given:
// "Events" (key E, time dimension, default) and "Strong" (key S, mag >= 4).
func DefaultLayers(t *testing.T, dataFile string) []*layer.Layer {
	t.Helper()
	spec, err := timespec.Parse(EventsTimeSpec)
	if err != nil {
		t.Fatalf("parse time spec: %v", err)
	}
	src := feature.SourceConfig{Type: feature.SourceGeoJSON, Path: dataFile}
	return []*layer.Layer{
		{
			Name:    "Events",
			Key:     tcell.KeyRune,
			Rune:    'E',
			Source:  src,
			Columns: []string{"place", "kind", "mag"},
			Time:    &layer.TimeDimension{Property: "time", Text: EventsTimeSpec, Spec: spec},
			Default: true,
		},
		{
			Name:       "Strong",
			Key:        tcell.KeyRune,
			Rune:       'S',
			Source:     src,
			Columns:    []string{"place", "mag"},
			FilterText: "mag >= 4",
		},
	}
}

// NewTestApp bootstraps the full MVC stack over the sample features.
// Mirrors the initialization sequence of bootstrap.Bootstrap without the
// project prompt, logging setup and background playback.
func NewTestApp(t *testing.T, layers ...*layer.Layer) *TestApp {
	t.Helper()

	// isolate config paths so tests don't read the real user config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	config.ResetPathManager()
	t.Cleanup(config.ResetPathManager)

	dataDir := t.TempDir()
	dataFile := WriteGeoJSON(t, dataDir, "events.geojson", SampleFeatures())
	if len(layers) == 0 {
		layers = DefaultLayers(t, dataFile)
	}

	bootstrap.InitLayerActionRegistry(layers)
	data, err := bootstrap.InitStores(context.Background(), layers)
	if err != nil {
		t.Fatalf("init stores: %v", err)
	}
	models := bootstrap.InitLayerModels(layers, 100)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	screen.SetSize(100, 30)
	screen.Clear()

	app := tview.NewApplication()
	app.SetScreen(screen)

	controllers := bootstrap.BuildControllers(app, layers, data, models)
	inputRouter := controller.NewInputRouter(controllers.Nav, controllers.Layers)

	viewFactory := view.NewViewFactory(controllers.Layers, 0)
	rootLayout := view.NewRootLayout(header.NewHeaderWidget(), viewFactory, app)
	rootLayout.SetOnViewActivated(func(v controller.View) {
		if focusSettable, ok := v.(controller.FocusSettable); ok {
			focusSettable.SetFocusSetter(func(p tview.Primitive) {
				app.SetFocus(p)
			})
		}
	})

	controllers.Nav.SetOnViewChanged(rootLayout.ShowView)
	controllers.Nav.SetActiveViewGetter(rootLayout.GetContentView)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if inputRouter.HandleInput(event, controllers.Nav.CurrentView()) {
			return nil
		}
		return event
	})
	app.SetRoot(rootLayout.GetPrimitive(), true).EnableMouse(false)

	// Note: Do NOT call app.Run() - we use app.Draw() + screen.Show() for synchronous testing

	ta := &TestApp{
		App:              app,
		Screen:           screen,
		RootLayout:       rootLayout,
		NavController:    controllers.Nav,
		InputRouter:      inputRouter,
		LayerControllers: controllers.Layers,
		Layers:           layers,
		DataDir:          dataDir,
		DataFile:         dataFile,
		t:                t,
	}

	if def := layer.DefaultLayer(layers); def != nil {
		controllers.Nav.ReplaceView(model.MakeLayerViewID(def.Name))
	}
	ta.Draw()
	return ta
}

// Draw forces a synchronous draw without running the app event loop
func (ta *TestApp) Draw() {
	_, width, height := ta.Screen.GetContents()
	ta.RootLayout.GetPrimitive().SetRect(0, 0, width, height)
	ta.RootLayout.GetPrimitive().Draw(ta.Screen)
	ta.Screen.Show()
}

// SendKey simulates a key press by calling the input capture handler.
// If InputCapture doesn't consume the event, it's forwarded to the focused primitive.
func (ta *TestApp) SendKey(key tcell.Key, ch rune, mod tcell.ModMask) {
	event := tcell.NewEventKey(key, ch, mod)
	consumed := false
	if capture := ta.App.GetInputCapture(); capture != nil {
		consumed = capture(event) == nil
	}

	if !consumed {
		if focused := ta.App.GetFocus(); focused != nil {
			if handler := focused.InputHandler(); handler != nil {
				handler(event, func(p tview.Primitive) { ta.App.SetFocus(p) })
			}
		}
	}

	ta.Draw()
}

// SendText types a string of characters, one key event each
func (ta *TestApp) SendText(text string) {
	for _, ch := range text {
		ta.SendKey(tcell.KeyRune, ch, tcell.ModNone)
	}
}

// GetTextAt extracts text from a screen region starting at (x, y) with given width
func (ta *TestApp) GetTextAt(x, y, width int) string {
	contents, screenWidth, _ := ta.Screen.GetContents()
	var result strings.Builder

	for i := 0; i < width; i++ {
		cellIdx := y*screenWidth + (x + i)
		if cellIdx >= len(contents) {
			break
		}
		cell := contents[cellIdx]
		if len(cell.Runes) > 0 {
			result.WriteRune(cell.Runes[0])
		} else {
			result.WriteRune(' ')
		}
	}

	return strings.TrimSpace(result.String())
}

// FindText searches for a text string anywhere on the screen.
// Returns (found, x, y) where x, y are the coordinates of the first match.
func (ta *TestApp) FindText(needle string) (bool, int, int) {
	_, width, height := ta.Screen.GetContents()
	for y := 0; y < height; y++ {
		rowText := ta.GetTextAt(0, y, width)
		if x := strings.Index(rowText, needle); x >= 0 {
			return true, x, y
		}
	}
	return false, 0, 0
}

// DumpScreen logs the current screen content for debugging
func (ta *TestApp) DumpScreen() {
	_, width, height := ta.Screen.GetContents()
	ta.t.Logf("Screen size: %dx%d", width, height)
	for y := 0; y < height; y++ {
		if line := ta.GetTextAt(0, y, width); line != "" {
			ta.t.Logf("Row %2d: %s", y, line)
		}
	}
}

// CurrentViewID returns the view on top of the navigation stack
func (ta *TestApp) CurrentViewID() model.ViewID {
	return ta.NavController.CurrentViewID()
}

// ActiveLayerView returns the active view as a LayerView, nil otherwise
func (ta *TestApp) ActiveLayerView() *view.LayerView {
	lv, _ := ta.RootLayout.GetContentView().(*view.LayerView)
	return lv
}

// Layer returns the controller of the named layer
func (ta *TestApp) Layer(name string) *controller.LayerController {
	return ta.LayerControllers[name]
}

// Cleanup tears down the test app and releases resources
func (ta *TestApp) Cleanup() {
	ta.RootLayout.Cleanup()
	ta.Screen.Fini()
}
