package controller

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/mapfilter/model"
	"github.com/boolean-maybe/mapfilter/timespec"
)

func TestViewStack_PushPop(t *testing.T) {
	nav := newViewStack()
	if nav.pop() != nil {
		t.Error("pop() on empty stack should return nil")
	}
	if nav.replaceTopView(model.HelpViewID) {
		t.Error("replaceTopView() on empty stack should return false")
	}

	nav.push(model.MakeLayerViewID("Events"))
	nav.push(model.HelpViewID)
	if nav.depth() != 2 || !nav.canGoBack() {
		t.Fatalf("depth = %d, want 2", nav.depth())
	}

	entry := nav.pop()
	if entry == nil || entry.ViewID != model.HelpViewID {
		t.Errorf("pop() = %v, want help", entry)
	}
	if nav.currentViewID() != model.MakeLayerViewID("Events") {
		t.Errorf("currentViewID() = %v", nav.currentViewID())
	}
	if nav.canGoBack() {
		t.Error("canGoBack() with a single entry should be false")
	}
}

func TestNavigationController_ReplaceAndPop(t *testing.T) {
	nc := NewNavigationController(nil)
	var changes []model.ViewID
	nc.SetOnViewChanged(func(id model.ViewID) { changes = append(changes, id) })

	events := model.MakeLayerViewID("Events")
	strong := model.MakeLayerViewID("Strong")

	nc.ReplaceView(events) // empty stack pushes
	nc.ReplaceView(strong)
	if nc.Depth() != 1 || nc.CurrentViewID() != strong {
		t.Fatalf("depth %d current %v, want 1 %v", nc.Depth(), nc.CurrentViewID(), strong)
	}

	nc.PushView(model.HelpViewID)
	if !nc.HandleBack() {
		t.Fatal("HandleBack() from help should succeed")
	}
	if nc.HandleBack() {
		t.Error("HandleBack() at the root layer should fail")
	}

	want := []model.ViewID{events, strong, model.HelpViewID, strong}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}

	nc.HandleQuit() // nil app must not panic
}

// fakeLayerView is a minimal FilterableView and SelectableView
type fakeLayerView struct {
	id            model.ViewID
	filterFocused bool
	input         *tview.InputField
	moves         []int
}

func (v *fakeLayerView) GetPrimitive() tview.Primitive { return v.input }
func (v *fakeLayerView) GetActionRegistry() *ActionRegistry { return NewActionRegistry() }
func (v *fakeLayerView) GetViewID() model.ViewID { return v.id }
func (v *fakeLayerView) OnFocus() {}
func (v *fakeLayerView) OnBlur() {}
func (v *fakeLayerView) IsFilterFocused() bool { return v.filterFocused }
func (v *fakeLayerView) FocusFilter() tview.Primitive {
	v.filterFocused = true
	return v.input
}
func (v *fakeLayerView) MoveSelection(delta int) bool {
	v.moves = append(v.moves, delta)
	return true
}

func newTestRouter(t *testing.T) (*InputRouter, *NavigationController, *fakeLayerView, *LayerController) {
	t.Helper()
	t.Cleanup(func() { layerActionRegistry = nil })
	InitLayerActions([]LayerInfo{
		{Name: "Events", Key: tcell.KeyRune, Rune: 'E'},
		{Name: "Other", Key: tcell.KeyRune, Rune: 'O'},
	})

	lc, _ := newTimedController(t)
	nc := NewNavigationController(nil)
	view := &fakeLayerView{id: model.MakeLayerViewID("Events"), input: tview.NewInputField()}
	nc.SetActiveViewGetter(func() View { return view })
	nc.ReplaceView(view.id)

	router := NewInputRouter(nc, map[string]*LayerController{"Events": lc})
	return router, nc, view, lc
}

func TestInputRouter_LayerActions(t *testing.T) {
	router, nc, view, lc := newTestRouter(t)
	td := lc.GetTimeDimension()

	if !router.HandleInput(specialKey(tcell.KeyRight, tcell.ModNone), nc.CurrentView()) {
		t.Error("next step key should be handled")
	}
	if td.Index() != 1 {
		t.Errorf("index = %d, want 1", td.Index())
	}

	if !router.HandleInput(keyEvent('j'), nc.CurrentView()) || len(view.moves) != 1 || view.moves[0] != 1 {
		t.Errorf("down should move selection, moves %v", view.moves)
	}

	if !router.HandleInput(keyEvent('/'), nc.CurrentView()) || !view.filterFocused {
		t.Error("filter key should focus the filter input")
	}

	// keys go to the input while it has focus
	if router.HandleInput(specialKey(tcell.KeyRight, tcell.ModNone), nc.CurrentView()) {
		t.Error("keys should not be routed while the filter is focused")
	}
	if td.Index() != 1 {
		t.Errorf("index changed while filter focused: %d", td.Index())
	}
}

func TestInputRouter_LayerSwitchAndHelp(t *testing.T) {
	router, nc, _, _ := newTestRouter(t)

	if !router.HandleInput(keyEvent('E'), nc.CurrentView()) {
		t.Error("activating the current layer should be consumed")
	}
	if nc.CurrentViewID() != model.MakeLayerViewID("Events") {
		t.Errorf("current view = %v", nc.CurrentViewID())
	}

	if !router.HandleInput(keyEvent('?'), nc.CurrentView()) || nc.CurrentViewID() != model.HelpViewID {
		t.Fatalf("help key should open help, current %v", nc.CurrentViewID())
	}
	if !router.HandleInput(keyEvent('?'), nc.CurrentView()) || nc.CurrentViewID() != model.MakeLayerViewID("Events") {
		t.Errorf("help key in help should go back, current %v", nc.CurrentViewID())
	}

	if !router.HandleInput(keyEvent('O'), nc.CurrentView()) {
		t.Error("layer key should be handled")
	}
	if nc.CurrentViewID() != model.MakeLayerViewID("Other") || nc.Depth() != 1 {
		t.Errorf("expected Other to replace Events, got %v depth %d", nc.CurrentViewID(), nc.Depth())
	}

	if router.HandleInput(keyEvent('r'), &ViewEntry{ViewID: model.HelpViewID}) {
		t.Error("reload should not be handled in help")
	}
	if router.HandleInput(keyEvent('x'), nil) {
		t.Error("nil view entry should not be handled")
	}
}

func TestPlayer_StepStopsAtEnd(t *testing.T) {
	td := model.NewTimeDimension(timespec.List{1, 2, 3}, 0)
	p := NewPlayer(td, 0)
	if p.Interval() != time.Second {
		t.Errorf("Interval() = %v, want fallback 1s", p.Interval())
	}

	p.Step()
	if td.Index() != 0 {
		t.Error("Step() while paused should not advance")
	}

	td.SetPlaying(true)
	p.Step()
	p.Step()
	if td.Index() != 2 || !td.Playing() {
		t.Fatalf("index %d playing %v, want 2 true", td.Index(), td.Playing())
	}
	p.Step()
	if td.Playing() {
		t.Error("player should stop at the last step")
	}
}

func TestPlayer_RunUntilCancelled(t *testing.T) {
	td := model.NewTimeDimension(timespec.List{1, 2, 3, 4, 5}, 0)
	td.SetPlaying(true)

	stepped := make(chan struct{}, 10)
	p := NewPlayer(td, time.Millisecond)
	p.SetDispatcher(func(f func()) {
		f()
		stepped <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-stepped:
		case <-time.After(5 * time.Second):
			t.Fatal("player did not step")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("player did not stop after cancel")
	}
	if td.Index() < 2 {
		t.Errorf("expected at least 2 steps, index %d", td.Index())
	}
}
